package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"astroscope/pkg/adapter"
	"astroscope/pkg/api"
	"astroscope/pkg/cli"
	"astroscope/pkg/config"
	"astroscope/pkg/data"
	"astroscope/pkg/event"
	"astroscope/pkg/forms"
	"astroscope/pkg/geocode"
	"astroscope/pkg/log"
	"astroscope/pkg/mappicker"
	"astroscope/pkg/model"
	"astroscope/pkg/session"
	"astroscope/pkg/store"
)

// bootstrap initializes and runs the Astroscope application. It sets up
// signal handling, loads configuration, initializes components (logger,
// store, backend and geocode clients, map picker, form controller, data
// manager, session manager, adapter manager, CLI), runs the CLI, and handles
// graceful shutdown.
func bootstrap() error {
	// Set up channel to receive interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load configuration
	if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}
	cfg := config.ConfigGet()

	// Initialize logger
	logger, err := log.NewLogger(cfg, log.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Printf("Failed to close logger: %v\n", err)
		}
	}()

	logger.Info(context.Background(), "Application started", log.Fields{"config": cfg})

	// Initialize event manager and person store
	eventManager := event.NewEventManager(logger)
	personStore := store.NewPersonStorage(logger)

	// Initialize backend and geocode clients
	apiClient := api.NewClient(cfg, logger)
	geocodeClient := geocode.NewClient(cfg, logger)

	logger.Info(context.Background(), "Clients initialized", nil)

	// Initialize the map view and the birthplace picker
	mapView := mappicker.NewTerminalMap(model.Coordinates{Lat: cfg.MapCenterLat, Lng: cfg.MapCenterLng}, cfg.MapZoom)
	picker := mappicker.NewPicker(func() mappicker.MapView { return mapView }, cfg.MapZoom, logger)

	// Initialize data manager
	dataManager := data.NewDataManager(personStore, apiClient, eventManager, logger)

	logger.Info(context.Background(), "Data manager initialized", nil)

	// Initialize form controller
	formController := forms.NewController(picker, geocodeClient, eventManager, cfg.DefaultTimezone, logger)

	// Load person records from the backend; an unreachable backend leaves an
	// empty local list and the session still works
	if count, err := dataManager.PersonManager.PersonLoad(context.Background()); err != nil {
		logger.Warn(context.Background(), "Failed to load person list from backend", log.Fields{"error": err})
		fmt.Printf("Warning: could not load person records from backend: %v\n", err)
	} else {
		logger.Info(context.Background(), "Person records loaded", log.Fields{"count": count})
	}

	// Initialize session manager
	sessionManager := session.NewSessionManager(dataManager, formController, mapView, logger)
	defer sessionManager.Shutdown()

	logger.Info(context.Background(), "Session manager initialized", nil)

	// Initialize adapter manager
	adapterManager := adapter.NewAdapterManager(sessionManager, logger)
	defer adapterManager.Shutdown()

	sessionID, err := adapterManager.AdapterAdd("cli")
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize CLI adapter", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI adapter: %v", err)
	}

	instance, ok := adapterManager.AdapterGet(sessionID)
	if !ok {
		return fmt.Errorf("no adapter instance for session %s", sessionID)
	}
	cliAdapter := instance.(*adapter.CLIAdapter)

	logger.Info(context.Background(), "Adapter manager initialized", log.Fields{"sessionID": sessionID})

	// Initialize CLI
	cliInstance, err := cli.NewCLI(cliAdapter, cfg.HistoryFile, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize CLI", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI: %v", err)
	}
	defer cliInstance.Close()

	logger.Info(context.Background(), "CLI instance created", nil)

	// Set up graceful shutdown
	go func() {
		<-sigChan
		logger.Info(context.Background(), "Received interrupt signal. Shutting down...", nil)
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cliInstance.Close()
	}()

	// Run CLI
	if err := cliInstance.Run(); err != nil {
		logger.Error(context.Background(), "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %v", err)
	}

	logger.Info(context.Background(), "Application shutting down", nil)
	fmt.Println("Goodbye!")

	return nil
}
