// Package session manages user sessions and command execution.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"astroscope/pkg/data"
	"astroscope/pkg/forms"
	"astroscope/pkg/log"
	"astroscope/pkg/mappicker"
	"astroscope/pkg/model"
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual user session
type Session struct {
	ID              string
	DataManager     *data.DataManager
	Forms           *forms.Controller
	MapView         *mappicker.TerminalMap
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger

	// lastActivity is read by the manager's cleanup goroutine while the
	// executor goroutine updates it, so access goes through activityMu.
	activityMu   sync.Mutex
	lastActivity time.Time
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, formController *forms.Controller, mapView *mappicker.TerminalMap, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		Forms:        formController,
		MapView:      mapView,
		lastActivity: time.Now(),
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	ctx := context.Background()
	s.logger.Debug(ctx, "Initializing command handlers", nil)

	s.commandHandlers = map[string]map[string]CommandHandler{
		"person": initPersonCommandHandlers(),
		"form":   initFormCommandHandlers(),
		"map":    initMapCommandHandlers(),
		"select": initSelectCommandHandlers(),
		"chart":  initChartCommandHandlers(),
		"system": initSystemCommandHandlers(),
	}

	s.logger.Debug(ctx, "Command handlers initialized", nil)
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Running command", log.Fields{"command": cmd})

	s.touch()

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, errors.New("invalid command scope")
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "Invalid command operation", log.Fields{"operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err})
	} else {
		s.logger.Info(ctx, "Command executed successfully", nil)
	}

	return result, err
}

// touch records the current time as the session's last activity.
func (s *Session) touch() {
	s.activityMu.Lock()
	s.lastActivity = time.Now()
	s.activityMu.Unlock()
}

// LastActive returns the time of the session's most recent command.
func (s *Session) LastActive() time.Time {
	s.activityMu.Lock()
	defer s.activityMu.Unlock()
	return s.lastActivity
}

// initPersonCommandHandlers initializes person command handlers
func initPersonCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"list":   handlePersonList,
		"load":   handlePersonLoad,
		"delete": handlePersonDelete,
		"copy":   handlePersonCopy,
		"export": handlePersonExport,
		"import": handlePersonImport,
	}
}

// initFormCommandHandlers initializes form command handlers
func initFormCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"open":   handleFormOpen,
		"set":    handleFormSet,
		"show":   handleFormShow,
		"submit": handleFormSubmit,
		"cancel": handleFormCancel,
	}
}

// initMapCommandHandlers initializes map command handlers
func initMapCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"click": handleMapClick,
		"show":  handleMapShow,
	}
}

// initSelectCommandHandlers initializes selection command handlers
func initSelectCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"toggle": handleSelectToggle,
		"list":   handleSelectList,
		"clear":  handleSelectClear,
	}
}

// initChartCommandHandlers initializes chart command handlers
func initChartCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"natal":     handleChartNatal,
		"transit":   handleChartTransit,
		"report":    handleChartReport,
		"synastry":  handleChartSynastry,
		"composite": handleChartComposite,
		"show":      handleChartShow,
		"save":      handleChartSave,
	}
}

// initSystemCommandHandlers initializes system command handlers
func initSystemCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"exit": handleSystemExit,
		"quit": handleSystemExit,
	}
}
