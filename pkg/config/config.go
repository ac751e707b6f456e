// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"astroscope/pkg/model"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.yaml"
)

// Environment variable names recognized as overrides.
const (
	envAPIBaseURL = "ASTRO_API_URL"
	envGeocodeURL = "ASTRO_GEOCODE_URL"
	envTimezone   = "ASTRO_DEFAULT_TZ"
	envLogFolder  = "ASTRO_LOG_FOLDER"
	envTimeout    = "ASTRO_HTTP_TIMEOUT_SEC"
)

// defaultConfig returns the built-in configuration defaults. The backend base
// URL deliberately defaults to an empty string; requests then become relative,
// which almost certainly means the deployment forgot to set ASTRO_API_URL.
func defaultConfig() *model.Config {
	return &model.Config{
		APIBaseURL:      "",
		GeocodeURL:      "https://nominatim.openstreetmap.org/search",
		DefaultTimezone: "Asia/Tehran",
		MapCenterLat:    35.6892,
		MapCenterLng:    51.389,
		MapZoom:         5,
		HTTPTimeoutSec:  30,
		HistoryFile:     "./data/history",
		LogFolder:       "./logs",
		CommandLog:      "commands.log",
		ErrorLog:        "errors.log",
		InfoLog:         "info.log",
	}
}

// ConfigLoad loads the configuration from the YAML file, creating a default
// one if it doesn't exist, then applies .env and environment overrides.
func ConfigLoad() error {
	// Ensure the data directory exists
	dataDir := filepath.Dir(configPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Load .env if present; values already in the environment win.
	_ = godotenv.Load()

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := ConfigSave(cfg); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
		currentConfig = cfg
		applyEnvOverrides(currentConfig)
		return nil
	}

	// Read and parse the existing config file
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	currentConfig = cfg
	applyEnvOverrides(currentConfig)

	return nil
}

// ConfigSave saves the provided configuration to the YAML file.
func ConfigSave(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// applyEnvOverrides replaces configuration values with environment overrides.
func applyEnvOverrides(cfg *model.Config) {
	if v, ok := os.LookupEnv(envAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envGeocodeURL); ok {
		cfg.GeocodeURL = v
	}
	if v, ok := os.LookupEnv(envTimezone); ok {
		cfg.DefaultTimezone = v
	}
	if v, ok := os.LookupEnv(envLogFolder); ok {
		cfg.LogFolder = v
	}
	if v, ok := os.LookupEnv(envTimeout); ok {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.HTTPTimeoutSec = seconds
		}
	}
}
