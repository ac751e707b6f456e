// Package model defines the data structures used throughout the Astroscope application.
package model

// Config holds the application configuration. It is read from a YAML file and
// may be overridden by environment variables (see the config package).
type Config struct {
	APIBaseURL      string  `yaml:"api_base_url"`
	GeocodeURL      string  `yaml:"geocode_url"`
	DefaultTimezone string  `yaml:"default_timezone"`
	MapCenterLat    float64 `yaml:"map_center_lat"`
	MapCenterLng    float64 `yaml:"map_center_lng"`
	MapZoom         int     `yaml:"map_zoom"`
	HTTPTimeoutSec  int     `yaml:"http_timeout_sec"`
	HistoryFile     string  `yaml:"history_file"`
	LogFolder       string  `yaml:"log_folder"`
	CommandLog      string  `yaml:"command_log"`
	ErrorLog        string  `yaml:"error_log"`
	InfoLog         string  `yaml:"info_log"`
}
