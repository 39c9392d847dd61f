// ABOUTME: Bodylog configuration management.
// ABOUTME: Handles the JSON config file, store path resolution and logging settings.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/bodylog/internal/logging"
	"github.com/harperreed/bodylog/internal/storage"
)

// Config stores bodylog configuration.
type Config struct {
	// DataDir is the directory holding measurements.csv.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/bodylog.
	DataDir string `json:"data_dir,omitempty"`

	// StorePath points at the measurements table directly and wins over DataDir.
	StorePath string `json:"store_path,omitempty"`

	// LogLevel is one of trace, debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string `json:"log_file,omitempty"`

	LogJSON bool `json:"log_json,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetStorePath returns the measurements table path.
func (c *Config) GetStorePath() string {
	if c.StorePath != "" {
		return ExpandPath(c.StorePath)
	}
	return filepath.Join(c.GetDataDir(), storage.StoreFileName)
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return logging.DefaultLevel
	}
	return c.LogLevel
}

// LoggingParams returns the logger settings described by the config.
func (c *Config) LoggingParams() logging.Params {
	return logging.Params{
		Level: c.GetLogLevel(),
		File:  ExpandPath(c.LogFile),
		JSON:  c.LogJSON,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the measurements store at the configured path.
func (c *Config) OpenStorage() (*storage.CSVStore, error) {
	return storage.Open(c.GetStorePath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "bodylog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
