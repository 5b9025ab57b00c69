package config

import (
	"fmt"
	"os"
	"time"
)

// BackendConfig represents the configuration for the classification backend
type BackendConfig struct {
	BaseURL      string
	Timeout      time.Duration
	SessionAware bool
}

// SettingsConfig represents the configuration for the settings store
type SettingsConfig struct {
	Store      string
	SQLitePath string
	MySQLDSN   string
}

// ViewConfig represents the configuration for terminal output
type ViewConfig struct {
	MaxSubjectWidth int
}

// GetBackend returns the backend configuration
func (c *Config) GetBackend() (BackendConfig, error) {
	timeout, err := c.GetDuration("backend.timeout")
	if err != nil {
		return BackendConfig{}, fmt.Errorf("invalid backend timeout: %w", err)
	}
	return BackendConfig{
		BaseURL:      c.GetString("backend.base_url"),
		Timeout:      timeout,
		SessionAware: c.GetBool("backend.session_aware"),
	}, nil
}

// GetSettings returns the settings store configuration
func (c *Config) GetSettings() SettingsConfig {
	return SettingsConfig{
		Store:      c.GetString("settings.store"),
		SQLitePath: os.ExpandEnv(c.GetString("settings.sqlite_path")),
		MySQLDSN:   c.GetString("settings.mysql_dsn"),
	}
}

// GetView returns the view configuration
func (c *Config) GetView() ViewConfig {
	return ViewConfig{
		MaxSubjectWidth: c.GetInt("view.max_subject_width"),
	}
}
