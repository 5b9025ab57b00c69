package factory

import (
	"fmt"

	"github.com/mikey/mail-sorter/internal/adapters/settings"
	"github.com/mikey/mail-sorter/internal/config"
	"github.com/mikey/mail-sorter/internal/core"
	"go.uber.org/zap"
)

// SettingsFactory creates settings stores based on configuration
type SettingsFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSettingsFactory creates a new settings factory
func NewSettingsFactory(cfg *config.Config, logger *zap.Logger) *SettingsFactory {
	return &SettingsFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSettingsStore creates a settings store based on the configuration
func (f *SettingsFactory) CreateSettingsStore() (core.SettingsStore, error) {
	settingsCfg := f.cfg.GetSettings()

	switch settingsCfg.Store {
	case "memory":
		f.logger.Warn("Using in-memory settings, saved values will not persist")
		return settings.NewMemoryStore(), nil
	case "sqlite":
		return settings.NewSQLiteStore(settingsCfg.SQLitePath, f.logger)
	case "mysql":
		return settings.NewMySQLStore(settingsCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported settings store: %s", settingsCfg.Store)
	}
}
