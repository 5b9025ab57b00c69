package factory

import (
	"github.com/mikey/mail-sorter/internal/adapters/backend"
	"github.com/mikey/mail-sorter/internal/config"
	"github.com/mikey/mail-sorter/internal/core"
	"go.uber.org/zap"
)

// BackendFactory creates classification backend clients
type BackendFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewBackendFactory creates a new backend factory
func NewBackendFactory(cfg *config.Config, logger *zap.Logger) *BackendFactory {
	return &BackendFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateBackend creates a backend client based on the configuration
func (f *BackendFactory) CreateBackend() (core.SortingBackend, error) {
	return backend.NewFactory(f.cfg, f.logger).CreateClient()
}

// IsSessionAware reports whether refreshes check /whoami and scope the listing
func (f *BackendFactory) IsSessionAware() bool {
	return f.cfg.GetBool("backend.session_aware")
}
