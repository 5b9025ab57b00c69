package backend

import (
	"fmt"

	"github.com/mikey/mail-sorter/internal/config"
	"github.com/mikey/mail-sorter/internal/core"
	"go.uber.org/zap"
)

// Factory creates backend clients from configuration
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for backend clients
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new HTTPClient
func (f *Factory) CreateClient() (core.SortingBackend, error) {
	backendCfg, err := f.cfg.GetBackend()
	if err != nil {
		return nil, err
	}
	if backendCfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	f.logger.Debug("Creating backend client",
		zap.String("base_url", backendCfg.BaseURL),
		zap.Duration("timeout", backendCfg.Timeout))

	return NewHTTPClient(nil, backendCfg.BaseURL, backendCfg.Timeout, f.logger), nil
}
