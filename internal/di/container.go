package di

import (
	"io"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-sorter/internal/config"
	"github.com/mikey/mail-sorter/internal/core"
	"github.com/mikey/mail-sorter/internal/factory"
	"github.com/mikey/mail-sorter/internal/logging"
	"github.com/mikey/mail-sorter/internal/ports"
	"github.com/mikey/mail-sorter/internal/utils"
)

// Flags contains the command line overrides shared by all commands
type Flags struct {
	ConfigFile   string
	BaseURL      string
	Store        string
	SQLitePath   string
	NoSession    bool
	Verbose      bool
	JSONLog      bool
	SubjectWidth int
}

// Output is the writer views print to
type Output struct {
	io.Writer
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer(flags *Flags, out io.Writer) (*dig.Container, error) {
	container := dig.New()

	// Register flags and output
	if err := container.Provide(func() *Flags { return flags }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() Output { return Output{out} }); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *Flags) (*config.Config, error) {
		cfg, err := config.NewFromFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		applyFlags(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		logger, err := logging.InitLogger(cfg)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Debug("Loaded configuration from file", zap.String("file", used))
		}
		return logger, nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewBackendFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSettingsFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		textProcessor *utils.TextProcessor,
		out Output,
	) *factory.ViewFactory {
		return factory.NewViewFactory(cfg, logger, textProcessor, out.Writer)
	}); err != nil {
		return nil, err
	}

	// Register backend client
	if err := container.Provide(func(f *factory.BackendFactory) (core.SortingBackend, error) {
		return f.CreateBackend()
	}); err != nil {
		return nil, err
	}

	// Register settings store
	if err := container.Provide(func(f *factory.SettingsFactory) (core.SettingsStore, error) {
		return f.CreateSettingsStore()
	}); err != nil {
		return nil, err
	}

	// Register services
	if err := container.Provide(core.NewSettingsService); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		backend core.SortingBackend,
		settings *core.SettingsService,
		logger *zap.Logger,
		f *factory.BackendFactory,
	) *core.PopupService {
		return core.NewPopupService(backend, settings, logger, f.IsSessionAware())
	}); err != nil {
		return nil, err
	}

	// Register views
	if err := container.Provide(func(f *factory.ViewFactory, s *core.PopupService) ports.PopupView {
		return f.CreatePopupView(s)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.ViewFactory, s *core.SettingsService) ports.SettingsView {
		return f.CreateSettingsView(s)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// applyFlags overrides configuration values with the flags that were set
func applyFlags(cfg *config.Config, flags *Flags) {
	if flags.BaseURL != "" {
		cfg.Set("backend.base_url", flags.BaseURL)
	}
	if flags.NoSession {
		cfg.Set("backend.session_aware", false)
	}
	if flags.Store != "" {
		cfg.Set("settings.store", flags.Store)
	}
	if flags.SQLitePath != "" {
		cfg.Set("settings.sqlite_path", flags.SQLitePath)
	}
	if flags.Verbose {
		cfg.Set("logging.level", "debug")
	}
	if flags.JSONLog {
		cfg.Set("logging.format", "json")
	}
	if flags.SubjectWidth > 0 {
		cfg.Set("view.max_subject_width", flags.SubjectWidth)
	}
}
