package factory

import (
	"io"

	"github.com/mikey/mail-sorter/internal/adapters/browser"
	"github.com/mikey/mail-sorter/internal/adapters/view"
	"github.com/mikey/mail-sorter/internal/config"
	"github.com/mikey/mail-sorter/internal/core"
	"github.com/mikey/mail-sorter/internal/ports"
	"github.com/mikey/mail-sorter/internal/utils"
	"go.uber.org/zap"
)

// ViewFactory creates the terminal surfaces
type ViewFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	out           io.Writer
}

// NewViewFactory creates a new view factory writing to out
func NewViewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor, out io.Writer) *ViewFactory {
	return &ViewFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
		out:           out,
	}
}

// CreatePopupView creates the popup surface
func (f *ViewFactory) CreatePopupView(service *core.PopupService) ports.PopupView {
	return view.NewCliPopup(
		service,
		browser.NewSystemOpener(f.logger),
		f.textProcessor,
		f.logger,
		f.out,
		f.cfg.GetView().MaxSubjectWidth,
	)
}

// CreateSettingsView creates the settings surface
func (f *ViewFactory) CreateSettingsView(service *core.SettingsService) ports.SettingsView {
	return view.NewCliSettings(service, f.logger, f.out)
}
