package view

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mikey/mail-sorter/internal/core"
	"go.uber.org/zap"
)

// CliSettings is the terminal form of the settings page
type CliSettings struct {
	service *core.SettingsService
	logger  *zap.Logger
	out     io.Writer
}

// NewCliSettings creates a new terminal settings page
func NewCliSettings(service *core.SettingsService, logger *zap.Logger, out io.Writer) *CliSettings {
	return &CliSettings{
		service: service,
		logger:  logger,
		out:     out,
	}
}

// Show prints the current threshold
func (s *CliSettings) Show(ctx context.Context) error {
	threshold, err := s.service.Threshold(ctx)
	if err != nil {
		s.logger.Warn("Showing default threshold", zap.Error(err))
	}
	fmt.Fprintf(s.out, "Threshold: %g\n", threshold)
	return nil
}

// Save stores input as the new threshold. Rejected input prints the
// validation message and is not an error.
func (s *CliSettings) Save(ctx context.Context, input string) error {
	if _, err := s.service.Save(ctx, input); err != nil {
		if errors.Is(err, core.ErrInvalidThreshold) {
			fmt.Fprintln(s.out, core.MsgInvalidThreshold)
			return nil
		}
		return err
	}
	fmt.Fprintln(s.out, core.MsgSaved)
	return nil
}

// Reset clears the stored threshold
func (s *CliSettings) Reset(ctx context.Context) error {
	if err := s.service.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Threshold reset to %g\n", core.DefaultThreshold)
	return nil
}
