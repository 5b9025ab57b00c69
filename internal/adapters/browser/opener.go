package browser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// SystemOpener opens URLs with the operating system's default browser
type SystemOpener struct {
	logger *zap.Logger
	// command builds the process to start; replaced in tests
	command func(target string) (*exec.Cmd, error)
}

// NewSystemOpener creates a new SystemOpener
func NewSystemOpener(logger *zap.Logger) *SystemOpener {
	return &SystemOpener{
		logger:  logger,
		command: systemCommand,
	}
}

// Open starts the browser on target without waiting for it to exit.
// The launcher outlives ctx so a finished command cannot kill it mid hand-off.
func (o *SystemOpener) Open(ctx context.Context, target string) error {
	if err := validateURL(target); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd, err := o.command(target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open URL: %w", err)
	}
	go func() { _ = cmd.Wait() }()

	o.logger.Info("Opened browser", zap.String("url", target))
	return nil
}

func systemCommand(target string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// validateURL only lets web URLs through to the shell-level opener
func validateURL(target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("unsupported URL scheme: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
