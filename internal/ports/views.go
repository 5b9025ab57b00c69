package ports

import (
	"context"
	"io"

	"github.com/mikey/mail-sorter/internal/core"
)

// PopupView defines the popup surface
type PopupView interface {
	// Refresh shows the loading line, runs one refresh, and draws the result
	Refresh(ctx context.Context) (*core.PopupState, error)

	// OpenLogin opens the login page in the user's browser
	OpenLogin(ctx context.Context) error

	// Run reads commands from in until EOF or quit, refreshing once first
	Run(ctx context.Context, in io.Reader) error
}

// SettingsView defines the settings surface
type SettingsView interface {
	// Show prints the current threshold
	Show(ctx context.Context) error

	// Save validates and stores input, printing a status line
	Save(ctx context.Context, input string) error

	// Reset clears the stored threshold
	Reset(ctx context.Context) error
}

// BrowserOpener opens URLs outside the process
type BrowserOpener interface {
	Open(ctx context.Context, url string) error
}
