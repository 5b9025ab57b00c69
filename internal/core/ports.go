package core

import (
	"context"
)

// SortingBackend defines the interface for the remote classification backend
type SortingBackend interface {
	// WhoAmI returns the logged-in identity, or "" when there is no session
	WhoAmI(ctx context.Context) (string, error)

	// FetchEmails lists classified emails for identity, or globally when identity is ""
	FetchEmails(ctx context.Context, identity string) (*Listing, error)

	// Health reports the backend status
	Health(ctx context.Context) (*Health, error)

	// LoginURL is the page that starts a browser login
	LoginURL() string
}

// SettingsStore defines the interface for durable key-value settings
type SettingsStore interface {
	// Get returns the raw value for key or ErrSettingNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a raw value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error
}
