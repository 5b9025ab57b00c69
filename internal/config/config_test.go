package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	backend, err := cfg.GetBackend()
	require.NoError(t, err)
	assert.Equal(t, "https://unwanted-mail-sorter.onrender.com", backend.BaseURL)
	assert.Equal(t, 15*time.Second, backend.Timeout)
	assert.True(t, backend.SessionAware)

	assert.Equal(t, "sqlite", cfg.GetSettings().Store)
	assert.Equal(t, 72, cfg.GetView().MaxSubjectWidth)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
backend:
  base_url: http://localhost:5000
  timeout: 3s
  session_aware: false
settings:
  store: memory
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewFromFile(path)
	require.NoError(t, err)

	backend, err := cfg.GetBackend()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", backend.BaseURL)
	assert.Equal(t, 3*time.Second, backend.Timeout)
	assert.False(t, backend.SessionAware)
	assert.Equal(t, "memory", cfg.GetSettings().Store)
}

func TestNewFromFile_Missing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("MAIL_SORTER_BACKEND_BASE_URL", "http://env.example")
	t.Setenv("HOME", t.TempDir())

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.GetString("backend.base_url"))
}

func TestInvalidTimeout(t *testing.T) {
	v := NewEmptyViper()
	v.Set("backend.timeout", "soon")

	_, err := NewFromViper(v).GetBackend()
	assert.Error(t, err)
}

func TestSQLitePathExpandsEnv(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := NewFromViper(NewEmptyViper())
	assert.Equal(t, "/home/tester/.mail-sorter/settings.db", cfg.GetSettings().SQLitePath)
}
