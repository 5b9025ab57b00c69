package browser

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSystemOpener_RejectsBadURLs(t *testing.T) {
	opener := NewSystemOpener(zap.NewNop())
	opener.command = func(target string) (*exec.Cmd, error) {
		t.Fatalf("command should not be built for %q", target)
		return nil, nil
	}

	for _, target := range []string{"", "   ", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
		err := opener.Open(context.Background(), target)
		assert.Error(t, err, target)
	}
}

func TestSystemOpener_StartsCommand(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}

	var got string
	opener := NewSystemOpener(zap.NewNop())
	opener.command = func(target string) (*exec.Cmd, error) {
		got = target
		return exec.Command(truePath), nil
	}

	assert.NoError(t, opener.Open(context.Background(), "https://sorter.example.com/login"))
	assert.Equal(t, "https://sorter.example.com/login", got)
}

func TestSystemOpener_LauncherSurvivesCancel(t *testing.T) {
	shPath, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	marker := filepath.Join(t.TempDir(), "opened")
	opener := NewSystemOpener(zap.NewNop())
	opener.command = func(target string) (*exec.Cmd, error) {
		return exec.Command(shPath, "-c", "sleep 0.3; touch "+marker), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, opener.Open(ctx, "https://sorter.example.com/login"))
	cancel()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 3*time.Second, 50*time.Millisecond)
}

func TestSystemOpener_CancelledBeforeStart(t *testing.T) {
	opener := NewSystemOpener(zap.NewNop())
	opener.command = func(target string) (*exec.Cmd, error) {
		t.Fatalf("command should not be built once the context is done")
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, opener.Open(ctx, "https://sorter.example.com/login"), context.Canceled)
}
