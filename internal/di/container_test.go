package di

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/mail-sorter/internal/core"
	"github.com/mikey/mail-sorter/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainer_PopupAndSettings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email": "me@example.com"}`))
	})
	mux.HandleFunc("/fetch-emails/me@example.com", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"emails": [{"subject": "Invoice", "label": "Wanted", "confidence": 65}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	out := &bytes.Buffer{}
	flags := &Flags{ConfigFile: "", BaseURL: server.URL, Store: "memory"}
	container, err := BuildContainer(flags, out)
	require.NoError(t, err)

	err = container.Invoke(func(settings ports.SettingsView, popup ports.PopupView) error {
		ctx := context.Background()

		state, err := popup.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateEmails, state.Status)
		assert.Equal(t, "Wanted", state.Cards[0].Label)

		require.NoError(t, settings.Save(ctx, "0.7"))

		state, err = popup.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.UncertainLabel, state.Cards[0].Label)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), core.MsgSaved)
}

func TestBuildContainer_NoSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fetch-emails", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	container, err := BuildContainer(&Flags{BaseURL: server.URL, Store: "memory", NoSession: true}, &bytes.Buffer{})
	require.NoError(t, err)

	err = container.Invoke(func(popup ports.PopupView) {
		state, err := popup.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, core.StateEmpty, state.Status)
	})
	require.NoError(t, err)
}

func TestBuildContainer_UnknownStore(t *testing.T) {
	container, err := BuildContainer(&Flags{Store: "floppy"}, &bytes.Buffer{})
	require.NoError(t, err)

	err = container.Invoke(func(store core.SettingsStore) {})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported settings store")
}
