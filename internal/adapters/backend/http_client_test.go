package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mikey/mail-sorter/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) (*HTTPClient, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	for path, handler := range routes {
		mux.HandleFunc(path, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewHTTPClient(server.Client(), server.URL+"/", time.Second, zap.NewNop()), server
}

func respond(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestHTTPClient_WhoAmI(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"logged_in", `{"email": "me@example.com"}`, "me@example.com"},
		{"null_email", `{"email": null}`, ""},
		{"missing_email", `{}`, ""},
		{"blank_email", `{"email": "  "}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, map[string]func(http.ResponseWriter, *http.Request){
				"/whoami": respond(http.StatusOK, tt.body),
			})

			identity, err := client.WhoAmI(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, identity)
		})
	}
}

func TestHTTPClient_WhoAmIInvalidJSON(t *testing.T) {
	client, _ := newTestServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/whoami": respond(http.StatusOK, `not json`),
	})

	_, err := client.WhoAmI(context.Background())
	assert.ErrorIs(t, err, core.ErrUnreachable)
}

func TestHTTPClient_FetchEmailsPaths(t *testing.T) {
	var gotPath, gotAccept string
	client, _ := newTestServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/fetch-emails": func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAccept = r.Header.Get("Accept")
			respond(http.StatusOK, `[]`)(w, r)
		},
		"/fetch-emails/": func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			respond(http.StatusOK, `{"emails": [{"subject": "Hi", "label": "Spam", "confidence": 91}]}`)(w, r)
		},
	})
	ctx := context.Background()

	listing, err := client.FetchEmails(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "/fetch-emails", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, core.ListingBare, listing.Kind)
	assert.Empty(t, listing.Emails)

	listing, err = client.FetchEmails(ctx, "me+tag@example.com")
	require.NoError(t, err)
	assert.Equal(t, "/fetch-emails/me+tag@example.com", gotPath)
	assert.Equal(t, core.ListingWrapped, listing.Kind)
	assert.Equal(t, []core.EmailRecord{{Subject: "Hi", Label: "Spam", Confidence: 91}}, listing.Emails)
}

func TestHTTPClient_FetchEmailsErrorEnvelope(t *testing.T) {
	client, _ := newTestServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/fetch-emails": respond(http.StatusInternalServerError, `{"error": "gmail quota exceeded"}`),
	})

	listing, err := client.FetchEmails(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, core.ListingMalformed, listing.Kind)
	assert.Equal(t, "gmail quota exceeded", listing.Error)
}

func TestHTTPClient_FetchEmailsNotJSON(t *testing.T) {
	client, _ := newTestServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/fetch-emails": respond(http.StatusBadGateway, `<html>Bad Gateway</html>`),
	})

	_, err := client.FetchEmails(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnreachable)
}

func TestHTTPClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewHTTPClient(nil, baseURL, time.Second, zap.NewNop())

	_, err := client.FetchEmails(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnreachable)
	_, err = client.WhoAmI(context.Background())
	assert.ErrorIs(t, err, core.ErrUnreachable)
}

func TestHTTPClient_Timeout(t *testing.T) {
	client, server := newTestServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/fetch-emails": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		},
	})
	client = NewHTTPClient(nil, server.URL, 50*time.Millisecond, zap.NewNop())

	_, err := client.FetchEmails(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnreachable)
}

func TestHTTPClient_Health(t *testing.T) {
	client, _ := newTestServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/": respond(http.StatusOK, `{"status": "Backend is running!"}`),
	})

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Backend is running!", health.Status)
}

func TestHTTPClient_LoginURL(t *testing.T) {
	client := NewHTTPClient(nil, "https://sorter.example.com/", time.Second, zap.NewNop())
	assert.Equal(t, "https://sorter.example.com/login", client.LoginURL())
}
