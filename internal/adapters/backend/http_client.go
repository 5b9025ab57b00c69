package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mikey/mail-sorter/internal/core"
	"go.uber.org/zap"
)

// maxBodySize caps how much of a response is read
const maxBodySize = 4 << 20

// HTTPClient is an implementation of the SortingBackend interface over HTTP
type HTTPClient struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// whoAmIResponse is the body of GET /whoami
type whoAmIResponse struct {
	Email *string `json:"email"`
}

// healthResponse is the body of GET /
type healthResponse struct {
	Status string `json:"status"`
}

// NewHTTPClient creates a new backend client. A nil client uses one with the given timeout.
func NewHTTPClient(client *http.Client, baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// LoginURL returns the backend login page
func (c *HTTPClient) LoginURL() string {
	return c.baseURL + "/login"
}

// WhoAmI returns the identity of the current session, or "" if nobody is logged in
func (c *HTTPClient) WhoAmI(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/whoami")
	if err != nil {
		return "", err
	}

	var resp whoAmIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to parse whoami response: %v", core.ErrUnreachable, err)
	}
	if resp.Email == nil {
		return "", nil
	}
	return strings.TrimSpace(*resp.Email), nil
}

// FetchEmails lists classified emails, scoped to identity when it is set
func (c *HTTPClient) FetchEmails(ctx context.Context, identity string) (*core.Listing, error) {
	path := "/fetch-emails"
	if identity != "" {
		path += "/" + url.PathEscape(identity)
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	listing, err := core.DecodeListing(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched email listing",
		zap.String("path", path),
		zap.Int("count", len(listing.Emails)),
		zap.Int("kind", int(listing.Kind)))
	return listing, nil
}

// Health queries the backend root endpoint
func (c *HTTPClient) Health(ctx context.Context) (*core.Health, error) {
	body, err := c.get(ctx, "/")
	if err != nil {
		return nil, err
	}

	var resp healthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse health response: %v", core.ErrUnreachable, err)
	}
	if resp.Status == "" {
		return nil, fmt.Errorf("%w: health response has no status", core.ErrUnexpectedResponse)
	}
	return &core.Health{Status: resp.Status, CheckedAt: time.Now()}, nil
}

// get returns the body of any response the server produced, whatever its
// status code; callers decide from the body whether it is usable
func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", core.ErrUnreachable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("Backend returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
	}
	return body, nil
}
