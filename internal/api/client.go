package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benedictjohannes/mpd-config-switcher/internal/logging"
)

const (
	// DefaultServer is the switcher backend's default listen address
	DefaultServer = "http://localhost:6279"

	// DefaultAPIBase is the route prefix the backend mounts its API under
	DefaultAPIBase = "/api"

	// DefaultTimeout is the default HTTP request timeout. A switch restarts
	// MPD, so this is generous.
	DefaultTimeout = 15 * time.Second

	// maxBodySize caps how much of a response body is read
	maxBodySize = 1 << 20
)

// Route paths, relative to the API base
const (
	PathCurrentMode = "/currentmode"
	PathConfigParts = "/configparts"
	PathSwitch      = "/switch/"
)

// Client performs JSON-over-HTTP calls against the switcher backend.
// It never retries; callers decide.
type Client struct {
	// BaseURL is the server plus API prefix (e.g., "http://localhost:6279/api")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for server (e.g., "http://host:6279") with the
// API mounted under apiBase (e.g., "/api").
func NewClient(server, apiBase string) *Client {
	return NewClientWithURL(JoinBase(server, apiBase))
}

// NewClientWithURL creates a client with a full base URL
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// JoinBase combines a server address and an API prefix into a base URL.
// A server without a scheme is treated as http.
func JoinBase(server, apiBase string) string {
	if server == "" {
		server = DefaultServer
	}
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	server = strings.TrimRight(server, "/")
	apiBase = strings.Trim(apiBase, "/")
	if apiBase == "" {
		return server
	}
	return server + "/" + apiBase
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Call performs one request against path and returns the raw JSON body of a
// 2xx response. Non-2xx responses become ErrTypeHTTP errors carrying the
// body's "error" field when one can be parsed.
func (c *Client) Call(ctx context.Context, path, method string) (json.RawMessage, error) {
	requestID := uuid.NewString()
	started := time.Now()
	logging.LogRequest(requestID, method, path)

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, &Error{Type: ErrTypeNetwork, Message: "failed to create request", Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		classified := ClassifyNetworkError(err, path)
		logging.Warn("Request failed",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Error(classified),
		)
		return nil, classified
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	logging.LogResponse(requestID, path, resp.StatusCode, len(body), time.Since(started))
	if err != nil {
		return nil, ClassifyNetworkError(err, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorResponse
		if json.Unmarshal(body, &errBody) != nil {
			errBody.Error = ""
		}
		return nil, NewHTTPError(path, resp.StatusCode, strings.TrimSpace(errBody.Error))
	}

	if !json.Valid(body) {
		return nil, NewParseError(path, fmt.Errorf("invalid JSON (%d bytes)", len(body)))
	}

	return json.RawMessage(body), nil
}

// get calls path and decodes the response into out
func (c *Client) get(ctx context.Context, path string, out any) error {
	raw, err := c.Call(ctx, path, http.MethodGet)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return NewParseError(path, err)
	}
	return nil
}

// CurrentMode fetches the daemon's active mode
func (c *Client) CurrentMode(ctx context.Context) (ConfigTarget, error) {
	var mode ConfigTarget
	if err := c.get(ctx, PathCurrentMode, &mode); err != nil {
		return ConfigTarget{}, err
	}
	return mode, nil
}

// ConfigParts fetches the switchable registry. A JSON null is treated as an
// empty registry.
func (c *Client) ConfigParts(ctx context.Context) ([]ConfigTarget, error) {
	var parts []ConfigTarget
	if err := c.get(ctx, PathConfigParts, &parts); err != nil {
		return nil, err
	}
	if parts == nil {
		parts = []ConfigTarget{}
	}
	return parts, nil
}

// Switch asks the backend to activate the mode identified by key and returns
// its confirmation message. The backend exposes this mutation as a GET.
func (c *Client) Switch(ctx context.Context, key string) (string, error) {
	var resp switchResponse
	if err := c.get(ctx, SwitchPath(key), &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SwitchPath returns the switch route for key, escaped as a single segment
func SwitchPath(key string) string {
	return PathSwitch + url.PathEscape(key)
}
