package airdcpp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"comicgrabr/internal/config"
	"comicgrabr/internal/logging"
	"comicgrabr/internal/services"
)

const userAgent = "ComicGrabr/0.1.0"

// HTTPDoer describes the HTTP client used by the AirDC++ service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the AirDC++ Web API. All waiting goes through the sleep
// function so tests can observe pacing without real wall time.
type Client struct {
	cfg      *config.Config
	baseURL  string
	http     HTTPDoer
	logger   *slog.Logger
	sessions *SessionManager
	sleep    func(time.Duration)
}

// Option customises Client construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) { c.http = client }
}

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = normalizeBaseURL(baseURL) }
}

// WithSessionManager injects a prebuilt session manager.
func WithSessionManager(sessions *SessionManager) Option {
	return func(c *Client) { c.sessions = sessions }
}

// WithSleep overrides the sleep function used for settle and backoff waits.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

// New builds an AirDC++ client from configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		cfg:     cfg,
		baseURL: normalizeBaseURL(cfg.AirDCPP.APIURL),
		logger:  logging.NewComponentLogger(logger, "airdcpp"),
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.http == nil {
		client.http = &http.Client{Timeout: time.Duration(cfg.AirDCPP.RequestTimeout) * time.Second}
	}
	if client.sessions == nil {
		client.sessions = NewSessionManager(cfg, WithSessionHTTPClient(client.http), WithSessionBaseURL(client.baseURL))
	}
	return client
}

// Sessions exposes the session manager owning the cached bearer credential.
func (c *Client) Sessions() *SessionManager {
	return c.sessions
}

func normalizeBaseURL(baseURL string) string {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed != "" && !strings.HasSuffix(trimmed, "/") {
		trimmed += "/"
	}
	return trimmed
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, token, payload, out)
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return &statusError{status: resp.StatusCode, body: string(raw)}
	}
	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

// classify maps a raw request error to the shared taxonomy. Status errors
// stay unwrapped so callers can inspect the response body.
func classify(operation string, err error) error {
	var status *statusError
	if errors.As(err, &status) {
		return services.Wrap(services.ErrProtocol, "airdcpp", operation, "", err)
	}
	if isTimeout(err) {
		return services.Wrap(services.ErrTimeout, "airdcpp", operation, "", err)
	}
	return services.Wrap(services.ErrTransport, "airdcpp", operation, "", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
