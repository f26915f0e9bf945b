package airdcpp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"comicgrabr/internal/config"
	"comicgrabr/internal/services"
)

// SessionManager obtains and caches the bearer credential for the backend.
// The token lives for the process lifetime; the backend's inactivity timeout
// is deliberately not tracked, matching the authorize request's
// max_inactivity hint being advisory only. A failed call surfaces as an
// item-level failure and Token(ctx, true) forces a fresh authorize.
type SessionManager struct {
	cfg     *config.Config
	baseURL string
	http    HTTPDoer

	mu    sync.Mutex
	token string
}

// SessionOption customises SessionManager construction.
type SessionOption func(*SessionManager)

// WithSessionHTTPClient overrides the HTTP client used for authorization.
func WithSessionHTTPClient(client HTTPDoer) SessionOption {
	return func(m *SessionManager) { m.http = client }
}

// WithSessionBaseURL overrides the API base URL (used in tests).
func WithSessionBaseURL(baseURL string) SessionOption {
	return func(m *SessionManager) { m.baseURL = normalizeBaseURL(baseURL) }
}

// NewSessionManager builds a session manager from configuration.
func NewSessionManager(cfg *config.Config, opts ...SessionOption) *SessionManager {
	mgr := &SessionManager{
		cfg:     cfg,
		baseURL: normalizeBaseURL(cfg.AirDCPP.APIURL),
	}
	for _, opt := range opts {
		opt(mgr)
	}
	if mgr.http == nil {
		mgr.http = &http.Client{Timeout: time.Duration(cfg.AirDCPP.RequestTimeout) * time.Second}
	}
	return mgr
}

// Token returns the cached bearer token, authorizing a new session when no
// token is cached or forceRefresh is set.
func (m *SessionManager) Token(ctx context.Context, forceRefresh bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && !forceRefresh {
		return m.token, nil
	}

	if m.baseURL == "" || m.cfg.AirDCPP.Username == "" || m.cfg.AirDCPP.Password == "" {
		return "", services.Wrap(services.ErrConfiguration, "airdcpp", "authorize",
			"api url or credentials not set", nil)
	}

	token, err := m.authorize(ctx)
	if err != nil {
		return "", err
	}
	m.token = token
	return token, nil
}

func (m *SessionManager) authorize(ctx context.Context) (string, error) {
	payload := authorizeRequest{
		Username:      m.cfg.AirDCPP.Username,
		Password:      m.cfg.AirDCPP.Password,
		MaxInactivity: m.cfg.AirDCPP.MaxInactivity,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode authorize body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"sessions/authorize", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("build authorize request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", services.Wrap(services.ErrTimeout, "airdcpp", "authorize", "", err)
		}
		return "", services.Wrap(services.ErrTransport, "airdcpp", "authorize", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "airdcpp", "authorize", "read response", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrProtocol, "airdcpp", "authorize",
			fmt.Sprintf("backend returned %d", resp.StatusCode), nil)
	}

	var decoded authorizeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", services.Wrap(services.ErrProtocol, "airdcpp", "authorize", "decode response", err)
	}
	if strings.TrimSpace(decoded.AuthToken) == "" {
		return "", services.Wrap(services.ErrProtocol, "airdcpp", "authorize",
			"auth_token missing from response", nil)
	}
	return decoded.AuthToken, nil
}
