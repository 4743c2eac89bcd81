package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

// Sentinel errors
var (
	// ErrUnauthenticated is returned when the backend rejects the request
	// credentials. The gateway transport has already cleared the session by
	// the time callers see this.
	ErrUnauthenticated = errors.New("api: request rejected by backend")

	// ErrServer is returned for 5xx responses that survived retries.
	ErrServer = errors.New("api: backend unavailable")
)

// Config holds common client configuration.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	MaxTries uint

	// RetryInterval overrides the initial backoff interval. Zero keeps the
	// exponential backoff default.
	RetryInterval time.Duration
}

// DefaultConfig returns a default client configuration pointing at a local
// backend, matching the development setup of the HR service.
func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:8000",
		Timeout:  30 * time.Second,
		MaxTries: 3,
	}
}

// Client is the REST client for the HR backend. All requests flow through
// the injected transport, which owns credential attachment and 401 handling.
type Client struct {
	baseURL       string
	http          *http.Client
	maxTries      uint
	retryInterval time.Duration
}

// NewClient creates a client using the given transport. transport may be nil
// for plain unauthenticated requests (e.g. tests).
func NewClient(cfg Config, transport http.RoundTripper) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = DefaultConfig().MaxTries
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		maxTries:      cfg.MaxTries,
		retryInterval: cfg.RetryInterval,
	}
}

// User is the identity payload returned by the backend. Field names follow
// the backend's wire format.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"nom"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// LoginResponse is the body of the accounts login endpoint.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"mot_de_passe"`
}

// Login posts credentials to the accounts login endpoint. A transport-level
// failure returns an error; a backend rejection returns a response with
// Success false and a human-readable Message. Login is never retried, a
// credential check must fail fast back to the user.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/accounts/login/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	log.Debug().
		Bool("success", loginResp.Success).
		Int("status", resp.StatusCode).
		Msg("login response received")

	return &loginResp, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	data, err := c.get(ctx, c.baseURL+"/api/accounts/profile/")
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &user, nil
}

// Photo fetches the raw bytes of a profile photo. photoURL may be absolute
// or a path relative to the backend base URL. Responses are served from the
// HTTP cache when the backend allows it.
func (c *Client) Photo(ctx context.Context, photoURL string) ([]byte, error) {
	if !strings.HasPrefix(photoURL, "http://") && !strings.HasPrefix(photoURL, "https://") {
		photoURL = c.baseURL + "/" + strings.TrimLeft(photoURL, "/")
	}
	return c.get(ctx, photoURL)
}

// get performs an idempotent GET, retrying transient transport errors and
// 5xx responses with exponential backoff. Client errors, including 401, are
// permanent: the gateway owns the reaction to authentication rejection and
// retrying would only replay a dead token.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			log.Debug().Err(err).Str("url", url).Msg("request failed, will retry")
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, backoff.Permanent(ErrUnauthenticated)
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %s", ErrServer, resp.Status)
		case resp.StatusCode >= 400:
			return nil, backoff.Permanent(fmt.Errorf("api: unexpected status %s", resp.Status))
		}

		return io.ReadAll(resp.Body)
	}

	bo := backoff.NewExponentialBackOff()
	if c.retryInterval > 0 {
		bo.InitialInterval = c.retryInterval
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.maxTries),
	)
}
