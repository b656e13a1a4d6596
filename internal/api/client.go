// Package api is the HTTP client for the portal backend. Each resource
// group gets a dedicated client rooted at /api/v1/<group>, all sharing one
// transport that attaches the bearer token, tags requests, and retries
// transient failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/munidigital/portalctl/internal/logger"
)

// TokenSource supplies the Authorization header value for outgoing
// requests. An empty string means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Config holds common client configuration.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Tokens   TokenSource
	Logger   zerolog.Logger
	MaxTries uint

	// HTTPClient overrides the default client. Used in tests.
	HTTPClient *http.Client
}

// Client bundles the resource-group clients.
type Client struct {
	t *transport

	Users        *UsersClient
	Terms        *TermsClient
	Taxpayers    *TaxpayersClient
	CreditTitles *CreditTitlesClient
	Password     *PasswordClient
}

// New creates the resource-group clients with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = 3
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: logger.NewHTTPRequests(cfg.Logger, nil),
		}
	}

	t := &transport{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   httpClient,
		tokens:   cfg.Tokens,
		maxTries: cfg.MaxTries,
	}

	return &Client{
		t:            t,
		Users:        &UsersClient{t: t, base: "/api/v1/users"},
		Terms:        &TermsClient{t: t, base: "/api/v1/terms"},
		Taxpayers:    &TaxpayersClient{t: t, base: "/api/v1/taxpayers"},
		CreditTitles: &CreditTitlesClient{t: t, base: "/api/v1/credit-titles"},
		Password:     &PasswordClient{t: t, base: "/api/v1/password"},
	}, nil
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. An unauthorized response
// here means the credentials were wrong, not that a session expired.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var resp loginResponse
	if err := c.t.call(ctx, http.MethodPost, "/login", body, &resp, asLogin); err != nil {
		return "", err
	}

	return resp.Token, nil
}

// RequestReset asks the backend to start a password reset for the account
// behind the given email.
func (c *Client) RequestReset(ctx context.Context, email string) error {
	return c.Password.RequestReset(ctx, email)
}

// ConfirmReset completes a password reset with the emailed code.
func (c *Client) ConfirmReset(ctx context.Context, code, newPassword string) error {
	return c.Password.ConfirmReset(ctx, code, newPassword)
}

// callMode distinguishes the login exchange from authenticated resource
// calls when classifying an unauthorized response.
type callMode int

const (
	asResource callMode = iota
	asLogin
)

type transport struct {
	baseURL  string
	client   *http.Client
	tokens   TokenSource
	maxTries uint
}

// call performs one JSON request/response exchange. Transient failures
// (network errors, 5xx) are retried with exponential backoff; every other
// failure maps onto the error taxonomy and is returned as-is.
func (t *transport) call(ctx context.Context, method, path string, in, out any, mode callMode) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	operation := func() ([]byte, error) {
		return t.roundTrip(ctx, method, path, payload, mode)
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(t.maxTries),
	)
	if err != nil {
		return err
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response for %s %s: %w", method, path, err)
		}
	}

	return nil
}

func (t *transport) roundTrip(ctx context.Context, method, path string, payload []byte, mode callMode) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(&TransportError{Err: ctx.Err()})
		}
		// Network failures are worth another attempt.
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil

	case resp.StatusCode == http.StatusUnauthorized:
		if mode == asLogin {
			return nil, backoff.Permanent(ErrInvalidCredentials)
		}
		return nil, backoff.Permanent(ErrSessionExpired)

	case resp.StatusCode == http.StatusForbidden:
		return nil, backoff.Permanent(&PermissionError{Message: errorMessage(body)})

	case resp.StatusCode == http.StatusBadRequest:
		return nil, backoff.Permanent(&ValidationError{Fields: fieldErrors(body)})

	case resp.StatusCode >= 500:
		return nil, &TransportError{Status: resp.StatusCode, Body: string(body)}

	default:
		return nil, backoff.Permanent(&TransportError{Status: resp.StatusCode, Body: string(body)})
	}
}

// errorMessage extracts {"message": ...} from an error body, falling back
// to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// fieldErrors decodes a structured field-error payload. Bodies that are not
// a flat field map yield a single generic entry so nothing is discarded.
func fieldErrors(body []byte) map[string]string {
	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		return fields
	}

	if msg := errorMessage(body); msg != "" {
		return map[string]string{"_": msg}
	}
	return nil
}
