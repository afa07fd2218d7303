// Package api implements the HTTP gateway to the Softpan backend.
// It injects the bearer token on every request, normalizes backend
// rejections into *Error values and tears down the session on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/softpan/console/internal/infrastructure/logger"
)

const (
	defaultTimeout  = 60 * time.Second
	maxResponseSize = 10 << 20 // 10MB
)

// TokenSource provides the current bearer token. An empty string means no
// active session and the Authorization header is omitted.
type TokenSource interface {
	Token() string
}

// Client is the HTTP gateway to the backend API
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	logger         *zap.Logger
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithHTTPClient sets a custom underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokenSource sets the bearer token provider
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithUnauthorizedHook registers a callback invoked whenever the backend
// answers 401. The hook runs before the error is returned to the caller.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithLogger sets the logger for the client
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// NewClient creates a gateway client for the given base URL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body and decodes the response into out
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs a single request against the backend
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "failed to encode request body: " + err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	requestID := uuid.NewString()
	ctx, log := logger.WithRequestID(ctx, c.logger, requestID)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("api request failed", zap.Error(err))
		return &Error{Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Error{Message: "failed to read response body: " + err.Error(), Status: resp.StatusCode}
	}

	if resp.StatusCode >= 400 {
		apiErr := c.normalizeError(resp.StatusCode, respBody)
		log.Warn("api rejection",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			// Session expiry is a process-wide side effect: clear local
			// credentials so the next command forces re-authentication.
			c.onUnauthorized()
		}
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Message: "failed to decode response: " + err.Error(), Status: resp.StatusCode}
		}
	}
	return nil
}

// normalizeError extracts {message,status} from the response body when
// present, falling back to a generic message.
func (c *Client) normalizeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}
	var payload struct {
		Message string `json:"message"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Title != "" {
			apiErr.Message = payload.Title
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = genericErrorMessage
	}
	return apiErr
}
