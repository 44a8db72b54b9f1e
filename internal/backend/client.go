// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/memdeck/internal/config"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = config.DefaultBackendURL

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	userAgent = "memdeck"
)

// Error variables for common client errors.
var (
	// ErrEmptyBaseURL indicates an attempt to switch to a blank base URL.
	ErrEmptyBaseURL = errors.New("backend URL is empty")

	// ErrInvalidBaseURL indicates a base URL that is not absolute http(s).
	ErrInvalidBaseURL = errors.New("invalid backend URL")

	// ErrUnsupportedMethod indicates a method other than GET, POST or DELETE.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrResponseTooLarge indicates the response exceeded MaxResponseSize.
	ErrResponseTooLarge = errors.New("response too large")
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error returns the response body text, or the status text when the body is
// empty.
func (e *HTTPError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return e.Status
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the agent backend API. It is safe for concurrent use.
type Client struct {
	mu      sync.RWMutex
	baseURL string

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a client for baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}
}

// NewFromConfig creates a client from the backend config section.
func NewFromConfig(cfg config.BackendConfig, logger *zap.Logger) *Client {
	c := NewClient(cfg.URL).WithRateLimit(cfg.RateLimit, cfg.Burst)
	if cfg.TimeoutSecs > 0 {
		c.WithTimeout(time.Duration(cfg.TimeoutSecs) * time.Second)
	}
	if logger != nil {
		c.WithLogger(logger)
	}
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithRateLimit limits requests to perSecond with the given burst. A
// non-positive perSecond disables limiting.
func (c *Client) WithRateLimit(perSecond float64, burst int) *Client {
	if perSecond <= 0 {
		c.limiter = nil
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// WithLogger sets the logger used for request tracing.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger.Named("backend")
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL switches the backend at runtime.
func (c *Client) SetBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyBaseURL
	}
	if err := config.ValidateBackendURL(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	c.mu.Lock()
	c.baseURL = strings.TrimSuffix(raw, "/")
	c.mu.Unlock()
	return nil
}

// =============================================================================
// REQUESTS
// =============================================================================

// Do sends one request to path (relative to the base URL, may carry a query
// string). A non-nil body is sent as JSON. JSON responses are decoded into
// interface{} values; other responses are returned as a string.
func (c *Client) Do(ctx context.Context, method, path string, body any) (any, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	requestURL := c.resolve(path)
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Bodies may carry user content, so only the request line and status are logged.
	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	data, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
		}
	}

	return decodeBody(resp.Header.Get("Content-Type"), data), nil
}

// resolve joins the base URL and path.
func (c *Client) resolve(path string) string {
	base := c.BaseURL()
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimPrefix(path, "/")
}

// readResponse reads the response body with size limits to prevent memory
// exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("%w: exceeded %d bytes", ErrResponseTooLarge, MaxResponseSize)
	}
	return body, nil
}

// decodeBody decodes JSON content types; everything else, including JSON that
// fails to parse, is returned as text.
func decodeBody(contentType string, data []byte) any {
	if !isJSON(contentType) {
		return string(data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// PathEscape escapes a user-supplied identifier for use as a path segment.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}
