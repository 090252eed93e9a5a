// ABOUTME: Authenticated REST client shared by the Discord and Photos adapters.
// ABOUTME: Normalizes success and error bodies; three-tier error taxonomy.

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 30 * time.Second

// HeaderFunc resolves the auth headers for a single request. It receives
// the request context so per-call credentials (Google access tokens) can
// be read from it.
type HeaderFunc func(ctx context.Context) (http.Header, error)

// Client performs authenticated HTTP requests against a fixed API base URL.
type Client struct {
	baseURL string
	headers HeaderFunc
	http    *http.Client
	logger  *slog.Logger
}

// Config contains the options for constructing a Client.
type Config struct {
	BaseURL string
	Headers HeaderFunc
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewClient creates a Client for the given base URL.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		headers: cfg.Headers,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Do issues a single request against the upstream API.
//
// The body, when non-nil, is JSON-encoded. The response body is always
// read as text first so it can be surfaced as JSON or raw text on every
// path. Error detection takes priority: a status >= 400 produces an
// *Error before any empty-response or content-type branching. With
// expectEmpty set, a 204 returns nil; any other success status falls
// back to JSON, then to a {"raw_content": ...} wrapper.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, expectEmpty bool) (json.RawMessage, error) {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	headers, err := c.headers(ctx)
	if err != nil {
		return nil, err
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("upstream request failed",
			"method", method,
			"url", url,
			"error", err,
		)
		return nil, &NetworkError{Op: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	rawText, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: method, URL: url, Err: err}
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(rawText)}
		c.logger.Error("upstream API error",
			"method", method,
			"url", url,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return nil, apiErr
	}

	if expectEmpty {
		if resp.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		c.logger.Warn("expected empty response",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
		)
		if json.Valid(rawText) {
			return json.RawMessage(rawText), nil
		}
		return wrapRaw(rawText)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return json.RawMessage(rawText), nil
	}

	c.logger.Warn("received non-JSON response",
		"method", method,
		"endpoint", endpoint,
		"content_type", resp.Header.Get("Content-Type"),
	)
	return wrapRaw(rawText)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil, false)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body, false)
}

// errorMessage extracts the upstream-provided message from an error body.
// Tries the structured {"error":{"message":...}} shape, then a flat
// {"message":...}, then falls back to the raw text.
func errorMessage(raw []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &flat); err == nil && flat.Message != "" {
		return flat.Message
	}

	return strings.TrimSpace(string(raw))
}

// wrapRaw wraps a non-JSON body in the {"raw_content": ...} shape.
func wrapRaw(raw []byte) (json.RawMessage, error) {
	wrapped, err := json.Marshal(map[string]string{"raw_content": string(raw)})
	if err != nil {
		return nil, fmt.Errorf("wrapping raw content: %w", err)
	}
	return wrapped, nil
}
