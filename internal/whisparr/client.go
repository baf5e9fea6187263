package whisparr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stashsync/internal/logging"
)

const apiPrefix = "/api/v3"

// RequestError describes an HTTP or transport failure against the Whisparr
// API after the retry budget is spent.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("whisparr request failed for %s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("whisparr returned HTTP %d for %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client provides access to the Whisparr v3 API.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	logger       *slog.Logger
	maxRetries   int
	retryBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryBackoff overrides the base retry delay. Tests use this to avoid
// real sleeps.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(c *Client) {
		if backoff > 0 {
			c.retryBackoff = backoff
		}
	}
}

// New creates a Whisparr client.
func New(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("whisparr base url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("whisparr api key required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
		logger:       logger.With(logging.String(logging.FieldComponent, "whisparr")),
		maxRetries:   3,
		retryBackoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// retryableStatus reports whether an HTTP status warrants another attempt.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// do executes one API request with the retry policy and returns the final
// status code and raw response body. Statuses >= 400 and exhausted transport
// failures surface as *RequestError.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (int, []byte, error) {
	endpoint, err := url.Parse(c.baseURL + apiPrefix + path)
	if err != nil {
		return 0, nil, fmt.Errorf("parse whisparr url: %w", err)
	}
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	c.logger.Debug("whisparr request",
		logging.String("method", method),
		logging.String("url", endpoint.String()),
		logging.String("body", logging.PreviewBytes(payload)),
	)

	var (
		status   int
		raw      []byte
		lastErr  error
		attempts = c.maxRetries + 1
	)
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.retryBackoff << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			}
		}

		status, raw, lastErr = c.doOnce(ctx, method, endpoint.String(), payload)
		if lastErr != nil {
			if ctx.Err() != nil {
				return 0, nil, ctx.Err()
			}
			c.logger.Debug("whisparr request attempt failed",
				logging.Int("attempt", attempt+1),
				logging.Error(lastErr),
			)
			continue
		}
		if retryableStatus(status) {
			c.logger.Debug("whisparr returned retryable status",
				logging.Int("attempt", attempt+1),
				logging.Int("status", status),
			)
			continue
		}
		break
	}

	if lastErr != nil {
		return 0, nil, &RequestError{Method: method, URL: endpoint.String(), Err: lastErr}
	}

	c.logger.Debug("whisparr response",
		logging.Int("status", status),
		logging.String("body", logging.PreviewBytes(raw)),
	)

	if status >= http.StatusBadRequest {
		return status, raw, &RequestError{
			Method:     method,
			URL:        endpoint.String(),
			StatusCode: status,
			Body:       logging.PreviewBytes(raw),
		}
	}
	return status, raw, nil
}

func (c *Client) doOnce(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}
