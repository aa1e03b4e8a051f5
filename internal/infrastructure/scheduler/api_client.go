package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// APIClient is the HTTP client the reporter jobs use to call the CRM API.
// Every call carries a bounded timeout and a small bounded retry count:
// transport faults and 5xx responses are retried, 4xx responses are not.
type APIClient struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	logger     *zap.Logger
}

// APIClientConfig holds API client configuration
type APIClientConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     int
}

// NewAPIClient creates a new API client
func NewAPIClient(cfg APIClientConfig, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		client:     &http.Client{Timeout: cfg.RequestTimeout},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// GetJSON performs a GET request and decodes the JSON response into out.
// Query may be nil. Returns the final HTTP status code.
func (c *APIClient) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) (int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.doJSON(ctx, http.MethodGet, u, nil, out)
}

// PostJSON performs a POST request with a JSON body and decodes the JSON
// response into out. Body and out may be nil.
func (c *APIClient) PostJSON(ctx context.Context, path string, body, out interface{}) (int, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	return c.doJSON(ctx, http.MethodPost, c.baseURL+path, payload, out)
}

// doJSON issues the request with bounded retries. 5xx and transport
// errors are retried with a short backoff; any other status returns
// immediately.
func (c *APIClient) doJSON(ctx context.Context, method, u string, payload []byte, out interface{}) (int, error) {
	var lastErr error
	var lastStatus int

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return lastStatus, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		status, err := c.doOnce(ctx, method, u, payload, out)
		if err == nil && status < 500 {
			return status, nil
		}

		lastErr = err
		lastStatus = status
		if err == nil {
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
		}

		c.logger.Warn("API call failed",
			zap.String("method", method),
			zap.String("url", u),
			zap.Int("attempt", attempt+1),
			zap.Int("status", status),
			zap.Error(lastErr),
		)
	}

	return lastStatus, lastErr
}

// doOnce issues a single request
func (c *APIClient) doOnce(ctx context.Context, method, u string, payload []byte, out interface{}) (int, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	} else {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	return resp.StatusCode, nil
}

// ErrorKind classifies a transport error into a short log-friendly name,
// so the reporter logs carry a distinguishable error line per fault class.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Timeout"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	case errors.Is(err, ErrUnexpectedStatus):
		return "UnexpectedStatus"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "Timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "ConnectionError"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "ConnectionError"
	}
	return "Error"
}
