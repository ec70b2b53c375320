// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	// ErrTimeout is returned when the context ends before a successful response.
	ErrTimeout = errors.New("HTTP_TIMEOUT")
	// ErrRequestFailed is returned when every attempt failed.
	ErrRequestFailed = errors.New("HTTP_REQUEST_FAILED")
)

// Client posts JSON with exponential-backoff retries. The caller's context
// bounds the whole call; WithTimeout bounds each attempt.
type Client struct {
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	headers    map[string]string
}

type Option func(*Client)

func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithBaseDelay sets the first backoff step; later steps double it.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

// WithTimeout limits a single attempt. Zero leaves attempts unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(maxRetries int, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		maxRetries: maxRetries,
		baseDelay:  100 * time.Millisecond,
		headers:    map[string]string{"Content-Type": "application/json"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PostJSON sends payload to url and decodes a 200 response into out. Non-200
// responses and transport errors are retried up to maxRetries times.
func (c *Client) PostJSON(ctx context.Context, url string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrRequestFailed, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ErrTimeout
			}
		}

		var respBody []byte
		respBody, lastErr = c.do(ctx, url, body)
		if lastErr == nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("%w: decode error: %v", ErrRequestFailed, err)
			}
			return nil
		}

		if ctx.Err() != nil {
			return ErrTimeout
		}
	}

	var netErr net.Error
	if errors.As(lastErr, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, lastErr)
	}
	return fmt.Errorf("%w: %v", ErrRequestFailed, lastErr)
}

func (c *Client) do(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
