package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8080"

var errEmptyBody = errors.New("empty response body")

// ClientOpts configures a [Client].
type ClientOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	RateLimit  float64 // RateLimit is the number of requests per second; zero or less disables throttling
	Burst      int
	Logger     *log.Logger
}

// Client talks to the remote book tracking service. It performs no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a [Client]. An empty base URL falls back to http://localhost:8080.
func NewClient(opts ClientOpts) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger.With("component", "client"),
	}
}

// BaseURL returns the service root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest sends a request and returns the full response body for a 2xx status.
// Transport and read failures come back as network [RemoteError]s, non-2xx statuses as rejections.
func (c *Client) doRequest(ctx context.Context, op, method, endpoint string, query url.Values, body any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, networkError(op, err)
		}
	}

	apiURL := c.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, networkError(op, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return nil, networkError(op, fmt.Errorf("failed to create request: %w", err))
	}

	requestID := newRequestID()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("request", "op", op, "method", method, "url", apiURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(op, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(op, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rerr := rejectedError(op, resp.StatusCode, data)
		c.logger.Debug("request rejected", "op", op, "status", resp.StatusCode, "request_id", requestID)
		return nil, rerr
	}
	return data, nil
}

// fetchJSON performs a request and decodes the body into a fresh T.
// Nothing is returned unless the whole body decodes.
func fetchJSON[T any](ctx context.Context, c *Client, op, method, endpoint string, query url.Values, body any) (T, error) {
	var zero T
	data, err := c.doRequest(ctx, op, method, endpoint, query, body)
	if err != nil {
		return zero, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return zero, networkError(op, fmt.Errorf("failed to decode response: %w", errEmptyBody))
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, networkError(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return out, nil
}

func newRequestID() string {
	return shared.GenerateID()
}
