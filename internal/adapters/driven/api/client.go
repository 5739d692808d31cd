package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultAPIBaseURL
	DefaultTimeout = time.Duration(domain.DefaultAPITimeoutSeconds) * time.Second
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API root (default: the hosted BizPilot backend).
	BaseURL string

	// Timeout bounds each request (default: 120s). Generation is slow.
	Timeout time.Duration

	// RequestsPerMinute throttles generation calls. Zero disables throttling.
	RequestsPerMinute int

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client configuration from application settings.
func ConfigFromSettings(s domain.APISettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		Timeout:           s.Timeout(),
		RequestsPerMinute: s.RequestsPerMinute,
	}
}

// Client talks to the BizPilot backend.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// envelope is the wrapper every backend response uses.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RequestsPerMinute),
	}
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response is a read HTTP response: its status, headers and decoded envelope.
type response struct {
	status int
	header http.Header
	body   []byte
	env    envelope
	// decoded is false when the body was not a JSON envelope.
	decoded bool
}

// message returns the best human-readable explanation of the response.
func (r *response) message() string {
	if r.env.Message != "" {
		return r.env.Message
	}
	text := strings.TrimSpace(string(r.body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	if text == "" {
		return http.StatusText(r.status)
	}
	return text
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do sends a JSON request and reads the whole response.
// Only transport failures and unreadable bodies are returned as errors.
func (c *Client) do(ctx context.Context, method, path, token string, payload any, header http.Header) (*response, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		// The backend expects the bare token, without a "Bearer" prefix.
		req.Header.Set("Authorization", token)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logger.Debug("%s %s -> %d in %s (%d bytes)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(data))

	out := &response{status: resp.StatusCode, header: resp.Header, body: data}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out.env); err == nil {
		out.decoded = true
	}
	return out, nil
}

// rateLimited records the backoff a 429 asks for and reports it.
func (c *Client) rateLimited(resp *response) error {
	c.limiter.RecordRateLimit(resp.header.Get("Retry-After"))
	return fmt.Errorf("%w: %s (retry in %s)", domain.ErrRateLimited, resp.message(), c.limiter.BackoffRemaining().Round(time.Second))
}
