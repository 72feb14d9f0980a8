package lemonsqueezy

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
)

// DefaultBaseURL is the production API origin including the version prefix
const DefaultBaseURL = "https://api.lemonsqueezy.com/v1"

// ErrTransport marks network level failures where no response was received
var ErrTransport = errors.New("lemonsqueezy: request failed")

// NewClient instantiates a Lemon Squeezy API client.
// The client owns its HTTP transport; call Close when done.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("lemonsqueezy: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("lemonsqueezy: base url %q must be absolute", baseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// BaseURL reports the origin requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues exactly one HTTP request and returns the raw JSON response body.
// Status codes >= 400 yield *APIError. An empty success body decodes to null.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("lemonsqueezy: client is nil")
	}

	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("lemonsqueezy: build request: %w", err)
	}
	for k, v := range AuthHeaders(c.apiKey) {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("lemonsqueezy: decode response: invalid JSON body")
	}

	return json.RawMessage(payload), nil
}

// Close releases idle connections held by the underlying transport
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}
