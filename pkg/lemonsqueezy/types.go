package lemonsqueezy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Config defines Lemon Squeezy API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client performs authenticated calls against the Lemon Squeezy REST API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Request describes a single upstream call. Query and Body are optional.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   json.RawMessage
}

// APIError is returned for upstream responses with status >= 400.
// Body holds the raw response text; it is never parsed.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}
