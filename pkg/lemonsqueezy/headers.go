package lemonsqueezy

import "net/http"

const (
	// APIKeyEnv names the environment variable holding the bearer token
	APIKeyEnv = "LEMONSQUEEZY_API_KEY"

	// MediaType is the JSON:API media type used for Accept and Content-Type
	MediaType = "application/vnd.api+json"
)

// AuthHeaders returns the headers attached to every upstream call.
// An empty key is passed through as-is; upstream answers 401.
func AuthHeaders(apiKey string) http.Header {
	h := make(http.Header, 3)
	h.Set("Authorization", "Bearer "+apiKey)
	h.Set("Accept", MediaType)
	h.Set("Content-Type", MediaType)
	return h
}
