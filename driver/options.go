package driver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RequestOptions configures a single request. The zero value is a plain
// authenticated GET.
type RequestOptions struct {
	// Method defaults to GET when empty.
	Method string
	// JSON, when non-nil, is marshaled as the request body.
	JSON any
	// Form, when non-empty, is sent URL-encoded. Ignored if JSON is set.
	Form url.Values
	// Query is appended to the endpoint.
	Query url.Values
	// Headers are extra request headers.
	Headers map[string]string

	// SkipAuth suppresses the Authorization header (login, signup).
	SkipAuth bool
	// SkipRefresh disables the 401 refresh-and-retry path. Set internally
	// on the post-refresh retry to prevent loops.
	SkipRefresh bool
	// NoCache bypasses the response cache for this read.
	NoCache bool
	// Retries overrides the client's default network retry count.
	Retries *int
}

func (o RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

// encodeBody renders the request body once so network retries reuse the
// same bytes.
func (o RequestOptions) encodeBody() (body []byte, contentType string, err error) {
	switch {
	case o.JSON != nil:
		body, err = json.Marshal(o.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request body: %w", err)
		}
		return body, "application/json", nil
	case len(o.Form) > 0:
		return []byte(o.Form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", nil
	}
}

// pathWithQuery returns the endpoint with the query string attached, which
// is also what the cache is keyed on.
func (o RequestOptions) pathWithQuery(endpoint string) string {
	if len(o.Query) == 0 {
		return endpoint
	}
	return endpoint + "?" + o.Query.Encode()
}
