package httpclient

import "net/http"

// Request describes an outbound HTTP request.
type Request struct {
	// Method defaults to GET.
	Method string
	// Path is appended to the client's BaseURL. A full URL is used as is,
	// which is how pagination links are followed.
	Path string
	// Headers are request-specific headers (merged with client defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code. A response replayed from the
	// cache after a 304 reports 200.
	StatusCode int
	// Headers are the response headers keyed by canonical name.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
	// URL is the final request URL.
	URL string
	// FromCache is set when the body came from the cache after the server
	// answered 304 Not Modified.
	FromCache bool
}

// Header returns the value of the named response header.
func (r *Response) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}
