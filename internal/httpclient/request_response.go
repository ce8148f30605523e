package httpclient

import (
	"context"
	"io"
)

// HTTPRequest represents an HTTP request
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    io.Reader
	Context context.Context
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	URL        string
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// BodyString returns the body as a string
func (r *HTTPResponse) BodyString() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}
