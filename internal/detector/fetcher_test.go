package detector

import (
	"context"
	"net/http"

	"github.com/aleister1102/typo3enum/internal/common"
	"github.com/aleister1102/typo3enum/internal/httpclient"
)

const testHost = "http://example.com"

// fakeFetcher serves canned responses keyed by full URL and records every request.
// Unknown URLs answer 404 with a body free of any TYPO3 marker.
type fakeFetcher struct {
	responses map[string]*httpclient.HTTPResponse
	failures  map[string]bool
	failAll   bool
	calls     []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: make(map[string]*httpclient.HTTPResponse),
		failures:  make(map[string]bool),
	}
}

func (f *fakeFetcher) respond(url string, status int, body string, headers map[string]string) *fakeFetcher {
	f.responses[url] = &httpclient.HTTPResponse{
		URL:        url,
		StatusCode: status,
		Headers:    headers,
		Body:       []byte(body),
	}
	return f
}

func (f *fakeFetcher) fail(url string) *fakeFetcher {
	f.failures[url] = true
	return f
}

func (f *fakeFetcher) Fetch(_ context.Context, base, path string) (*httpclient.HTTPResponse, error) {
	url := base + path
	f.calls = append(f.calls, url)

	if f.failAll || f.failures[url] {
		return nil, common.NewNetworkError(url, "HTTP request failed", context.DeadlineExceeded)
	}
	if resp, ok := f.responses[url]; ok {
		return resp, nil
	}
	return &httpclient.HTTPResponse{URL: url, StatusCode: http.StatusNotFound, Body: []byte("Not Found")}, nil
}
