package detector

import (
	"net/http"
	"strings"
)

// interestingHeaderNames are response headers worth surfacing in a report,
// in canonical form.
var interestingHeaderNames = []string{
	"Server",
	"X-Powered-By",
	"X-Generator",
	"X-Runtime",
	"X-Varnish",
	"Via",
	"X-Typo3-Parsetime",
	"X-Cache",
	"X-Content-Type-Options",
	"Strict-Transport-Security",
}

// InterestingHeaders picks the fingerprint-relevant headers out of a response.
// Only 2xx and 3xx responses contribute; empty values are skipped.
func InterestingHeaders(headers map[string]string, status int) map[string]string {
	result := make(map[string]string)
	if status < http.StatusOK || status >= http.StatusBadRequest {
		return result
	}

	canonical := make(map[string]string, len(headers))
	for key, value := range headers {
		canonical[http.CanonicalHeaderKey(key)] = value
	}

	for _, name := range interestingHeaderNames {
		value := strings.TrimSpace(canonical[name])
		if value != "" {
			result[name] = value
		}
	}
	return result
}
