package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrEmptyInstallPath is returned for an install path reference with no content.
	ErrEmptyInstallPath = errors.New("install path is empty")
	// ErrTraversal is returned for install path references that climb out of the document root.
	ErrTraversal = errors.New("install path contains parent directory traversal")
)

// NormalizeTarget turns user input into the form probes expect: a scheme
// (http:// when missing), a lowercase host, an optional path, and no trailing
// slash, query or fragment.
func NormalizeTarget(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", errors.New("URL is empty or only whitespace")
	}

	if !strings.Contains(trimmedURL, "://") {
		trimmedURL = "http://" + strings.TrimPrefix(trimmedURL, "//")
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", trimmedURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme '%s'", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return "", errors.New("URL lacks a valid hostname")
	}

	parsedURL.Host = strings.ToLower(parsedURL.Host)
	parsedURL.RawQuery = ""
	parsedURL.Fragment = ""
	parsedURL.Path = strings.TrimRight(parsedURL.Path, "/")
	parsedURL.RawPath = ""

	return parsedURL.String(), nil
}

// BaseURL returns scheme://host[:port] of name, dropping any path or query.
func BaseURL(name string) (string, error) {
	parsedURL, err := url.Parse(name)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", name, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("URL '%s' has no scheme or host", name)
	}
	return parsedURL.Scheme + "://" + parsedURL.Host, nil
}

// ResolveInstallPath combines the current target name with an install path
// found in markup:
//   - a value carrying a scheme ("://") is absolute and replaces name;
//   - a protocol-relative value ("//cdn.example/cms") replaces name, keeping name's scheme;
//   - anything else is relative and is appended to name.
//
// Empty values and values that start by climbing ("../") are rejected.
// A "../" further inside the path is kept as found.
func ResolveInstallPath(name, value string) (string, error) {
	if value == "" {
		return "", ErrEmptyInstallPath
	}
	if strings.HasPrefix(value, "../") {
		return "", ErrTraversal
	}

	if strings.Contains(value, "://") {
		return value, nil
	}

	if strings.HasPrefix(value, "//") {
		parsedURL, err := url.Parse(name)
		if err != nil || parsedURL.Scheme == "" {
			return "", fmt.Errorf("cannot resolve protocol-relative '%s' against '%s'", value, name)
		}
		return parsedURL.Scheme + ":" + value, nil
	}

	return name + value, nil
}
