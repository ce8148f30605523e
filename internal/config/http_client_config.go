package config

import "time"

// HTTPClientConfig holds the transport settings used by every probe.
type HTTPClientConfig struct {
	TimeoutSecs        int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty" validate:"required"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0"`
	MaxContentSize     int               `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"min=0"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,proxyurl"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultHTTPClientConfig returns the transport defaults.
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		TimeoutSecs:        DefaultHTTPTimeoutSecs,
		UserAgent:          DefaultHTTPUserAgent,
		InsecureSkipVerify: DefaultHTTPInsecureSkipVerify,
		FollowRedirects:    DefaultHTTPFollowRedirects,
		MaxRedirects:       DefaultHTTPMaxRedirects,
		MaxContentSize:     DefaultHTTPMaxContentSize,
		EnableHTTP2:        DefaultHTTPEnableHTTP2,
		CustomHeaders:      make(map[string]string),
	}
}

// Timeout returns TimeoutSecs as a duration.
func (c HTTPClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}
