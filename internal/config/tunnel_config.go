package config

import (
	"fmt"
	"time"
)

// TunnelConfig describes the local anonymizing proxy (privoxy in front of tor).
type TunnelConfig struct {
	Enabled          bool     `json:"enabled" yaml:"enabled"`
	Host             string   `json:"host,omitempty" yaml:"host,omitempty" validate:"required"`
	Port             int      `json:"port,omitempty" yaml:"port,omitempty" validate:"min=1,max=65535"`
	CheckURL         string   `json:"check_url,omitempty" yaml:"check_url,omitempty" validate:"required,url"`
	ConfirmationText string   `json:"confirmation_text,omitempty" yaml:"confirmation_text,omitempty" validate:"required"`
	Services         []string `json:"services,omitempty" yaml:"services,omitempty" validate:"dive,required"`
	TimeoutSecs      int      `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
}

// NewDefaultTunnelConfig returns a disabled tunnel pointing at privoxy's default port.
func NewDefaultTunnelConfig() TunnelConfig {
	return TunnelConfig{
		Enabled:          false,
		Host:             DefaultTunnelHost,
		Port:             DefaultTunnelPort,
		CheckURL:         DefaultTunnelCheckURL,
		ConfirmationText: DefaultTunnelConfirmationText,
		Services:         append([]string(nil), DefaultTunnelServices...),
		TimeoutSecs:      DefaultTunnelTimeoutSecs,
	}
}

// ProxyURL is the HTTP proxy address probes are routed through.
func (c TunnelConfig) ProxyURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// Timeout returns TimeoutSecs as a duration.
func (c TunnelConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}
