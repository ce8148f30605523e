package config

// ReporterConfig controls console rendering.
type ReporterConfig struct {
	NoColor     bool `json:"no_color" yaml:"no_color"`
	ShowHeaders bool `json:"show_headers" yaml:"show_headers"`
}

// NewDefaultReporterConfig returns the reporter defaults.
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		NoColor:     false,
		ShowHeaders: true,
	}
}
