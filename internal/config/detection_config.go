package config

// DetectionConfig tunes the probe pipeline.
type DetectionConfig struct {
	// LookaheadWindow bounds how many characters may separate an href/src/content
	// attribute from a typo3temp/ or typo3conf/ reference.
	LookaheadWindow  int    `json:"lookahead_window,omitempty" yaml:"lookahead_window,omitempty" validate:"min=1,max=1000"`
	ErrorPagePath    string `json:"error_page_path,omitempty" yaml:"error_page_path,omitempty" validate:"required,startswith=/"`
	LoginPath        string `json:"login_path,omitempty" yaml:"login_path,omitempty" validate:"required,startswith=/"`
	AlwaysCheckLogin bool   `json:"always_check_login" yaml:"always_check_login"`
}

// NewDefaultDetectionConfig returns the probe defaults.
func NewDefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		LookaheadWindow:  DefaultDetectionLookaheadWindow,
		ErrorPagePath:    DefaultDetectionErrorPagePath,
		LoginPath:        DefaultDetectionLoginPath,
		AlwaysCheckLogin: false,
	}
}
