package detector

import (
	"context"

	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/aleister1102/typo3enum/internal/signature"
	"github.com/aleister1102/typo3enum/internal/urlhandler"
	"github.com/rs/zerolog"
)

var errorPageSignature = signature.Literal("error_page", "TYPO3 CMS")

// ErrorPageProbe requests a page that cannot exist and checks whether TYPO3's
// own error handler answered. It always probes the host root, whatever path
// the target name carries.
type ErrorPageProbe struct {
	fetcher Fetcher
	path    string
	logger  zerolog.Logger
}

// NewErrorPageProbe creates the probe. An empty path uses the default.
func NewErrorPageProbe(fetcher Fetcher, path string, logger zerolog.Logger) *ErrorPageProbe {
	if path == "" {
		path = config.DefaultDetectionErrorPagePath
	}
	return &ErrorPageProbe{
		fetcher: fetcher,
		path:    path,
		logger:  logger.With().Str("component", "ErrorPageProbe").Logger(),
	}
}

func (p *ErrorPageProbe) Name() string { return ErrorPageProbeName }

// Check implements Probe.
func (p *ErrorPageProbe) Check(ctx context.Context, target *models.Target) models.ProbeResult {
	base, err := urlhandler.BaseURL(target.Name)
	if err != nil {
		return models.ParseError(p.Name(), target.Name, err)
	}

	url := base + p.path
	resp, err := p.fetcher.Fetch(ctx, base, p.path)
	if err != nil {
		return models.TransportError(p.Name(), url, err)
	}

	if !errorPageSignature.Match(resp.BodyString()) {
		return models.NoMatch(p.Name(), url, ErrNoMarker)
	}

	target.MarkDetected()
	return models.Hit(p.Name(), url)
}
