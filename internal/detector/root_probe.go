package detector

import (
	"context"
	"fmt"

	"github.com/aleister1102/typo3enum/internal/common"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/aleister1102/typo3enum/internal/signature"
	"github.com/aleister1102/typo3enum/internal/urlhandler"
	"github.com/rs/zerolog"
)

var (
	rootSignature = signature.FoldedLiteral("typo3", "typo3")

	installPathAttributes = []string{"href", "src", "content"}
	installPathMarkers    = []string{"typo3temp/", "typo3conf/"}
)

// RootProbe fetches the target's landing page and looks for any mention of
// TYPO3. On a hit it also tries to locate the install directory from asset
// references such as href="/cms/typo3conf/...".
type RootProbe struct {
	fetcher Fetcher
	matcher *signature.ReferenceMatcher
	logger  zerolog.Logger
}

// NewRootProbe creates a RootProbe. window bounds the distance between an
// attribute and a typo3temp/ or typo3conf/ reference.
func NewRootProbe(fetcher Fetcher, window int, logger zerolog.Logger) (*RootProbe, error) {
	matcher, err := signature.NewReferenceMatcher(installPathAttributes, installPathMarkers, window)
	if err != nil {
		return nil, common.WrapError(err, "failed to build install path matcher")
	}

	return &RootProbe{
		fetcher: fetcher,
		matcher: matcher,
		logger:  logger.With().Str("component", "RootProbe").Logger(),
	}, nil
}

func (p *RootProbe) Name() string { return RootProbeName }

// Check implements Probe.
func (p *RootProbe) Check(ctx context.Context, target *models.Target) models.ProbeResult {
	url := target.Name + "/"

	resp, err := p.fetcher.Fetch(ctx, target.Name, "/")
	if err != nil {
		return models.TransportError(p.Name(), url, err)
	}

	body := resp.BodyString()
	if !rootSignature.Match(body) {
		return models.NoMatch(p.Name(), url, ErrNoMarker)
	}

	target.MarkDetected()
	target.AddInterestingHeaders(InterestingHeaders(resp.Headers, resp.StatusCode))

	result := models.Hit(p.Name(), url)
	if target.HasInstallPath() {
		return result
	}

	if err := p.recordInstallPath(target, body); err != nil {
		p.logger.Debug().Err(err).Str("target", target.Name).Msg("Install path not extracted")
		result.ExtractErr = err
	}
	return result
}

func (p *RootProbe) recordInstallPath(target *models.Target, body string) error {
	captured, err := p.matcher.Find(body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoInstallPath, err)
	}

	value, err := signature.ExtractValue(captured)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRejectedInstallPath, err)
	}

	name, err := urlhandler.ResolveInstallPath(target.Name, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRejectedInstallPath, err)
	}

	target.SetInstallPath(name, value)
	p.logger.Debug().Str("name", name).Str("install_path", value).Msg("Install path recorded")
	return nil
}
