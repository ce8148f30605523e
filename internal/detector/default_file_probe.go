package detector

import (
	"context"

	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/aleister1102/typo3enum/internal/signature"
	"github.com/rs/zerolog"
)

// DefaultFile is a file shipped with the TYPO3 source and the text it contains.
type DefaultFile struct {
	Path      string
	Signature signature.Signature
}

// DefaultFiles is tried in order; the first match wins.
var DefaultFiles = []DefaultFile{
	{Path: "/typo3_src/README.md", Signature: signature.MustNew("readme", `[Tt][Yy][Pp][Oo]3 [Cc][Mm][Ss]`)},
	{Path: "/typo3_src/README.txt", Signature: signature.MustNew("readme", `[Tt][Yy][Pp][Oo]3 [Cc][Mm][Ss]`)},
	{Path: "/typo3_src/INSTALL.txt", Signature: signature.MustNew("install", `INSTALLING [Tt][Yy][Pp][Oo]3`)},
	{Path: "/typo3_src/INSTALL.md", Signature: signature.MustNew("install", `INSTALLING [Tt][Yy][Pp][Oo]3`)},
	{Path: "/typo3_src/LICENSE.txt", Signature: signature.MustNew("license", `[Tt][Yy][Pp][Oo]3`)},
}

// DefaultFileProbe looks for distribution files under /typo3_src. The status
// code is ignored; only the body decides.
type DefaultFileProbe struct {
	fetcher Fetcher
	files   []DefaultFile
	logger  zerolog.Logger
}

// NewDefaultFileProbe creates a probe over files, or DefaultFiles when files is empty.
func NewDefaultFileProbe(fetcher Fetcher, files []DefaultFile, logger zerolog.Logger) *DefaultFileProbe {
	if len(files) == 0 {
		files = DefaultFiles
	}
	return &DefaultFileProbe{
		fetcher: fetcher,
		files:   files,
		logger:  logger.With().Str("component", "DefaultFileProbe").Logger(),
	}
}

func (p *DefaultFileProbe) Name() string { return DefaultFileProbeName }

// Check implements Probe.
func (p *DefaultFileProbe) Check(ctx context.Context, target *models.Target) models.ProbeResult {
	var lastErr error
	failures := 0

	for _, file := range p.files {
		url := target.Name + file.Path
		resp, err := p.fetcher.Fetch(ctx, target.Name, file.Path)
		if err != nil {
			p.logger.Debug().Err(err).Str("url", url).Msg("Default file fetch failed")
			lastErr = err
			failures++
			continue
		}

		if file.Signature.Match(resp.BodyString()) {
			target.MarkDetected()
			return models.Hit(p.Name(), url)
		}
	}

	if failures == len(p.files) {
		return models.TransportError(p.Name(), target.Name, lastErr)
	}
	return models.NoMatch(p.Name(), target.Name, ErrNoMarker)
}
