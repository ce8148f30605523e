package detector

import (
	"context"

	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/rs/zerolog"
)

// Pipeline runs detection probes in order and stops at the first hit.
type Pipeline struct {
	probes []Probe
	logger zerolog.Logger
}

// NewPipeline creates a pipeline over probes, run in the given order.
func NewPipeline(logger zerolog.Logger, probes ...Probe) *Pipeline {
	return &Pipeline{
		probes: probes,
		logger: logger.With().Str("component", "Pipeline").Logger(),
	}
}

// NewDefaultPipeline wires the root page, default file and error page probes.
func NewDefaultPipeline(fetcher Fetcher, cfg config.DetectionConfig, logger zerolog.Logger) (*Pipeline, error) {
	root, err := NewRootProbe(fetcher, cfg.LookaheadWindow, logger)
	if err != nil {
		return nil, err
	}

	return NewPipeline(logger,
		root,
		NewDefaultFileProbe(fetcher, nil, logger),
		NewErrorPageProbe(fetcher, cfg.ErrorPagePath, logger),
	), nil
}

// Run reports whether any probe identified target as TYPO3. Probe failures
// count as negative answers.
func (p *Pipeline) Run(ctx context.Context, target *models.Target) bool {
	results := p.Evaluate(ctx, target)
	return len(results) > 0 && results[len(results)-1].OK()
}

// Evaluate runs probes until one hits and returns every result produced.
// Probes after the first hit are not run.
func (p *Pipeline) Evaluate(ctx context.Context, target *models.Target) []models.ProbeResult {
	results := make([]models.ProbeResult, 0, len(p.probes))

	for _, probe := range p.probes {
		result := probe.Check(ctx, target)
		results = append(results, result)

		event := p.logger.Debug().
			Str("target", target.Name).
			Str("probe", result.Probe).
			Str("status", result.Status.String()).
			Str("url", result.URL)
		if result.Err != nil {
			event = event.Err(result.Err)
		}
		if result.ExtractErr != nil {
			event = event.AnErr("extract_error", result.ExtractErr)
		}
		event.Msg("Probe finished")

		if result.OK() {
			break
		}
	}

	return results
}
