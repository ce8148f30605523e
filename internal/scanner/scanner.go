// Package scanner runs detection over a list of targets, one at a time.
package scanner

import (
	"context"
	"errors"

	"github.com/aleister1102/typo3enum/internal/common"
	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/detector"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/rs/zerolog"
)

// ErrNoTargets is returned when no input survived preprocessing.
var ErrNoTargets = errors.New("no valid targets to scan")

// Reporter receives each finished target.
type Reporter interface {
	Report(target *models.Target) error
}

// Summary describes a finished scan.
type Summary struct {
	Preprocess PreprocessStats  `json:"preprocess"`
	Scanned    int              `json:"scanned"`
	Detected   int              `json:"detected"`
	Targets    []*models.Target `json:"targets"`
}

// Scanner ties preprocessing, detection, the login check and reporting together.
type Scanner struct {
	config       config.DetectionConfig
	preprocessor *TargetPreprocessor
	pipeline     *detector.Pipeline
	login        detector.Probe
	reporter     Reporter
	logger       zerolog.Logger
}

// NewScanner wires the default probes over fetcher. reporter may be nil.
func NewScanner(cfg config.DetectionConfig, fetcher detector.Fetcher, reporter Reporter, logger zerolog.Logger) (*Scanner, error) {
	pipeline, err := detector.NewDefaultPipeline(fetcher, cfg, logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to build detection pipeline")
	}

	return &Scanner{
		config:       cfg,
		preprocessor: NewTargetPreprocessor(logger),
		pipeline:     pipeline,
		login:        detector.NewLoginProbe(fetcher, cfg.LoginPath, logger),
		reporter:     reporter,
		logger:       logger.With().Str("component", "Scanner").Logger(),
	}, nil
}

// Scan processes inputs sequentially. On cancellation it stops between
// targets and returns what was finished together with ctx.Err().
func (s *Scanner) Scan(ctx context.Context, inputs []string) (Summary, error) {
	prepared, stats := s.preprocessor.Prepare(inputs)
	summary := Summary{Preprocess: stats}
	if len(prepared) == 0 {
		return summary, ErrNoTargets
	}

	s.logger.Info().Int("targets", len(prepared)).Msg("Starting scan")

	for _, p := range prepared {
		if err := ctx.Err(); err != nil {
			s.logger.Warn().Int("scanned", summary.Scanned).Msg("Scan interrupted")
			return summary, err
		}

		target := s.ScanTarget(ctx, models.NewTarget(p.Original, p.Name))
		summary.Scanned++
		summary.Targets = append(summary.Targets, target)
		if target.Detected {
			summary.Detected++
		}

		if s.reporter != nil {
			if err := s.reporter.Report(target); err != nil {
				s.logger.Error().Err(err).Str("target", target.Name).Msg("Failed to report target")
			}
		}
	}

	s.logger.Info().Int("scanned", summary.Scanned).Int("detected", summary.Detected).Msg("Scan finished")
	return summary, nil
}

// ScanTarget runs detection and, when it applies, the login check on target.
func (s *Scanner) ScanTarget(ctx context.Context, target *models.Target) *models.Target {
	detected := s.pipeline.Run(ctx, target)

	if detected || s.config.AlwaysCheckLogin {
		result := s.login.Check(ctx, target)
		if !result.OK() {
			s.logger.Debug().Err(result.Err).Str("target", target.Name).Msg("Login page not classified")
		}
	}

	s.logger.Info().
		Str("target", target.Name).
		Bool("detected", target.Detected).
		Str("install_path", target.InstallPath).
		Msg("Target scanned")
	return target
}
