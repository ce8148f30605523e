package scanner

import (
	"github.com/aleister1102/typo3enum/internal/urlhandler"
	"github.com/rs/zerolog"
)

// PreparedTarget is a normalized target alongside the input it came from.
type PreparedTarget struct {
	Original string
	Name     string
}

// PreprocessStats counts what happened to the raw inputs.
type PreprocessStats struct {
	Input      int `json:"input"`
	Invalid    int `json:"invalid"`
	Duplicates int `json:"duplicates"`
	Accepted   int `json:"accepted"`
}

// TargetPreprocessor normalizes raw inputs and drops invalid and duplicate ones,
// keeping first-seen order.
type TargetPreprocessor struct {
	logger zerolog.Logger
}

// NewTargetPreprocessor creates a preprocessor.
func NewTargetPreprocessor(logger zerolog.Logger) *TargetPreprocessor {
	return &TargetPreprocessor{
		logger: logger.With().Str("component", "TargetPreprocessor").Logger(),
	}
}

// Prepare normalizes inputs.
func (tp *TargetPreprocessor) Prepare(inputs []string) ([]PreparedTarget, PreprocessStats) {
	stats := PreprocessStats{Input: len(inputs)}
	seen := make(map[string]struct{}, len(inputs))
	prepared := make([]PreparedTarget, 0, len(inputs))

	for _, input := range inputs {
		name, err := urlhandler.NormalizeTarget(input)
		if err != nil {
			tp.logger.Warn().Err(err).Str("input", input).Msg("Skipping invalid target")
			stats.Invalid++
			continue
		}
		if _, ok := seen[name]; ok {
			stats.Duplicates++
			continue
		}
		seen[name] = struct{}{}
		prepared = append(prepared, PreparedTarget{Original: input, Name: name})
	}

	stats.Accepted = len(prepared)
	tp.logger.Debug().
		Int("input", stats.Input).
		Int("invalid", stats.Invalid).
		Int("duplicates", stats.Duplicates).
		Int("accepted", stats.Accepted).
		Msg("Targets prepared")

	return prepared, stats
}
