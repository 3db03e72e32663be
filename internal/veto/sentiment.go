package veto

import (
	"strings"

	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// Scorer maps free text to a sentiment score in [0, 1], where 0.5 is
// neutral. Implementations wrap whatever model is in use; the filter treats
// a scoring failure as advisory-only and fails open.
type Scorer interface {
	Score(text string) (float64, error)
}

// SentimentConfig controls the sentiment gate thresholds.
type SentimentConfig struct {
	// Threshold a BUY score must reach (and 1-Threshold a SELL score must
	// stay below) outside the neutral zone.
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// NeutralZone is the half-width around 0.5 inside which trades are
	// allowed unconditionally.
	NeutralZone float64 `yaml:"neutral_zone" json:"neutral_zone"`

	// Bias, when set to "bullish" or "bearish", unconditionally vetoes the
	// opposing side regardless of score.
	Bias string `yaml:"bias" json:"bias"`
}

// DefaultSentimentConfig returns the reference thresholds.
func DefaultSentimentConfig() SentimentConfig {
	return SentimentConfig{
		Threshold:   0.6,
		NeutralZone: 0.1,
	}
}

// SentimentFilter is a stateless advisory veto. It never mutates risk
// session state and never blocks trading on its own failure.
type SentimentFilter struct {
	cfg    SentimentConfig
	scorer Scorer
	log    *logger.Logger
}

// NewSentimentFilter creates a filter with the given scorer. A nil scorer
// falls back to the built-in lexicon scorer.
func NewSentimentFilter(cfg SentimentConfig, scorer Scorer, log *logger.Logger) *SentimentFilter {
	if scorer == nil {
		scorer = LexiconScorer{}
	}
	return &SentimentFilter{cfg: cfg, scorer: scorer, log: log}
}

// AllowTrade reports whether sentiment permits the given side for the given
// context text. Unparseable model output degrades to allow with a
// diagnostic log.
func (f *SentimentFilter) AllowTrade(text string, side types.Side) bool {
	// Directional bias vetoes the opposing side before anything else.
	switch strings.ToLower(f.cfg.Bias) {
	case "bullish":
		if side == types.SideSell {
			return false
		}
	case "bearish":
		if side == types.SideBuy {
			return false
		}
	}

	score, err := f.scorer.Score(text)
	if err != nil || score < 0 || score > 1 {
		if f.log != nil {
			f.log.Warning("sentiment score unavailable (%v), allowing %s", err, side)
		}
		return true
	}

	// Inside the neutral zone sentiment has no opinion.
	if score >= 0.5-f.cfg.NeutralZone && score <= 0.5+f.cfg.NeutralZone {
		return true
	}

	switch side {
	case types.SideBuy:
		return score >= f.cfg.Threshold
	case types.SideSell:
		return score <= 1-f.cfg.Threshold
	default:
		return true
	}
}

// LexiconScorer is a minimal keyword scorer used when no external model is
// wired in. It counts positive and negative words and maps the balance to
// [0, 1].
type LexiconScorer struct{}

var positiveWords = []string{"beat", "strong", "growth", "upgrade", "surge", "record", "bullish", "rally"}

var negativeWords = []string{"miss", "weak", "decline", "downgrade", "plunge", "lawsuit", "bearish", "selloff"}

func (LexiconScorer) Score(text string) (float64, error) {
	lower := strings.ToLower(text)
	pos, neg := 0, 0
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}
	total := pos + neg
	if total == 0 {
		return 0.5, nil
	}
	return float64(pos) / float64(total), nil
}
