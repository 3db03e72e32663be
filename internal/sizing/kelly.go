package sizing

import (
	"math"

	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
)

// Sizer converts an edge estimate into a bounded position-size fraction
// using the Kelly criterion. Stateless and safe to share across accounts.
type Sizer struct {
	log *logger.Logger
}

// NewSizer creates a Kelly sizer. The logger may be nil.
func NewSizer(log *logger.Logger) *Sizer {
	return &Sizer{log: log}
}

// Fraction returns the Kelly fraction f = p - (1-p)/b clamped to [0, 1].
// Invalid inputs (p outside [0,1], b <= 0, NaN) return exactly 0.0; sizing
// must never block the pipeline, and zero size is the safe default.
func (s *Sizer) Fraction(winProbability, payoffRatio float64) (f float64) {
	defer func() {
		if r := recover(); r != nil {
			if s.log != nil {
				s.log.Warning("kelly computation panicked: %v", r)
			}
			f = 0.0
		}
	}()

	if math.IsNaN(winProbability) || math.IsNaN(payoffRatio) {
		return 0.0
	}
	if winProbability < 0 || winProbability > 1 || payoffRatio <= 0 {
		return 0.0
	}

	f = winProbability - (1-winProbability)/payoffRatio
	return clamp01(f)
}

// FractionForRegime is Fraction with an external regime signal throttling
// the result. The scale is clamped to [0, 1] before multiplying so a regime
// model can only shrink the stake, never amplify it.
func (s *Sizer) FractionForRegime(winProbability, payoffRatio, regimeScale float64) float64 {
	f := s.Fraction(winProbability, payoffRatio)
	if f == 0 {
		return 0
	}
	if math.IsNaN(regimeScale) {
		return f
	}
	return clamp01(f * clamp01(regimeScale))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
