package regime

import "math"

// Regime represents a coarse market-condition classification derived from
// recent return and volatility statistics.
type Regime int

const (
	RegimeNeutral Regime = iota
	RegimeBull
	RegimeBear
	RegimeSideways
	RegimeTransition
	RegimeCrisis
)

func (r Regime) String() string {
	switch r {
	case RegimeBull:
		return "bull"
	case RegimeBear:
		return "bear"
	case RegimeSideways:
		return "sideways"
	case RegimeTransition:
		return "transition"
	case RegimeCrisis:
		return "crisis"
	case RegimeNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Detector classifies a window of returns into a Regime. Stateless and
// safe to share across accounts.
type Detector struct {
	// MeanThreshold is the absolute mean return above which the window is
	// considered directional (bull or bear).
	MeanThreshold float64

	// VolatilityCap is the standard deviation above which the window is
	// classified as crisis regardless of direction.
	VolatilityCap float64

	// SidewaysTolerance bounds both mean and volatility for the sideways
	// classification.
	SidewaysTolerance float64

	// MinSamples is the minimum number of returns required to classify
	// anything other than neutral.
	MinSamples int
}

// NewDetector creates a detector with default thresholds tuned for hourly
// bars.
func NewDetector() *Detector {
	return &Detector{
		MeanThreshold:     0.001,
		VolatilityCap:     0.05,
		SidewaysTolerance: 0.0005,
		MinSamples:        10,
	}
}

// Detect classifies the given returns window. Insufficient data or a
// failed computation yields RegimeNeutral; Detect never returns an error.
func (d *Detector) Detect(returns []float64) (r Regime) {
	defer func() {
		if recover() != nil {
			r = RegimeNeutral
		}
	}()

	if len(returns) < d.MinSamples {
		return RegimeNeutral
	}

	mean, vol := meanStd(returns)
	if math.IsNaN(mean) || math.IsNaN(vol) {
		return RegimeNeutral
	}

	switch {
	case vol >= d.VolatilityCap:
		return RegimeCrisis
	case math.Abs(mean) <= d.SidewaysTolerance && vol <= d.SidewaysTolerance*10:
		return RegimeSideways
	case mean > d.MeanThreshold:
		return RegimeBull
	case mean < -d.MeanThreshold:
		return RegimeBear
	default:
		return RegimeTransition
	}
}

// SizingScale maps a regime to a throttle for the Kelly sizer.
func SizingScale(r Regime) float64 {
	switch r {
	case RegimeBull:
		return 1.0
	case RegimeBear:
		return 0.5
	case RegimeSideways:
		return 0.75
	case RegimeTransition:
		return 0.5
	case RegimeCrisis:
		return 0.25
	default:
		return 0.75
	}
}

func meanStd(values []float64) (float64, float64) {
	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= n

	return mean, math.Sqrt(variance)
}
