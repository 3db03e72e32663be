package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func repeated(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestDetectInsufficientDataIsNeutral(t *testing.T) {
	d := NewDetector()
	assert.Equal(t, RegimeNeutral, d.Detect(nil))
	assert.Equal(t, RegimeNeutral, d.Detect(repeated(0.01, 5)))
}

func TestDetectBull(t *testing.T) {
	d := NewDetector()
	// Steady positive drift with mild noise.
	returns := make([]float64, 20)
	for i := range returns {
		returns[i] = 0.005
		if i%2 == 0 {
			returns[i] = 0.007
		}
	}
	assert.Equal(t, RegimeBull, d.Detect(returns))
}

func TestDetectBear(t *testing.T) {
	d := NewDetector()
	returns := make([]float64, 20)
	for i := range returns {
		returns[i] = -0.005
		if i%2 == 0 {
			returns[i] = -0.007
		}
	}
	assert.Equal(t, RegimeBear, d.Detect(returns))
}

func TestDetectSideways(t *testing.T) {
	d := NewDetector()
	returns := make([]float64, 20)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.0003
		} else {
			returns[i] = -0.0003
		}
	}
	assert.Equal(t, RegimeSideways, d.Detect(returns))
}

func TestDetectCrisisOnHighVolatility(t *testing.T) {
	d := NewDetector()
	returns := make([]float64, 20)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.08
		} else {
			returns[i] = -0.08
		}
	}
	assert.Equal(t, RegimeCrisis, d.Detect(returns))
}

func TestDetectTransition(t *testing.T) {
	d := NewDetector()
	// Mean inside the directional threshold but too noisy for sideways.
	returns := make([]float64, 20)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.01
		} else {
			returns[i] = -0.0095
		}
	}
	assert.Equal(t, RegimeTransition, d.Detect(returns))
}

func TestRegimeStrings(t *testing.T) {
	assert.Equal(t, "bull", RegimeBull.String())
	assert.Equal(t, "bear", RegimeBear.String())
	assert.Equal(t, "sideways", RegimeSideways.String())
	assert.Equal(t, "transition", RegimeTransition.String())
	assert.Equal(t, "crisis", RegimeCrisis.String())
	assert.Equal(t, "neutral", RegimeNeutral.String())
}

func TestSizingScaleOrdering(t *testing.T) {
	// More hostile regimes never size larger than friendlier ones.
	assert.Greater(t, SizingScale(RegimeBull), SizingScale(RegimeBear))
	assert.Greater(t, SizingScale(RegimeSideways), SizingScale(RegimeCrisis))
	assert.Equal(t, 0.25, SizingScale(RegimeCrisis))
}
