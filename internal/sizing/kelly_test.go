package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFractionKnownValues(t *testing.T) {
	s := NewSizer(nil)

	// f = p - (1-p)/b
	assert.InDelta(t, 0.4, s.Fraction(0.6, 1.0), 1e-9)
	assert.InDelta(t, 0.25, s.Fraction(0.5, 2.0), 1e-9)
	assert.InDelta(t, 0.1, s.Fraction(0.55, 1.0), 1e-9)
}

func TestFractionClampsToUnitInterval(t *testing.T) {
	s := NewSizer(nil)

	// A certain win sizes to everything, never more.
	assert.Equal(t, 1.0, s.Fraction(1.0, 5.0))

	// A negative edge sizes to nothing, never short.
	assert.Equal(t, 0.0, s.Fraction(0.2, 1.0))
}

func TestFractionBoundaryInputs(t *testing.T) {
	s := NewSizer(nil)

	assert.Equal(t, 0.0, s.Fraction(0.0, 1.0))
	assert.Equal(t, 1.0, s.Fraction(1.0, 0.001))
	f := s.Fraction(0.5, 1.0)
	assert.GreaterOrEqual(t, f, 0.0)
	assert.LessOrEqual(t, f, 1.0)
}

func TestFractionInvalidInputsReturnZero(t *testing.T) {
	s := NewSizer(nil)

	cases := []struct {
		name string
		p    float64
		b    float64
	}{
		{"p below zero", -0.1, 1.0},
		{"p above one", 1.1, 1.0},
		{"b zero", 0.5, 0},
		{"b negative", 0.5, -2},
		{"p NaN", math.NaN(), 1.0},
		{"b NaN", 0.5, math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 0.0, s.Fraction(tc.p, tc.b))
		})
	}
}

func TestFractionForRegimeThrottles(t *testing.T) {
	s := NewSizer(nil)

	base := s.Fraction(0.6, 1.0)
	assert.InDelta(t, base*0.5, s.FractionForRegime(0.6, 1.0, 0.5), 1e-9)
	assert.InDelta(t, base, s.FractionForRegime(0.6, 1.0, 1.0), 1e-9)
}

func TestFractionForRegimeNeverAmplifies(t *testing.T) {
	s := NewSizer(nil)

	base := s.Fraction(0.6, 1.0)
	assert.LessOrEqual(t, s.FractionForRegime(0.6, 1.0, 3.0), base)
}

func TestFractionForRegimeIgnoresNaNScale(t *testing.T) {
	s := NewSizer(nil)

	base := s.Fraction(0.6, 1.0)
	assert.Equal(t, base, s.FractionForRegime(0.6, 1.0, math.NaN()))
}
