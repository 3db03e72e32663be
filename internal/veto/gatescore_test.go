package veto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rexaitrading/hybrid-ai-trading/internal/regime"
)

func TestGateScorePassesAboveThreshold(t *testing.T) {
	g := NewGateScore(DefaultGateScoreConfig(), nil)

	scores := map[string]float64{"momentum": 0.8, "sentiment": 0.7, "liquidity": 0.6}
	assert.Equal(t, 1, g.Vote(scores, regime.RegimeNeutral))
}

func TestGateScoreVetoesBelowThreshold(t *testing.T) {
	g := NewGateScore(DefaultGateScoreConfig(), nil)

	scores := map[string]float64{"momentum": 0.2, "sentiment": 0.3, "liquidity": 0.4}
	assert.Equal(t, 0, g.Vote(scores, regime.RegimeNeutral))
}

func TestGateScoreWeighting(t *testing.T) {
	cfg := GateScoreConfig{
		Weights:       map[string]float64{"momentum": 3.0, "sentiment": 1.0},
		BaseThreshold: 0.5,
	}
	g := NewGateScore(cfg, nil)

	// Heavy momentum weight carries a weak sentiment score.
	scores := map[string]float64{"momentum": 0.8, "sentiment": 0.1}
	assert.Equal(t, 1, g.Vote(scores, regime.RegimeNeutral))

	// Flipped, the weighted average collapses below threshold.
	scores = map[string]float64{"momentum": 0.1, "sentiment": 0.8}
	assert.Equal(t, 0, g.Vote(scores, regime.RegimeNeutral))
}

func TestGateScoreRegimeAdjustments(t *testing.T) {
	g := NewGateScore(DefaultGateScoreConfig(), nil)

	// 0.6 clears neutral (0.5) and bull (0.45) but not crisis (0.65).
	scores := map[string]float64{"momentum": 0.6, "sentiment": 0.6, "liquidity": 0.6}
	assert.Equal(t, 1, g.Vote(scores, regime.RegimeNeutral))
	assert.Equal(t, 1, g.Vote(scores, regime.RegimeBull))
	assert.Equal(t, 0, g.Vote(scores, regime.RegimeCrisis))

	// 0.52 clears neutral but not bear (0.55).
	scores = map[string]float64{"momentum": 0.52, "sentiment": 0.52, "liquidity": 0.52}
	assert.Equal(t, 1, g.Vote(scores, regime.RegimeNeutral))
	assert.Equal(t, 0, g.Vote(scores, regime.RegimeBear))
}

func TestGateScoreUnknownSourcesIgnored(t *testing.T) {
	g := NewGateScore(DefaultGateScoreConfig(), nil)

	scores := map[string]float64{"momentum": 0.9, "astrology": 0.0}
	assert.Equal(t, 1, g.Vote(scores, regime.RegimeNeutral))
}

func TestGateScoreNoWeightedInputsAbstains(t *testing.T) {
	g := NewGateScore(DefaultGateScoreConfig(), nil)

	assert.Equal(t, 1, g.Vote(nil, regime.RegimeNeutral))
	assert.Equal(t, 1, g.Vote(map[string]float64{"astrology": 0.1}, regime.RegimeNeutral))
}

func TestGateScoreClampsOutOfRangeScores(t *testing.T) {
	g := NewGateScore(DefaultGateScoreConfig(), nil)

	// Scores are clamped to [0, 1] so a wild feed cannot force a pass.
	scores := map[string]float64{"momentum": 5.0, "sentiment": 0.0, "liquidity": 0.0}
	assert.Equal(t, 0, g.Vote(scores, regime.RegimeNeutral))
}
