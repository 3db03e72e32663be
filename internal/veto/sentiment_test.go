package veto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

type stubScorer struct {
	score float64
	err   error
}

func (s stubScorer) Score(string) (float64, error) { return s.score, s.err }

func TestSentimentAllowsInsideNeutralZone(t *testing.T) {
	f := NewSentimentFilter(DefaultSentimentConfig(), stubScorer{score: 0.55}, nil)

	assert.True(t, f.AllowTrade("", types.SideBuy))
	assert.True(t, f.AllowTrade("", types.SideSell))
}

func TestSentimentThresholds(t *testing.T) {
	f := NewSentimentFilter(DefaultSentimentConfig(), stubScorer{score: 0.65}, nil)
	assert.True(t, f.AllowTrade("", types.SideBuy))
	assert.False(t, f.AllowTrade("", types.SideSell))

	f = NewSentimentFilter(DefaultSentimentConfig(), stubScorer{score: 0.2}, nil)
	assert.False(t, f.AllowTrade("", types.SideBuy))
	assert.True(t, f.AllowTrade("", types.SideSell))
}

func TestSentimentScorerFailureFailsOpen(t *testing.T) {
	f := NewSentimentFilter(DefaultSentimentConfig(), stubScorer{err: errors.New("model down")}, nil)

	assert.True(t, f.AllowTrade("", types.SideBuy))
	assert.True(t, f.AllowTrade("", types.SideSell))
}

func TestSentimentOutOfRangeScoreFailsOpen(t *testing.T) {
	f := NewSentimentFilter(DefaultSentimentConfig(), stubScorer{score: 1.7}, nil)
	assert.True(t, f.AllowTrade("", types.SideBuy))
}

func TestSentimentBiasVetoesOpposingSide(t *testing.T) {
	cfg := DefaultSentimentConfig()
	cfg.Bias = "bullish"
	f := NewSentimentFilter(cfg, stubScorer{score: 0.1}, nil)

	// Bias wins even when the score itself would veto the buy.
	assert.False(t, f.AllowTrade("", types.SideSell))

	cfg.Bias = "bearish"
	f = NewSentimentFilter(cfg, stubScorer{score: 0.9}, nil)
	assert.False(t, f.AllowTrade("", types.SideBuy))
	assert.True(t, f.AllowTrade("", types.SideSell))
}

func TestLexiconScorer(t *testing.T) {
	var s LexiconScorer

	score, err := s.Score("record earnings beat, strong growth and a rally")
	assert.NoError(t, err)
	assert.Greater(t, score, 0.5)

	score, err = s.Score("earnings miss triggers downgrade and selloff")
	assert.NoError(t, err)
	assert.Less(t, score, 0.5)

	score, err = s.Score("nothing notable happened")
	assert.NoError(t, err)
	assert.Equal(t, 0.5, score)
}

func TestNilScorerDefaultsToLexicon(t *testing.T) {
	f := NewSentimentFilter(DefaultSentimentConfig(), nil, nil)
	assert.NotNil(t, f.scorer)
	assert.True(t, f.AllowTrade("nothing notable", types.SideBuy))
}
