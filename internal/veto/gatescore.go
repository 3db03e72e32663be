package veto

import (
	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/internal/regime"
)

// GateScoreConfig holds the weighted-vote parameters. Weights name signal
// sources; unknown sources in a score map are ignored so providers can be
// added without reconfiguring the gate.
type GateScoreConfig struct {
	// Weights per named signal source. Sources absent from the map carry
	// zero weight.
	Weights map[string]float64 `yaml:"weights" json:"weights"`

	// BaseThreshold is the weighted-average score required for a pass vote
	// under neutral conditions.
	BaseThreshold float64 `yaml:"base_threshold" json:"base_threshold"`
}

// DefaultGateScoreConfig returns an even three-source weighting.
func DefaultGateScoreConfig() GateScoreConfig {
	return GateScoreConfig{
		Weights: map[string]float64{
			"momentum":  1.0,
			"sentiment": 1.0,
			"liquidity": 1.0,
		},
		BaseThreshold: 0.5,
	}
}

// GateScore aggregates per-source confidence scores into a single binary
// vote. The threshold shifts with the market regime so the same evidence is
// held to a stricter standard in hostile conditions.
type GateScore struct {
	cfg GateScoreConfig
	log *logger.Logger
}

// NewGateScore creates a gate-score voter. The logger may be nil.
func NewGateScore(cfg GateScoreConfig, log *logger.Logger) *GateScore {
	if cfg.Weights == nil {
		cfg = DefaultGateScoreConfig()
	}
	return &GateScore{cfg: cfg, log: log}
}

// Vote returns 1 (pass) or 0 (veto) for the given per-source scores under
// the given regime. An empty or fully unweighted score map abstains with a
// pass so a missing feed cannot halt trading on its own.
func (g *GateScore) Vote(scores map[string]float64, r regime.Regime) int {
	totalWeight := 0.0
	weightedSum := 0.0
	for source, score := range scores {
		w, ok := g.cfg.Weights[source]
		if !ok || w <= 0 {
			continue
		}
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		weightedSum += score * w
		totalWeight += w
	}

	if totalWeight == 0 {
		if g.log != nil {
			g.log.Warning("gate score has no weighted inputs, abstaining with pass")
		}
		return 1
	}

	average := weightedSum / totalWeight
	if average >= g.threshold(r) {
		return 1
	}
	return 0
}

// threshold adjusts the base requirement by regime. Crisis demands the most
// agreement; a confirmed bull trend relaxes it slightly.
func (g *GateScore) threshold(r regime.Regime) float64 {
	t := g.cfg.BaseThreshold
	switch r {
	case regime.RegimeCrisis:
		t += 0.15
	case regime.RegimeBear:
		t += 0.05
	case regime.RegimeBull:
		t -= 0.05
	}
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return t
}
