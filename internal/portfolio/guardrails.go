package portfolio

import (
	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// GuardrailConfig holds the portfolio-level limits checked before the risk
// gate sees an order. Zero values disable their check.
type GuardrailConfig struct {
	// MinEquity is the floor below which all new entries are blocked.
	MinEquity float64 `yaml:"min_equity" json:"min_equity"`

	// MaxSectorExposurePct caps a single sector's share of equity.
	MaxSectorExposurePct float64 `yaml:"max_sector_exposure_pct" json:"max_sector_exposure_pct"`

	// MaxLeverage caps gross exposure over equity. Above it only exposure-
	// reducing trades pass.
	MaxLeverage float64 `yaml:"max_leverage" json:"max_leverage"`

	// MaxPortfolioDrawdownPct halts entries when the equity series has
	// drawn down this far from its peak.
	MaxPortfolioDrawdownPct float64 `yaml:"max_portfolio_drawdown_pct" json:"max_portfolio_drawdown_pct"`

	// SharpeFloor and SortinoFloor block entries while realized performance
	// sits below the floor. Applied only when enough history exists.
	SharpeFloor  float64 `yaml:"sharpe_floor" json:"sharpe_floor"`
	SortinoFloor float64 `yaml:"sortino_floor" json:"sortino_floor"`

	// MinPerformanceSamples is the number of returns required before the
	// performance floors apply.
	MinPerformanceSamples int `yaml:"min_performance_samples" json:"min_performance_samples"`
}

// DefaultGuardrailConfig returns guardrails with only the performance
// sample minimum set; all limit checks start disabled.
func DefaultGuardrailConfig() GuardrailConfig {
	return GuardrailConfig{MinPerformanceSamples: 20}
}

// Guardrails evaluates portfolio-level preconditions. It reads the
// portfolio through the View interface only and never mutates it.
type Guardrails struct {
	cfg  GuardrailConfig
	view View
	log  *logger.Logger
}

// NewGuardrails creates a guardrail checker over the given view.
func NewGuardrails(cfg GuardrailConfig, view View, log *logger.Logger) *Guardrails {
	return &Guardrails{cfg: cfg, view: view, log: log}
}

// CheckEntry reports whether a new position of the given sector and
// notional passes the structural guardrails. The returned reason is empty
// on pass.
func (g *Guardrails) CheckEntry(side types.Side, sector string, notional float64) (bool, string) {
	equity := g.view.Equity()

	if g.cfg.MinEquity > 0 && equity < g.cfg.MinEquity {
		return false, "equity_depleted"
	}

	if g.cfg.MaxSectorExposurePct > 0 && equity > 0 && sector != "" {
		projected := g.view.SectorExposure(sector) + notional
		if projected/equity > g.cfg.MaxSectorExposurePct {
			return false, "sector_cap"
		}
	}

	// Above the leverage cap only exposure-reducing orders may pass. A
	// SELL against a long book reduces exposure; treat it as a hedge.
	if g.cfg.MaxLeverage > 0 && g.view.Leverage() > g.cfg.MaxLeverage && side != types.SideSell {
		return false, "leverage_cap"
	}

	return true, ""
}

// CheckDrawdown reports whether the portfolio equity drawdown is within
// limits.
func (g *Guardrails) CheckDrawdown() (bool, string) {
	if g.cfg.MaxPortfolioDrawdownPct <= 0 {
		return true, ""
	}

	history := g.view.EquityHistory()
	if len(history) == 0 {
		return true, ""
	}

	peak := history[0]
	for _, v := range history {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return true, ""
	}

	drawdown := (peak - history[len(history)-1]) / peak
	if drawdown >= g.cfg.MaxPortfolioDrawdownPct {
		return false, "portfolio_drawdown"
	}
	return true, ""
}

// CheckPerformance reports whether realized Sharpe and Sortino ratios sit
// above their floors. With too little history the check abstains and
// passes.
func (g *Guardrails) CheckPerformance() (bool, string) {
	if g.cfg.SharpeFloor == 0 && g.cfg.SortinoFloor == 0 {
		return true, ""
	}

	returns := ReturnsFromEquity(g.view.EquityHistory())
	minSamples := g.cfg.MinPerformanceSamples
	if minSamples <= 0 {
		minSamples = 20
	}
	if len(returns) < minSamples {
		return true, ""
	}

	if g.cfg.SharpeFloor != 0 && SharpeRatio(returns) < g.cfg.SharpeFloor {
		return false, "sharpe_floor"
	}
	if g.cfg.SortinoFloor != 0 && SortinoRatio(returns) < g.cfg.SortinoFloor {
		return false, "sortino_floor"
	}
	return true, ""
}
