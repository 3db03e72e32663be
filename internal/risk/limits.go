package risk

import "time"

// DefaultDayLossCapPct is applied when no daily loss cap is configured.
// An unconfigured cap never means unlimited loss; it means a conservative 2%.
const DefaultDayLossCapPct = 0.02

// BarDuration is the fixed bar cadence used for cooldown arithmetic.
const BarDuration = time.Hour

const barDurationMs = int64(BarDuration / time.Millisecond)

// Limits holds the per-session risk configuration. Immutable once the gate
// is constructed. A zero value disables the corresponding check, except for
// DayLossCapPct where zero falls back to DefaultDayLossCapPct.
type Limits struct {
	DayLossCapPct        float64 `yaml:"day_loss_cap_pct" json:"day_loss_cap_pct"`
	PerTradeNotionalCap  float64 `yaml:"per_trade_notional_cap" json:"per_trade_notional_cap"`
	MaxTradesPerDay      int     `yaml:"max_trades_per_day" json:"max_trades_per_day"`
	MaxConsecutiveLosers int     `yaml:"max_consecutive_losers" json:"max_consecutive_losers"`
	CooldownBars         int     `yaml:"cooldown_bars" json:"cooldown_bars"`
	MaxDrawdownPct       float64 `yaml:"max_drawdown_pct" json:"max_drawdown_pct"`
	FailClosed           bool    `yaml:"fail_closed" json:"fail_closed"`
}

// DefaultLimits returns a conservative configuration suitable for paper
// trading accounts.
func DefaultLimits() Limits {
	return Limits{
		DayLossCapPct:        DefaultDayLossCapPct,
		PerTradeNotionalCap:  10000,
		MaxTradesPerDay:      0, // unlimited unless configured
		MaxConsecutiveLosers: 3,
		CooldownBars:         4,
		MaxDrawdownPct:       0.10,
		FailClosed:           false,
	}
}

// dayLossCap returns the effective daily loss cap fraction.
func (l Limits) dayLossCap() float64 {
	if l.DayLossCapPct == 0 {
		return DefaultDayLossCapPct
	}
	if l.DayLossCapPct < 0 {
		return -l.DayLossCapPct
	}
	return l.DayLossCapPct
}
