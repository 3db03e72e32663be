package signals

import "github.com/rexaitrading/hybrid-ai-trading/pkg/types"

// VWAP signals on the close relative to the volume-weighted average price
// of the window. Zero total volume abstains.
type VWAP struct {
	period int
}

// NewVWAP creates a VWAP provider with the given lookback period.
func NewVWAP(period int) *VWAP {
	if period <= 0 {
		period = 20
	}
	return &VWAP{period: period}
}

func (v *VWAP) Name() string { return "vwap" }

func (v *VWAP) Evaluate(bars []types.OHLCV) types.Side {
	if len(bars) < v.period {
		return types.SideHold
	}

	window := bars[len(bars)-v.period:]
	var pvSum, volSum float64
	for _, bar := range window {
		typical := (bar.High + bar.Low + bar.Close) / 3
		pvSum += typical * bar.Volume
		volSum += bar.Volume
	}
	if volSum == 0 {
		return types.SideHold
	}

	vwap := pvSum / volSum
	last := bars[len(bars)-1].Close
	switch {
	case last > vwap:
		return types.SideBuy
	case last < vwap:
		return types.SideSell
	default:
		return types.SideHold
	}
}
