package signals

import "github.com/rexaitrading/hybrid-ai-trading/pkg/types"

// Breakout signals on Donchian channel breaks: a close above the prior
// N-bar high is a buy, below the prior N-bar low a sell.
type Breakout struct {
	period int
}

// NewBreakout creates a breakout provider with the given lookback period.
func NewBreakout(period int) *Breakout {
	if period <= 0 {
		period = 20
	}
	return &Breakout{period: period}
}

func (b *Breakout) Name() string { return "breakout" }

func (b *Breakout) Evaluate(bars []types.OHLCV) types.Side {
	if len(bars) < b.period+1 {
		return types.SideHold
	}

	window := bars[len(bars)-b.period-1 : len(bars)-1]
	high := window[0].High
	low := window[0].Low
	for _, bar := range window[1:] {
		if bar.High > high {
			high = bar.High
		}
		if bar.Low < low {
			low = bar.Low
		}
	}

	last := bars[len(bars)-1].Close
	switch {
	case last > high:
		return types.SideBuy
	case last < low:
		return types.SideSell
	default:
		return types.SideHold
	}
}
