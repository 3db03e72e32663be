package signals

import (
	"math"

	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// Bollinger signals mean reversion at the bands: a close below the lower
// band is a buy, above the upper band a sell.
type Bollinger struct {
	period int
	stdDev float64
}

// NewBollinger creates a Bollinger band provider with the given period and
// the standard 2.0 deviation multiplier.
func NewBollinger(period int) *Bollinger {
	if period <= 0 {
		period = 20
	}
	return &Bollinger{period: period, stdDev: 2.0}
}

func (b *Bollinger) Name() string { return "bollinger" }

func (b *Bollinger) Evaluate(bars []types.OHLCV) types.Side {
	prices := closes(bars)
	if len(prices) < b.period {
		return types.SideHold
	}

	window := prices[len(prices)-b.period:]
	mid := sma(window)

	variance := 0.0
	for _, p := range window {
		diff := p - mid
		variance += diff * diff
	}
	std := math.Sqrt(variance / float64(len(window)))

	last := prices[len(prices)-1]
	switch {
	case last < mid-b.stdDev*std:
		return types.SideBuy
	case last > mid+b.stdDev*std:
		return types.SideSell
	default:
		return types.SideHold
	}
}
