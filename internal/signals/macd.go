package signals

import "github.com/rexaitrading/hybrid-ai-trading/pkg/types"

// MACD signals on the MACD line crossing its signal line.
type MACD struct {
	fast   int
	slow   int
	signal int
}

// NewMACD creates a MACD provider with the standard 12/26/9 periods.
func NewMACD() *MACD {
	return &MACD{fast: 12, slow: 26, signal: 9}
}

func (m *MACD) Name() string { return "macd" }

func (m *MACD) Evaluate(bars []types.OHLCV) types.Side {
	prices := closes(bars)
	if len(prices) < m.slow+m.signal {
		return types.SideHold
	}

	fastEma := ema(prices, m.fast)
	slowEma := ema(prices, m.slow)
	macdLine := make([]float64, len(prices))
	for i := range prices {
		macdLine[i] = fastEma[i] - slowEma[i]
	}
	signalLine := ema(macdLine, m.signal)

	n := len(prices) - 1
	prevDiff := macdLine[n-1] - signalLine[n-1]
	currDiff := macdLine[n] - signalLine[n]

	switch {
	case prevDiff <= 0 && currDiff > 0:
		return types.SideBuy
	case prevDiff >= 0 && currDiff < 0:
		return types.SideSell
	default:
		return types.SideHold
	}
}
