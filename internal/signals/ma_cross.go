package signals

import "github.com/rexaitrading/hybrid-ai-trading/pkg/types"

// MACross signals on the fast simple moving average crossing the slow one.
type MACross struct {
	fast int
	slow int
}

// NewMACross creates a moving-average cross provider. Invalid or inverted
// periods fall back to 10/30.
func NewMACross(fast, slow int) *MACross {
	if fast <= 0 || slow <= 0 || fast >= slow {
		fast, slow = 10, 30
	}
	return &MACross{fast: fast, slow: slow}
}

func (m *MACross) Name() string { return "ma_cross" }

func (m *MACross) Evaluate(bars []types.OHLCV) types.Side {
	prices := closes(bars)
	if len(prices) < m.slow+1 {
		return types.SideHold
	}

	curr := prices[:len(prices)]
	prev := prices[:len(prices)-1]

	currFast := sma(curr[len(curr)-m.fast:])
	currSlow := sma(curr[len(curr)-m.slow:])
	prevFast := sma(prev[len(prev)-m.fast:])
	prevSlow := sma(prev[len(prev)-m.slow:])

	switch {
	case prevFast <= prevSlow && currFast > currSlow:
		return types.SideBuy
	case prevFast >= prevSlow && currFast < currSlow:
		return types.SideSell
	default:
		return types.SideHold
	}
}
