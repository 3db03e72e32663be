package signals

import (
	"math"

	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// RSI signals on Relative Strength Index extremes: oversold is a buy,
// overbought a sell.
type RSI struct {
	period     int
	oversold   float64
	overbought float64
}

// NewRSI creates an RSI provider with the given period and the standard
// 30/70 bands.
func NewRSI(period int) *RSI {
	if period <= 0 {
		period = 14
	}
	return &RSI{period: period, oversold: 30, overbought: 70}
}

func (r *RSI) Name() string { return "rsi" }

func (r *RSI) Evaluate(bars []types.OHLCV) types.Side {
	prices := closes(bars)
	if len(prices) < r.period+1 {
		return types.SideHold
	}

	changes := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		changes[i-1] = prices[i] - prices[i-1]
	}

	gains := make([]float64, len(changes))
	losses := make([]float64, len(changes))
	for i, change := range changes {
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = math.Abs(change)
		}
	}

	avgGain := sma(gains[len(gains)-r.period:])
	avgLoss := sma(losses[len(losses)-r.period:])

	value := 100.0
	if avgLoss != 0 {
		rs := avgGain / avgLoss
		value = 100 - (100 / (1 + rs))
	}

	switch {
	case value < r.oversold:
		return types.SideBuy
	case value > r.overbought:
		return types.SideSell
	default:
		return types.SideHold
	}
}
