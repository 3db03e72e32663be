package signals

import "github.com/rexaitrading/hybrid-ai-trading/pkg/types"

// Provider produces a directional signal from a window of bars. Providers
// are stateless between calls; a window too short to evaluate yields
// SideHold rather than an error so a thin history never breaks a cycle.
type Provider interface {
	Name() string
	Evaluate(bars []types.OHLCV) types.Side
}

// closes extracts the close series from a bar window.
func closes(bars []types.OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// sma computes the simple moving average of the given values.
func sma(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ema computes an exponential moving average series with the given period.
func ema(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}
	k := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}
