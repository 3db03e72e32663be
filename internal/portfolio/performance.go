package portfolio

import "math"

// ReturnsFromEquity converts an equity series into simple period returns.
// Series shorter than two points, or points at or below zero, contribute no
// returns.
func ReturnsFromEquity(history []float64) []float64 {
	if len(history) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		if history[i-1] <= 0 {
			continue
		}
		returns = append(returns, history[i]/history[i-1]-1)
	}
	return returns
}

// SharpeRatio computes the unannualized Sharpe ratio of the return series
// against a zero risk-free rate. Fewer than two returns, or zero variance,
// yields 0.
func SharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := meanOf(returns)
	std := stdOf(returns, mean)
	if std == 0 {
		return 0
	}
	return mean / std
}

// SortinoRatio computes the unannualized Sortino ratio using downside
// deviation. No downside observations yields 0 for a flat or negative mean
// and a large positive sentinel otherwise, matching the convention that an
// all-winning series never fails a floor check.
func SortinoRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := meanOf(returns)

	downside := 0.0
	count := 0
	for _, r := range returns {
		if r < 0 {
			downside += r * r
			count++
		}
	}
	if count == 0 {
		if mean > 0 {
			return math.Inf(1)
		}
		return 0
	}

	dd := math.Sqrt(downside / float64(len(returns)))
	if dd == 0 {
		return 0
	}
	return mean / dd
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdOf(values []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}
