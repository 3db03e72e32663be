package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

func barsFromCloses(closes []float64) []types.OHLCV {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	bars := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = types.OHLCV{
			Open:      c,
			High:      c * 1.001,
			Low:       c * 0.999,
			Close:     c,
			Volume:    1000,
			Timestamp: start.Add(time.Duration(i) * time.Hour),
		}
	}
	return bars
}

func TestProvidersHoldOnShortWindow(t *testing.T) {
	short := barsFromCloses([]float64{100, 101})

	providers := []Provider{
		NewBreakout(20),
		NewRSI(14),
		NewMACD(),
		NewBollinger(20),
		NewVWAP(20),
		NewMACross(10, 30),
	}
	for _, p := range providers {
		assert.Equal(t, types.SideHold, p.Evaluate(short), p.Name())
		assert.Equal(t, types.SideHold, p.Evaluate(nil), p.Name())
	}
}

func TestBreakoutSignalsChannelBreak(t *testing.T) {
	b := NewBreakout(5)

	closes := []float64{100, 101, 100, 101, 100, 101}
	flat := barsFromCloses(closes)
	assert.Equal(t, types.SideHold, b.Evaluate(flat))

	up := barsFromCloses(append(closes[:5:5], 110))
	assert.Equal(t, types.SideBuy, b.Evaluate(up))

	down := barsFromCloses(append(closes[:5:5], 90))
	assert.Equal(t, types.SideSell, b.Evaluate(down))
}

func TestRSIExtremes(t *testing.T) {
	r := NewRSI(14)

	// Monotonic decline drives RSI to the floor.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 200 - float64(i)*5
	}
	assert.Equal(t, types.SideBuy, r.Evaluate(barsFromCloses(closes)))

	// Monotonic rise drives it to the ceiling.
	for i := range closes {
		closes[i] = 100 + float64(i)*5
	}
	assert.Equal(t, types.SideSell, r.Evaluate(barsFromCloses(closes)))
}

func TestMACrossSignalsOnCross(t *testing.T) {
	m := NewMACross(2, 4)

	// Decline then a sharp recovery crossing the fast MA above the slow.
	closes := []float64{110, 108, 106, 104, 102, 100, 98, 96, 94, 92, 90, 112}
	assert.Equal(t, types.SideBuy, m.Evaluate(barsFromCloses(closes)))

	// Rally then a sharp break crossing the fast MA below the slow.
	closes = []float64{90, 92, 94, 96, 98, 100, 102, 104, 106, 108, 110, 88}
	assert.Equal(t, types.SideSell, m.Evaluate(barsFromCloses(closes)))
}

func TestMACrossInvalidPeriodsFallBack(t *testing.T) {
	m := NewMACross(30, 10)
	assert.Equal(t, 10, m.fast)
	assert.Equal(t, 30, m.slow)
}

func TestBollingerMeanReversion(t *testing.T) {
	b := NewBollinger(10)

	// Stable band then a collapse below the lower band.
	closes := []float64{100, 101, 100, 99, 100, 101, 100, 99, 100, 101, 80}
	assert.Equal(t, types.SideBuy, b.Evaluate(barsFromCloses(closes)))

	// Stable band then a spike above the upper band.
	closes = []float64{100, 101, 100, 99, 100, 101, 100, 99, 100, 101, 120}
	assert.Equal(t, types.SideSell, b.Evaluate(barsFromCloses(closes)))
}

func TestVWAPDirection(t *testing.T) {
	v := NewVWAP(5)

	closes := []float64{100, 100, 100, 100, 120}
	assert.Equal(t, types.SideBuy, v.Evaluate(barsFromCloses(closes)))

	closes = []float64{100, 100, 100, 100, 80}
	assert.Equal(t, types.SideSell, v.Evaluate(barsFromCloses(closes)))
}

func TestVWAPZeroVolumeHolds(t *testing.T) {
	v := NewVWAP(3)
	bars := barsFromCloses([]float64{100, 101, 102})
	for i := range bars {
		bars[i].Volume = 0
	}
	assert.Equal(t, types.SideHold, v.Evaluate(bars))
}

func TestProviderNames(t *testing.T) {
	assert.Equal(t, "breakout", NewBreakout(20).Name())
	assert.Equal(t, "rsi", NewRSI(14).Name())
	assert.Equal(t, "macd", NewMACD().Name())
	assert.Equal(t, "bollinger", NewBollinger(20).Name())
	assert.Equal(t, "vwap", NewVWAP(20).Name())
	assert.Equal(t, "ma_cross", NewMACross(10, 30).Name())
}
