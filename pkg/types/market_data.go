package types

import "time"

type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// BarMillis returns the bar timestamp as Unix milliseconds, the unit the
// risk session uses for cooldown bookkeeping.
func (b OHLCV) BarMillis() int64 {
	return b.Timestamp.UnixMilli()
}

type Ticker struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}

type Balance struct {
	Asset  string
	Free   float64
	Locked float64
}
