package portfolio

import "sync"

// View is the read surface the trade pipeline consumes. Any portfolio
// backend (live account, paper book, backtest ledger) satisfies it; the
// pipeline never reaches past this interface into backend internals.
type View interface {
	// Equity returns total account equity.
	Equity() float64

	// Leverage returns gross exposure divided by equity, 0 when equity is 0.
	Leverage() float64

	// Exposure returns the current gross notional exposure.
	Exposure() float64

	// SectorExposure returns the notional exposure attributed to a sector.
	// Unknown sectors return 0.
	SectorExposure(sector string) float64

	// EquityHistory returns the recorded equity series, oldest first.
	EquityHistory() []float64
}

// TrackedPortfolio is an in-memory View implementation maintained from
// fills and mark-to-market updates.
type TrackedPortfolio struct {
	mu       sync.RWMutex
	equity   float64
	exposure float64
	sectors  map[string]float64
	history  []float64
}

// NewTrackedPortfolio creates a portfolio seeded with the given equity.
func NewTrackedPortfolio(startingEquity float64) *TrackedPortfolio {
	p := &TrackedPortfolio{
		equity:  startingEquity,
		sectors: make(map[string]float64),
	}
	if startingEquity > 0 {
		p.history = append(p.history, startingEquity)
	}
	return p
}

func (p *TrackedPortfolio) Equity() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.equity
}

func (p *TrackedPortfolio) Exposure() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exposure
}

func (p *TrackedPortfolio) Leverage() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.equity <= 0 {
		return 0
	}
	return p.exposure / p.equity
}

func (p *TrackedPortfolio) SectorExposure(sector string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sectors[sector]
}

func (p *TrackedPortfolio) EquityHistory() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]float64, len(p.history))
	copy(out, p.history)
	return out
}

// MarkEquity records a fresh equity observation.
func (p *TrackedPortfolio) MarkEquity(value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.equity = value
	p.history = append(p.history, value)
}

// ApplyFill adjusts exposure for a filled order. Negative notional reduces
// exposure (a closing trade); the floor is zero.
func (p *TrackedPortfolio) ApplyFill(sector string, notional float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.exposure += notional
	if p.exposure < 0 {
		p.exposure = 0
	}
	if sector != "" {
		p.sectors[sector] += notional
		if p.sectors[sector] < 0 {
			p.sectors[sector] = 0
		}
	}
}
