package risk

import "time"

// Session tracks one trading day of risk state for a single account.
// All mutation goes through the Gate, which serializes access; a Session is
// never shared between accounts.
type Session struct {
	StartingEquity    float64
	CurrentEquity     float64
	PeakEquity        float64
	DailyRealizedPnl  float64
	TradesToday       int
	ConsecutiveLosers int

	// CooldownUntil is a bar timestamp in Unix milliseconds; zero means no
	// cooldown is active. Once a bar beyond it is seen the field is cleared.
	CooldownUntil int64

	// CurrentDrawdown is the peak-to-trough fraction, maintained by
	// UpdateEquity.
	CurrentDrawdown float64

	// HaltReason records the last reason a halt was triggered, for
	// observability only.
	HaltReason string

	lastTradeBar int64
	sessionDay   int64 // UTC day number of the current session, 0 before first rollover
}

// NewSession creates a session with the given equity snapshot. A
// non-positive starting equity is accepted but degrades cap enforcement;
// callers should treat it as an operational alert, not a crash.
func NewSession(startingEquity float64) *Session {
	s := &Session{
		StartingEquity: startingEquity,
		CurrentEquity:  startingEquity,
		PeakEquity:     startingEquity,
	}
	if startingEquity <= 0 {
		s.HaltReason = "starting equity not positive; caps unenforceable"
	}
	return s
}

// capsEnforceable reports whether equity-relative caps can be computed.
func (s *Session) capsEnforceable() bool {
	return s.StartingEquity > 0
}

// dayNumber converts a Unix-millisecond bar timestamp to a UTC day ordinal.
func dayNumber(barTsMs int64) int64 {
	return time.UnixMilli(barTsMs).UTC().Unix() / 86400
}

// snapshot returns a read-only projection of the session for telemetry.
func (s *Session) snapshot() map[string]interface{} {
	return map[string]interface{}{
		"starting_equity":    s.StartingEquity,
		"current_equity":     s.CurrentEquity,
		"peak_equity":        s.PeakEquity,
		"daily_realized_pnl": s.DailyRealizedPnl,
		"trades_today":       s.TradesToday,
		"consecutive_losers": s.ConsecutiveLosers,
		"cooldown_until":     s.CooldownUntil,
		"current_drawdown":   s.CurrentDrawdown,
		"halt_reason":        s.HaltReason,
		"caps_enforceable":   s.capsEnforceable(),
	}
}
