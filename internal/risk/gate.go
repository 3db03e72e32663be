package risk

import (
	"fmt"
	"sync"

	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// request carries the inputs of one AllowTrade evaluation through the
// stage pipeline.
type request struct {
	notional float64
	side     types.Side
	barTs    int64
}

// stage is one predicate in the fixed evaluation order. It returns the
// rejection reason and true when the check trips. Stages may clear expired
// state (the cooldown stage does) but never zero daily counters; that is
// ResetDayIfNeeded's job alone.
type stage struct {
	name string
	eval func(s *Session, l Limits, req request) (ReasonCode, bool)
}

// Gate is the single authority deciding whether a proposed trade may
// proceed, and the only component that mutates risk-session state. All
// operations are serialized behind one mutex per account.
type Gate struct {
	mu      sync.Mutex
	limits  Limits
	session *Session
	kill    KillSwitch
	log     *logger.Logger
	stages  []stage
}

// NewGate creates a gate for one account with the given limits and equity
// snapshot. The kill switch and logger may be nil.
func NewGate(limits Limits, startingEquity float64, kill KillSwitch, log *logger.Logger) *Gate {
	g := &Gate{
		limits:  limits,
		session: NewSession(startingEquity),
		kill:    kill,
		log:     log,
	}
	// The evaluation order is a deliberate contract: when several
	// conditions hold at once, the earliest stage's reason code wins.
	g.stages = []stage{
		{name: "daily_loss", eval: stageDailyLoss},
		{name: "cooldown", eval: stageCooldown},
		{name: "trades_per_day", eval: stageTradesPerDay},
		{name: "max_drawdown", eval: stageMaxDrawdown},
		{name: "notional_cap", eval: stageNotionalCap},
	}
	return g
}

// AllowTrade decides whether a trade of the given notional may proceed at
// the given bar. It never panics to the caller: an internal failure yields
// the fail-open default, or an EXCEPTION rejection when FailClosed is set.
func (g *Gate) AllowTrade(notional float64, side types.Side, barTs int64) (d Decision) {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			g.warn("gate evaluation panicked: %v", r)
			if g.limits.FailClosed {
				g.session.HaltReason = ReasonException.String()
				d = reject(ReasonException)
			} else {
				d = allow()
			}
		}
	}()

	if g.kill != nil && g.kill.Engaged() {
		g.session.HaltReason = ReasonForcedHalt.String()
		return reject(ReasonForcedHalt)
	}

	if err := g.rollover(barTs); err != nil {
		g.warn("day rollover failed: %v", err)
		if g.limits.FailClosed {
			g.session.HaltReason = ReasonException.String()
			return reject(ReasonException)
		}
	}

	req := request{notional: notional, side: side, barTs: barTs}
	for _, st := range g.stages {
		if reason, tripped := st.eval(g.session, g.limits, req); tripped {
			g.session.HaltReason = reason.String()
			g.riskLog("trade rejected by %s stage (%s %.2f notional)", st.name, side, notional)
			return reject(reason)
		}
	}
	return allow()
}

func stageDailyLoss(s *Session, l Limits, _ request) (ReasonCode, bool) {
	if !s.capsEnforceable() {
		return ReasonOK, false
	}
	if s.DailyRealizedPnl <= -l.dayLossCap()*s.StartingEquity {
		return ReasonDailyLoss, true
	}
	return ReasonOK, false
}

func stageCooldown(s *Session, _ Limits, req request) (ReasonCode, bool) {
	if s.CooldownUntil == 0 {
		return ReasonOK, false
	}
	if req.barTs > s.CooldownUntil {
		// Cooldowns must not outlive their window.
		s.CooldownUntil = 0
		return ReasonOK, false
	}
	return ReasonCooldown, true
}

func stageTradesPerDay(s *Session, l Limits, _ request) (ReasonCode, bool) {
	if l.MaxTradesPerDay > 0 && s.TradesToday >= l.MaxTradesPerDay {
		return ReasonTradesPerDay, true
	}
	return ReasonOK, false
}

func stageMaxDrawdown(s *Session, l Limits, _ request) (ReasonCode, bool) {
	if l.MaxDrawdownPct <= 0 || s.PeakEquity <= 0 {
		return ReasonOK, false
	}
	drawdown := (s.PeakEquity - s.CurrentEquity) / s.PeakEquity
	if drawdown < 0 {
		drawdown = 0
	}
	if drawdown >= l.MaxDrawdownPct {
		return ReasonMaxDrawdown, true
	}
	return ReasonOK, false
}

func stageNotionalCap(s *Session, l Limits, req request) (ReasonCode, bool) {
	// The boundary is inclusive of the cap: notional == cap is allowed.
	if l.PerTradeNotionalCap > 0 && req.notional > l.PerTradeNotionalCap {
		return ReasonNotionalCap, true
	}
	return ReasonOK, false
}

// OnFill records a fill against the session. Side-effect only; it never
// gates.
func (g *Gate) OnFill(side types.Side, qty, price float64, barTs int64, pnl float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.session.TradesToday++
	g.session.lastTradeBar = barTs
	g.riskLog("fill recorded: %s %.4f @ %.2f (trade %d today)", side, qty, price, g.session.TradesToday)
}

// RecordClosePnl adds realized PnL from a closed position and maintains the
// loser streak. Hitting MaxConsecutiveLosers trips a cooldown window and
// consumes the streak.
func (g *Gate) RecordClosePnl(pnl float64, barTsMs int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session
	s.DailyRealizedPnl += pnl
	if pnl < 0 {
		s.ConsecutiveLosers++
	} else {
		s.ConsecutiveLosers = 0
	}

	if g.limits.MaxConsecutiveLosers > 0 && s.ConsecutiveLosers >= g.limits.MaxConsecutiveLosers {
		s.CooldownUntil = barTsMs + int64(g.limits.CooldownBars)*barDurationMs
		s.ConsecutiveLosers = 0
		s.HaltReason = ReasonCooldown.String()
		g.riskLog("loser streak tripped cooldown until bar ts %d", s.CooldownUntil)
	}
}

// UpdateEquity sets the current equity and maintains the running peak and
// drawdown.
func (g *Gate) UpdateEquity(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session
	s.CurrentEquity = value
	if value > s.PeakEquity {
		s.PeakEquity = value
	}
	if s.PeakEquity > 0 {
		s.CurrentDrawdown = (s.PeakEquity - s.CurrentEquity) / s.PeakEquity
	} else {
		s.CurrentDrawdown = 0
	}
}

// ResetDayIfNeeded rolls the session over to a new trading day if the bar
// timestamp belongs to one. Idempotent within the same day, and the only
// operation that zeroes the daily counters.
func (g *Gate) ResetDayIfNeeded(barTsMs int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.rollover(barTsMs); err != nil {
		g.warn("day rollover failed: %v", err)
	}
}

func (g *Gate) rollover(barTsMs int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rollover panicked: %v", r)
		}
	}()

	if barTsMs <= 0 {
		return nil
	}
	s := g.session
	day := dayNumber(barTsMs)
	if s.sessionDay == 0 {
		s.sessionDay = day
		return nil
	}
	if day == s.sessionDay {
		return nil
	}

	// Carry the closing equity forward as the new day's baseline.
	s.StartingEquity = s.CurrentEquity
	s.DailyRealizedPnl = 0
	s.TradesToday = 0
	s.ConsecutiveLosers = 0
	s.CooldownUntil = 0
	s.HaltReason = ""
	s.sessionDay = day
	g.riskLog("day rollover: starting equity now %.2f", s.StartingEquity)
	return nil
}

// Snapshot returns a read-only projection of the session for dashboards and
// telemetry. Safe to call at arbitrary frequency; it never mutates state.
func (g *Gate) Snapshot() map[string]interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap := g.session.snapshot()
	snap["fail_closed"] = g.limits.FailClosed
	return snap
}

// Limits returns the gate's immutable configuration.
func (g *Gate) Limits() Limits {
	return g.limits
}

func (g *Gate) riskLog(format string, args ...interface{}) {
	if g.log != nil {
		g.log.Risk(format, args...)
	}
}

func (g *Gate) warn(format string, args ...interface{}) {
	if g.log != nil {
		g.log.Warning(format, args...)
	}
}
