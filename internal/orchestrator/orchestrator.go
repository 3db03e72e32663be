package orchestrator

import (
	"context"
	"time"

	"github.com/rexaitrading/hybrid-ai-trading/internal/audit"
	"github.com/rexaitrading/hybrid-ai-trading/internal/execution"
	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/internal/monitoring"
	"github.com/rexaitrading/hybrid-ai-trading/internal/portfolio"
	"github.com/rexaitrading/hybrid-ai-trading/internal/regime"
	"github.com/rexaitrading/hybrid-ai-trading/internal/risk"
	"github.com/rexaitrading/hybrid-ai-trading/internal/sizing"
	"github.com/rexaitrading/hybrid-ai-trading/internal/veto"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// Intent is a proposed trade entering the pipeline, before sizing and risk
// checks.
type Intent struct {
	Symbol string
	Sector string
	Side   types.Side
	Price  float64

	// Edge estimate feeding the Kelly sizer.
	WinProbability float64
	PayoffRatio    float64

	// Algo names the execution algorithm. Empty means direct.
	Algo string

	// SentimentText is the context passed to the sentiment filter.
	SentimentText string

	// GateScores are per-source confidence inputs for the weighted vote.
	GateScores map[string]float64

	// Returns is the recent return window used for regime detection.
	Returns []float64

	// BarTs is the bar timestamp in Unix milliseconds.
	BarTs int64
}

// Outcome is the terminal result of one pipeline pass.
type Outcome struct {
	Status   execution.Status
	Reason   string
	Qty      float64
	Notional float64
	OrderID  string
	Regime   regime.Regime
}

// Config holds pipeline-level switches.
type Config struct {
	// RegimeEnabled gates the veto layer. When false the pipeline goes
	// straight from the risk gate to execution.
	RegimeEnabled bool `yaml:"regime_enabled" json:"regime_enabled"`

	// MinQty is the fallback order quantity used when the sizer returns a
	// zero fraction for an otherwise approved trade.
	MinQty float64 `yaml:"min_qty" json:"min_qty"`
}

// DefaultConfig returns the reference pipeline settings.
func DefaultConfig() Config {
	return Config{RegimeEnabled: true, MinQty: 1}
}

// Orchestrator drives a trade intent through the fixed decision pipeline:
// validation, portfolio guardrails, sizing, risk gate, veto layer,
// execution, audit. Stage order is part of the contract; a trade rejected
// by several conditions reports the earliest stage's reason.
type Orchestrator struct {
	cfg        Config
	gate       *risk.Gate
	sizer      *sizing.Sizer
	detector   *regime.Detector
	sentiment  *veto.SentimentFilter
	gateScore  *veto.GateScore
	guardrails *portfolio.Guardrails
	book       *portfolio.TrackedPortfolio
	executor   execution.Executor
	auditor    *audit.Writer
	metrics    *monitoring.Metrics
	log        *logger.Logger
}

// New creates an orchestrator. The metrics, auditor and logger may be nil;
// everything else is required.
func New(
	cfg Config,
	gate *risk.Gate,
	sizer *sizing.Sizer,
	detector *regime.Detector,
	sentiment *veto.SentimentFilter,
	gateScore *veto.GateScore,
	guardrails *portfolio.Guardrails,
	book *portfolio.TrackedPortfolio,
	executor execution.Executor,
	auditor *audit.Writer,
	metrics *monitoring.Metrics,
	log *logger.Logger,
) *Orchestrator {
	if cfg.MinQty <= 0 {
		cfg.MinQty = 1
	}
	return &Orchestrator{
		cfg:        cfg,
		gate:       gate,
		sizer:      sizer,
		detector:   detector,
		sentiment:  sentiment,
		gateScore:  gateScore,
		guardrails: guardrails,
		book:       book,
		executor:   executor,
		auditor:    auditor,
		metrics:    metrics,
		log:        log,
	}
}

// Process runs one intent through the pipeline and returns its outcome.
// Process never panics to the caller and always writes exactly one audit
// record for a terminal outcome.
func (o *Orchestrator) Process(ctx context.Context, intent Intent) Outcome {
	start := time.Now()
	outcome := o.evaluate(ctx, intent)
	o.metrics.ObservePipeline(time.Since(start))
	o.metrics.RecordDecision(string(outcome.Status), outcome.Reason)
	o.writeAudit(intent, outcome)
	return outcome
}

func (o *Orchestrator) evaluate(ctx context.Context, intent Intent) Outcome {
	// Validation. A hold signal is not an error, it is a no-op.
	if intent.Side == types.SideHold {
		return Outcome{Status: execution.StatusIgnored, Reason: "hold_signal"}
	}
	if intent.Price <= 0 {
		return Outcome{Status: execution.StatusRejected, Reason: "invalid_price"}
	}

	// Portfolio guardrails run before any capital math.
	if ok, reason := o.guardrails.CheckEntry(intent.Side, intent.Sector, 0); !ok {
		return Outcome{Status: execution.StatusBlocked, Reason: reason}
	}
	if ok, reason := o.guardrails.CheckDrawdown(); !ok {
		return Outcome{Status: execution.StatusBlocked, Reason: reason}
	}

	// Regime is computed up front when enabled so the sizer can be
	// throttled by it; the veto layer reuses the same classification.
	currentRegime := regime.RegimeNeutral
	if o.cfg.RegimeEnabled {
		currentRegime = o.detector.Detect(intent.Returns)
	}

	qty := o.sizeOrder(intent, currentRegime)
	notional := qty * intent.Price

	// Sector cap check against the real notional now that it is known.
	if ok, reason := o.guardrails.CheckEntry(intent.Side, intent.Sector, notional); !ok {
		return Outcome{Status: execution.StatusBlocked, Reason: reason, Qty: qty, Notional: notional}
	}

	// Algo resolution happens before the risk gate so an unknown key never
	// consumes a risk decision.
	algo, known := execution.ParseAlgo(intent.Algo)
	if !known {
		return Outcome{Status: execution.StatusRejected, Reason: "unknown_algo", Qty: qty, Notional: notional}
	}

	decision := o.gate.AllowTrade(notional, intent.Side, intent.BarTs)
	if !decision.Allowed {
		return Outcome{
			Status:   execution.StatusBlocked,
			Reason:   decision.Reason.String(),
			Qty:      qty,
			Notional: notional,
			Regime:   currentRegime,
		}
	}

	if o.cfg.RegimeEnabled {
		if o.sentiment != nil && !o.sentiment.AllowTrade(intent.SentimentText, intent.Side) {
			return Outcome{Status: execution.StatusBlocked, Reason: "sentiment_veto", Qty: qty, Notional: notional, Regime: currentRegime}
		}
		if o.gateScore != nil && len(intent.GateScores) > 0 {
			if o.gateScore.Vote(intent.GateScores, currentRegime) == 0 {
				return Outcome{Status: execution.StatusBlocked, Reason: "gate_score_veto", Qty: qty, Notional: notional, Regime: currentRegime}
			}
		}
		if ok, reason := o.guardrails.CheckPerformance(); !ok {
			return Outcome{Status: execution.StatusBlocked, Reason: reason, Qty: qty, Notional: notional, Regime: currentRegime}
		}
	}

	return o.execute(ctx, intent, algo, qty, notional, currentRegime)
}

// sizeOrder converts the Kelly fraction into an order quantity. An
// approved trade never sizes to zero; the configured minimum applies.
func (o *Orchestrator) sizeOrder(intent Intent, r regime.Regime) float64 {
	var fraction float64
	if o.cfg.RegimeEnabled {
		fraction = o.sizer.FractionForRegime(intent.WinProbability, intent.PayoffRatio, regime.SizingScale(r))
	} else {
		fraction = o.sizer.Fraction(intent.WinProbability, intent.PayoffRatio)
	}

	qty := fraction * o.book.Equity() / intent.Price
	if qty < o.cfg.MinQty {
		qty = o.cfg.MinQty
	}
	return qty
}

func (o *Orchestrator) execute(ctx context.Context, intent Intent, algo execution.Algo, qty, notional float64, r regime.Regime) Outcome {
	executor := execution.NewAlgoExecutor(algo, o.executor)
	res, err := executor.Execute(ctx, execution.OrderRequest{
		Symbol:    intent.Symbol,
		Side:      intent.Side,
		Qty:       qty,
		PriceHint: intent.Price,
	})
	if err != nil {
		if o.log != nil {
			o.log.LogError("execution", err)
		}
		return Outcome{Status: execution.StatusError, Reason: res.Reason, Qty: qty, Notional: notional, Regime: r}
	}

	outcome := Outcome{
		Status:   res.Status,
		Reason:   res.Reason,
		Qty:      res.FillQty,
		Notional: notional,
		OrderID:  res.OrderID,
		Regime:   r,
	}
	if res.Status == execution.StatusFilled {
		o.gate.OnFill(intent.Side, res.FillQty, res.AvgPrice, intent.BarTs, 0)
		o.book.ApplyFill(intent.Sector, res.FillQty*res.AvgPrice)
		o.metrics.RecordTrade(intent.Side.String())
		if o.log != nil {
			o.log.Trade("%s %.4f %s @ %.2f via %s", intent.Side, res.FillQty, intent.Symbol, res.AvgPrice, algo)
		}
	}
	return outcome
}

// RecordClose forwards realized PnL from a closed position into the risk
// session and marks the portfolio book.
func (o *Orchestrator) RecordClose(sector string, pnl, notional float64, barTsMs int64) {
	o.gate.RecordClosePnl(pnl, barTsMs)
	o.book.ApplyFill(sector, -notional)
	o.syncEquity()
}

// MarkEquity feeds a fresh equity observation into the portfolio and risk
// session, then refreshes the telemetry gauges.
func (o *Orchestrator) MarkEquity(value float64) {
	o.book.MarkEquity(value)
	o.gate.UpdateEquity(value)
	o.syncEquity()
}

func (o *Orchestrator) syncEquity() {
	snap := o.gate.Snapshot()
	equity, _ := snap["current_equity"].(float64)
	drawdown, _ := snap["current_drawdown"].(float64)
	cooldown, _ := snap["cooldown_until"].(int64)
	o.metrics.SetEquity(equity, drawdown)
	o.metrics.SetCooldownActive(cooldown != 0)
}

func (o *Orchestrator) writeAudit(intent Intent, outcome Outcome) {
	if o.auditor == nil {
		return
	}
	err := o.auditor.Append(audit.Record{
		Timestamp: intent.BarTs,
		Symbol:    intent.Symbol,
		Side:      intent.Side.String(),
		Size:      outcome.Qty,
		Price:     intent.Price,
		Status:    string(outcome.Status),
		Reason:    outcome.Reason,
		Equity:    o.book.Equity(),
	})
	// Audit failure is reported but never fatal to trading.
	if err != nil && o.log != nil {
		o.log.LogError("audit", err)
	}
}
