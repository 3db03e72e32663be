package execution

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
)

// PaperExecutor fills every order immediately at the price hint. Used for
// dry runs, backtests and tests.
type PaperExecutor struct {
	mu     sync.Mutex
	log    *logger.Logger
	fills  []Result
	reject string
}

// NewPaperExecutor creates a paper executor. The logger may be nil.
func NewPaperExecutor(log *logger.Logger) *PaperExecutor {
	return &PaperExecutor{log: log}
}

func (p *PaperExecutor) Name() string { return "paper" }

// FailWith makes subsequent executions return the given raw status instead
// of filling. An empty string restores normal fills.
func (p *PaperExecutor) FailWith(rawStatus string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reject = rawStatus
}

func (p *PaperExecutor) Execute(ctx context.Context, req OrderRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Status: StatusError, Reason: "context_cancelled"}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reject != "" {
		return Result{Status: NormalizeStatus(p.reject), Reason: "simulated_" + p.reject}, nil
	}
	if req.Qty <= 0 {
		return Result{Status: StatusRejected, Reason: "non_positive_qty"}, nil
	}

	res := Result{
		Status:   StatusFilled,
		OrderID:  uuid.NewString(),
		FillQty:  req.Qty,
		AvgPrice: req.PriceHint,
	}
	p.fills = append(p.fills, res)
	if p.log != nil {
		p.log.Trade("paper fill: %s %.4f %s @ %.2f", req.Side, req.Qty, req.Symbol, req.PriceHint)
	}
	return res, nil
}

// Fills returns a copy of all recorded fills.
func (p *PaperExecutor) Fills() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Result, len(p.fills))
	copy(out, p.fills)
	return out
}
