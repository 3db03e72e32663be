package execution

import (
	"context"
	"strings"

	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// Status is the normalized terminal state of an execution attempt. Every
// collaborator result is mapped into this closed set before anything
// downstream sees it.
type Status string

const (
	StatusFilled   Status = "filled"
	StatusBlocked  Status = "blocked"
	StatusIgnored  Status = "ignored"
	StatusRejected Status = "rejected"
	StatusPending  Status = "pending"
	StatusError    Status = "error"
)

// NormalizeStatus maps a collaborator's raw status string into the closed
// status set. "ok" and "success" count as fills; anything unrecognized is a
// rejection so an unexpected value can never pass as success.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "filled", "ok", "success":
		return StatusFilled
	case "blocked":
		return StatusBlocked
	case "ignored":
		return StatusIgnored
	case "rejected":
		return StatusRejected
	case "pending", "new", "submitted":
		return StatusPending
	case "error":
		return StatusError
	default:
		return StatusRejected
	}
}

// OrderRequest is a fully resolved order handed to an executor.
type OrderRequest struct {
	Symbol    string
	Side      types.Side
	Qty       float64
	PriceHint float64
}

// Result is the normalized outcome of an execution attempt.
type Result struct {
	Status   Status
	OrderID  string
	FillQty  float64
	AvgPrice float64
	Reason   string
}

// Executor submits orders to a venue. Implementations return a Result with
// an already-normalized status; transport failures are reported through the
// error and surfaced as StatusError by the caller.
type Executor interface {
	Name() string
	Execute(ctx context.Context, req OrderRequest) (Result, error)
}
