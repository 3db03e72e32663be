package execution

import (
	"context"
	"fmt"
	"strings"
)

// Algo identifies an execution algorithm. The set is closed; an
// unrecognized key resolves to nothing and the order is rejected upstream.
type Algo int

const (
	AlgoDirect Algo = iota
	AlgoTWAP
	AlgoVWAP
	AlgoIceberg
)

func (a Algo) String() string {
	switch a {
	case AlgoDirect:
		return "direct"
	case AlgoTWAP:
		return "twap"
	case AlgoVWAP:
		return "vwap"
	case AlgoIceberg:
		return "iceberg"
	default:
		return "unknown"
	}
}

// ParseAlgo resolves a configuration key to an Algo. The second return is
// false for unknown keys.
func ParseAlgo(key string) (Algo, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "direct", "market":
		return AlgoDirect, true
	case "twap":
		return AlgoTWAP, true
	case "vwap":
		return AlgoVWAP, true
	case "iceberg":
		return AlgoIceberg, true
	default:
		return AlgoDirect, false
	}
}

// SlicedExecutor wraps an inner executor and splits each order into equal
// child slices, covering the TWAP, VWAP and iceberg styles with a shared
// slicing core. A child failure stops the schedule and reports the partial
// fill.
type SlicedExecutor struct {
	inner  Executor
	algo   Algo
	slices int
}

// NewAlgoExecutor wraps the inner executor according to the algorithm.
// Direct returns the inner executor unchanged.
func NewAlgoExecutor(algo Algo, inner Executor) Executor {
	switch algo {
	case AlgoTWAP:
		return &SlicedExecutor{inner: inner, algo: algo, slices: 4}
	case AlgoVWAP:
		return &SlicedExecutor{inner: inner, algo: algo, slices: 6}
	case AlgoIceberg:
		return &SlicedExecutor{inner: inner, algo: algo, slices: 5}
	default:
		return inner
	}
}

func (e *SlicedExecutor) Name() string {
	return fmt.Sprintf("%s(%s)", e.algo, e.inner.Name())
}

func (e *SlicedExecutor) Execute(ctx context.Context, req OrderRequest) (Result, error) {
	if req.Qty <= 0 {
		return Result{Status: StatusRejected, Reason: "non_positive_qty"}, nil
	}

	sliceQty := req.Qty / float64(e.slices)
	var filled float64
	var notional float64
	var lastID string

	for i := 0; i < e.slices; i++ {
		if err := ctx.Err(); err != nil {
			return Result{Status: StatusError, FillQty: filled, Reason: "context_cancelled"}, err
		}

		child := req
		child.Qty = sliceQty
		res, err := e.inner.Execute(ctx, child)
		if err != nil {
			return Result{Status: StatusError, FillQty: filled, OrderID: lastID, Reason: res.Reason}, err
		}
		if res.Status != StatusFilled {
			res.FillQty = filled
			return res, nil
		}
		filled += res.FillQty
		notional += res.FillQty * res.AvgPrice
		lastID = res.OrderID
	}

	avg := 0.0
	if filled > 0 {
		avg = notional / filled
	}
	return Result{Status: StatusFilled, OrderID: lastID, FillQty: filled, AvgPrice: avg}, nil
}
