package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"filled":    StatusFilled,
		"ok":        StatusFilled,
		"OK":        StatusFilled,
		"success":   StatusFilled,
		"blocked":   StatusBlocked,
		"ignored":   StatusIgnored,
		"rejected":  StatusRejected,
		"pending":   StatusPending,
		"new":       StatusPending,
		"submitted": StatusPending,
		"error":     StatusError,
		" Filled ":  StatusFilled,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw=%q", raw)
	}
}

func TestNormalizeStatusUnknownIsRejected(t *testing.T) {
	// An unexpected venue status must never pass as success.
	assert.Equal(t, StatusRejected, NormalizeStatus("partially_cromulent"))
	assert.Equal(t, StatusRejected, NormalizeStatus(""))
}

func TestParseAlgo(t *testing.T) {
	for key, want := range map[string]Algo{
		"":        AlgoDirect,
		"direct":  AlgoDirect,
		"market":  AlgoDirect,
		"TWAP":    AlgoTWAP,
		"vwap":    AlgoVWAP,
		"Iceberg": AlgoIceberg,
	} {
		got, ok := ParseAlgo(key)
		assert.True(t, ok, "key=%q", key)
		assert.Equal(t, want, got, "key=%q", key)
	}

	_, ok := ParseAlgo("pov")
	assert.False(t, ok)
}

func TestPaperExecutorFills(t *testing.T) {
	p := NewPaperExecutor(nil)

	res, err := p.Execute(context.Background(), OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      types.SideBuy,
		Qty:       2,
		PriceHint: 50000,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusFilled, res.Status)
	assert.NotEmpty(t, res.OrderID)
	assert.Equal(t, 2.0, res.FillQty)
	assert.Equal(t, 50000.0, res.AvgPrice)
	assert.Len(t, p.Fills(), 1)
}

func TestPaperExecutorFailureMode(t *testing.T) {
	p := NewPaperExecutor(nil)
	p.FailWith("rejected")

	res, err := p.Execute(context.Background(), OrderRequest{Side: types.SideBuy, Qty: 1, PriceHint: 10})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, res.Status)

	p.FailWith("")
	res, err = p.Execute(context.Background(), OrderRequest{Side: types.SideBuy, Qty: 1, PriceHint: 10})
	require.NoError(t, err)
	assert.Equal(t, StatusFilled, res.Status)
}

func TestPaperExecutorRejectsNonPositiveQty(t *testing.T) {
	p := NewPaperExecutor(nil)

	res, err := p.Execute(context.Background(), OrderRequest{Side: types.SideBuy, Qty: 0, PriceHint: 10})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, res.Status)
}

func TestSlicedExecutorAggregatesFills(t *testing.T) {
	p := NewPaperExecutor(nil)
	twap := NewAlgoExecutor(AlgoTWAP, p)

	res, err := twap.Execute(context.Background(), OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      types.SideBuy,
		Qty:       8,
		PriceHint: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusFilled, res.Status)
	assert.InDelta(t, 8.0, res.FillQty, 1e-9)
	assert.InDelta(t, 100.0, res.AvgPrice, 1e-9)
	// TWAP splits into four child orders.
	assert.Len(t, p.Fills(), 4)
}

func TestSlicedExecutorStopsOnChildFailure(t *testing.T) {
	p := NewPaperExecutor(nil)
	p.FailWith("blocked")
	iceberg := NewAlgoExecutor(AlgoIceberg, p)

	res, err := iceberg.Execute(context.Background(), OrderRequest{Side: types.SideBuy, Qty: 10, PriceHint: 100})
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, res.Status)
	assert.Equal(t, 0.0, res.FillQty)
}

func TestDirectAlgoUnwrapped(t *testing.T) {
	p := NewPaperExecutor(nil)
	assert.Equal(t, p, NewAlgoExecutor(AlgoDirect, p))
}

func TestAlgoStrings(t *testing.T) {
	assert.Equal(t, "direct", AlgoDirect.String())
	assert.Equal(t, "twap", AlgoTWAP.String())
	assert.Equal(t, "vwap", AlgoVWAP.String())
	assert.Equal(t, "iceberg", AlgoIceberg.String())
}
