package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
	"github.com/google/uuid"

	traderrors "github.com/rexaitrading/hybrid-ai-trading/internal/errors"
	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// BybitConfig holds credentials and environment selection for the live
// executor.
type BybitConfig struct {
	APIKey    string `yaml:"api_key" json:"api_key"`
	APISecret string `yaml:"api_secret" json:"api_secret"`
	Category  string `yaml:"category" json:"category"`
	Testnet   bool   `yaml:"testnet" json:"testnet"`
	Demo      bool   `yaml:"demo" json:"demo"`
}

// BybitExecutor submits market orders through the Bybit unified trading
// API and normalizes the venue response into the closed status set.
type BybitExecutor struct {
	client   *bybit_api.Client
	category string
	log      *logger.Logger
}

// NewBybitExecutor creates a live executor. Missing credentials are a
// configuration error.
func NewBybitExecutor(cfg BybitConfig, log *logger.Logger) (*BybitExecutor, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, traderrors.New(traderrors.ErrorCategoryCredentials, "execution", "new_executor",
			"api key and secret are required")
	}

	var baseURL string
	switch {
	case cfg.Demo:
		baseURL = "https://api-demo.bybit.com"
	case cfg.Testnet:
		baseURL = bybit_api.TESTNET
	default:
		baseURL = bybit_api.MAINNET
	}

	category := cfg.Category
	if category == "" {
		category = "spot"
	}

	client := bybit_api.NewBybitHttpClient(
		cfg.APIKey,
		cfg.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &BybitExecutor{client: client, category: category, log: log}, nil
}

func (e *BybitExecutor) Name() string { return "bybit" }

func (e *BybitExecutor) Execute(ctx context.Context, req OrderRequest) (Result, error) {
	if req.Qty <= 0 {
		return Result{Status: StatusRejected, Reason: "non_positive_qty"}, nil
	}

	var side string
	switch req.Side {
	case types.SideBuy:
		side = "Buy"
	case types.SideSell:
		side = "Sell"
	default:
		return Result{Status: StatusIgnored, Reason: "hold_side"}, nil
	}

	params := map[string]interface{}{
		"category":    e.category,
		"symbol":      req.Symbol,
		"side":        side,
		"orderType":   "Market",
		"qty":         strconv.FormatFloat(req.Qty, 'f', -1, 64),
		"orderLinkId": uuid.NewString(),
	}

	resp, err := e.client.NewUtaBybitServiceWithParams(params).PlaceOrder(ctx)
	if err != nil {
		return Result{Status: StatusError, Reason: "transport"},
			traderrors.Wrap(err, traderrors.ErrorCategoryNetwork, "execution", "place_order")
	}

	res, err := e.parseOrderResponse(resp, req)
	if err != nil {
		return Result{Status: StatusError, Reason: "bad_response"}, err
	}
	if e.log != nil {
		e.log.Trade("order %s: %s %.4f %s", res.Status, side, req.Qty, req.Symbol)
	}
	return res, nil
}

func (e *BybitExecutor) parseOrderResponse(response interface{}, req OrderRequest) (Result, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return Result{}, fmt.Errorf("invalid response type %T", response)
	}

	if serverResp.RetCode != 0 {
		return Result{
			Status: StatusRejected,
			Reason: fmt.Sprintf("api_error_%d:%s", serverResp.RetCode, serverResp.RetMsg),
		}, nil
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal result: %w", err)
	}

	var orderResult struct {
		OrderID     string `json:"orderId"`
		OrderStatus string `json:"orderStatus"`
		CumExecQty  string `json:"cumExecQty"`
		AvgPrice    string `json:"avgPrice"`
	}
	if err := json.Unmarshal(resultBytes, &orderResult); err != nil {
		return Result{}, fmt.Errorf("failed to unmarshal order result: %w", err)
	}

	fillQty, _ := strconv.ParseFloat(orderResult.CumExecQty, 64)
	avgPrice, _ := strconv.ParseFloat(orderResult.AvgPrice, 64)
	if fillQty == 0 {
		fillQty = req.Qty
	}
	if avgPrice == 0 {
		avgPrice = req.PriceHint
	}

	// Market orders acknowledge without a terminal status; treat an
	// accepted order with no explicit status as filled.
	status := StatusFilled
	if orderResult.OrderStatus != "" {
		status = NormalizeStatus(orderResult.OrderStatus)
	}

	return Result{
		Status:   status,
		OrderID:  orderResult.OrderID,
		FillQty:  fillQty,
		AvgPrice: avgPrice,
	}, nil
}
