package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rexaitrading/hybrid-ai-trading/internal/audit"
	"github.com/rexaitrading/hybrid-ai-trading/internal/config"
	"github.com/rexaitrading/hybrid-ai-trading/internal/execution"
	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/internal/orchestrator"
	"github.com/rexaitrading/hybrid-ai-trading/internal/portfolio"
	"github.com/rexaitrading/hybrid-ai-trading/internal/regime"
	"github.com/rexaitrading/hybrid-ai-trading/internal/risk"
	"github.com/rexaitrading/hybrid-ai-trading/internal/signals"
	"github.com/rexaitrading/hybrid-ai-trading/internal/sizing"
	"github.com/rexaitrading/hybrid-ai-trading/internal/veto"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/data"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/reporting"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	dataPath := flag.String("data", "", "path to CSV bar data")
	auditPath := flag.String("audit", "backtest/audit.jsonl", "path for the backtest audit trail")
	excelPath := flag.String("excel", "", "optional path for an Excel report")
	verbose := flag.Bool("verbose", false, "print the full decision log")
	flag.Parse()

	if *dataPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := run(cfg, *dataPath, *auditPath, *excelPath, *verbose); err != nil {
		log.Fatalf("backtest failed: %v", err)
	}
}

func run(cfg *config.Config, dataPath, auditPath, excelPath string, verbose bool) error {
	appLogger := logger.NewDiscardLogger()

	provider := data.NewCSVProvider()
	bars, err := provider.LoadData(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load bar data: %w", err)
	}
	if err := provider.ValidateData(bars); err != nil {
		return fmt.Errorf("bar data failed validation: %w", err)
	}

	// Replay runs against a fresh audit trail.
	_ = os.Remove(auditPath)

	gate := risk.NewGate(cfg.Limits, cfg.StartingEquity, nil, appLogger)
	book := portfolio.NewTrackedPortfolio(cfg.StartingEquity)
	auditor := audit.NewWriter(auditPath, "", appLogger)
	executor := execution.NewPaperExecutor(appLogger)

	pipeline := orchestrator.New(
		cfg.Pipeline,
		gate,
		sizing.NewSizer(appLogger),
		regime.NewDetector(),
		veto.NewSentimentFilter(cfg.Sentiment, nil, appLogger),
		veto.NewGateScore(cfg.GateScore, appLogger),
		portfolio.NewGuardrails(cfg.Guardrails, book, appLogger),
		book,
		executor,
		auditor,
		nil,
		appLogger,
	)

	providers := []signals.Provider{
		signals.NewBreakout(20),
		signals.NewRSI(14),
		signals.NewMACD(),
		signals.NewBollinger(20),
		signals.NewVWAP(20),
		signals.NewMACross(10, 30),
	}

	ctx := context.Background()
	var lastClose float64
	var position float64
	cash := cfg.StartingEquity

	for i := range bars {
		window := bars[:i+1]
		last := window[len(window)-1]

		// Close-to-close PnL on the held position feeds the risk session
		// before the next decision.
		if position > 0 && lastClose > 0 {
			pnl := position * (last.Close - lastClose)
			pipeline.RecordClose(cfg.Sector, pnl, 0, last.BarMillis())
		}
		lastClose = last.Close

		side := consensus(providers, window)
		outcome := pipeline.Process(ctx, orchestrator.Intent{
			Symbol:         cfg.Symbol,
			Sector:         cfg.Sector,
			Side:           side,
			Price:          last.Close,
			WinProbability: 0.55,
			PayoffRatio:    1.5,
			Returns:        data.Returns(window),
			BarTs:          last.BarMillis(),
		})

		if outcome.Status == "filled" {
			switch side {
			case types.SideBuy:
				position += outcome.Qty
				cash -= outcome.Qty * last.Close
			case types.SideSell:
				sold := outcome.Qty
				if sold > position {
					sold = position
				}
				position -= sold
				cash += sold * last.Close
			}
		}

		pipeline.MarkEquity(cash + position*last.Close)
	}

	records, err := auditor.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read audit trail: %w", err)
	}

	console := reporting.NewConsoleReporter()
	console.PrintSummary(reporting.Summarize(records))
	printPerformance(book.EquityHistory())
	if verbose {
		console.PrintRecords(records)
	}

	if excelPath != "" {
		if err := reporting.NewExcelReporter().WriteReport(records, excelPath); err != nil {
			return fmt.Errorf("failed to write Excel report: %w", err)
		}
		fmt.Printf("\nExcel report written to %s\n", excelPath)
	}

	return nil
}

func printPerformance(history []float64) {
	returns := portfolio.ReturnsFromEquity(history)
	if len(returns) < 2 {
		return
	}

	peak, maxDD := history[0], 0.0
	for _, v := range history {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}

	fmt.Printf("\n📊 Sharpe Ratio:   %.2f\n", portfolio.SharpeRatio(returns))
	fmt.Printf("📊 Sortino Ratio:  %.2f\n", portfolio.SortinoRatio(returns))
	fmt.Printf("📉 Max Drawdown:   %.2f%%\n", maxDD*100)
}

func consensus(providers []signals.Provider, window []types.OHLCV) types.Side {
	buy, sell := 0, 0
	for _, p := range providers {
		switch p.Evaluate(window) {
		case types.SideBuy:
			buy++
		case types.SideSell:
			sell++
		}
	}
	switch {
	case buy > sell:
		return types.SideBuy
	case sell > buy:
		return types.SideSell
	default:
		return types.SideHold
	}
}
