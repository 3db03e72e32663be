package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rexaitrading/hybrid-ai-trading/internal/audit"
	"github.com/rexaitrading/hybrid-ai-trading/internal/config"
	"github.com/rexaitrading/hybrid-ai-trading/internal/execution"
	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
	"github.com/rexaitrading/hybrid-ai-trading/internal/monitoring"
	"github.com/rexaitrading/hybrid-ai-trading/internal/notifications"
	"github.com/rexaitrading/hybrid-ai-trading/internal/orchestrator"
	"github.com/rexaitrading/hybrid-ai-trading/internal/portfolio"
	"github.com/rexaitrading/hybrid-ai-trading/internal/regime"
	"github.com/rexaitrading/hybrid-ai-trading/internal/risk"
	"github.com/rexaitrading/hybrid-ai-trading/internal/signals"
	"github.com/rexaitrading/hybrid-ai-trading/internal/sizing"
	"github.com/rexaitrading/hybrid-ai-trading/internal/veto"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/data"
	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	dataPath := flag.String("data", "", "path to CSV bar data (paper mode input)")
	live := flag.Bool("live", false, "submit orders to the live venue")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg.Account)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer appLogger.Close()

	if err := run(cfg, appLogger, *dataPath, *live); err != nil {
		appLogger.LogError("trader", err)
		log.Fatalf("trader exited with error: %v", err)
	}
}

func run(cfg *config.Config, appLogger *logger.Logger, dataPath string, live bool) error {
	var executor execution.Executor
	if live {
		bybitExec, err := execution.NewBybitExecutor(cfg.Bybit, appLogger)
		if err != nil {
			return err
		}
		executor = bybitExec
		appLogger.Info("live execution enabled for %s", cfg.Symbol)
	} else {
		executor = execution.NewPaperExecutor(appLogger)
		appLogger.Info("paper execution enabled for %s", cfg.Symbol)
	}

	var kill risk.KillSwitch = risk.MultiKillSwitch{
		risk.EnvKillSwitch{Key: "TRADING_HALT"},
		risk.FileKillSwitch{Path: cfg.KillSwitchFile},
	}

	gate := risk.NewGate(cfg.Limits, cfg.StartingEquity, kill, appLogger)
	book := portfolio.NewTrackedPortfolio(cfg.StartingEquity)
	auditor := audit.NewWriter(cfg.Audit.PrimaryPath, cfg.Audit.BackupPath, appLogger)
	metrics := monitoring.NewMetrics(cfg.Account)

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
		metrics,
		appLogger,
	)

	var notifier notifications.Notifier
	if cfg.Notifications.TelegramToken != "" {
		notifier = notifications.NewTelegramNotifier(
			cfg.Notifications.TelegramToken,
			cfg.Notifications.TelegramChatID,
		)
	}

	health := monitoring.NewHealthChecker(gate.Snapshot)
	go func() {
		if err := metrics.Serve(cfg.Monitoring.PrometheusPort); err != nil {
			appLogger.LogError("metrics server", err)
		}
	}()
	go func() {
		if err := health.Serve(cfg.Monitoring.HealthPort); err != nil {
			appLogger.LogError("health server", err)
		}
	}()

	bars, err := loadBars(dataPath)
	if err != nil {
		return err
	}
	appLogger.Info("loaded %d bars for %s", len(bars), cfg.Symbol)

	providers := []signals.Provider{
		signals.NewBreakout(20),
		signals.NewRSI(14),
		signals.NewMACD(),
		signals.NewMACross(10, 30),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLogger.Info("received signal %v, shutting down", sig)
		cancel()
	}()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	cursor := 0
	for {
		select {
		case <-ctx.Done():
			appLogger.Info("trading loop stopped")
			return nil
		case <-ticker.C:
			health.Beat()
			if cursor >= len(bars) {
				appLogger.Info("bar series exhausted")
				return nil
			}
			window := bars[:cursor+1]
			cursor++
			processBar(ctx, cfg, pipeline, providers, window, notifier, appLogger)
		}
	}
}

func loadBars(dataPath string) ([]types.OHLCV, error) {
	if dataPath == "" {
		return nil, fmt.Errorf("a -data CSV path is required")
	}
	provider := data.NewCSVProvider()
	bars, err := provider.LoadData(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load bar data: %w", err)
	}
	if err := provider.ValidateData(bars); err != nil {
		return nil, fmt.Errorf("bar data failed validation: %w", err)
	}
	return bars, nil
}

func processBar(
	ctx context.Context,
	cfg *config.Config,
	pipeline *orchestrator.Orchestrator,
	providers []signals.Provider,
	window []types.OHLCV,
	notifier notifications.Notifier,
	appLogger *logger.Logger,
) {
	last := window[len(window)-1]
	side := consensusSide(providers, window)

	intent := orchestrator.Intent{
		Symbol:         cfg.Symbol,
		Sector:         cfg.Sector,
		Side:           side,
		Price:          last.Close,
		WinProbability: 0.55,
		PayoffRatio:    1.5,
		Returns:        data.Returns(window),
		BarTs:          last.BarMillis(),
	}

	outcome := pipeline.Process(ctx, intent)
	pipeline.MarkEquity(markEquity(cfg, window))

	if outcome.Status == "blocked" && notifier != nil {
		msg := fmt.Sprintf("trade blocked for %s: %s", cfg.Symbol, outcome.Reason)
		if err := notifier.SendAlert("warning", msg); err != nil {
			appLogger.LogError("notifier", err)
		}
	}
}

// consensusSide takes a simple majority across the signal providers, ties
// resolving to hold.
func consensusSide(providers []signals.Provider, window []types.OHLCV) types.Side {
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

// markEquity derives a mark-to-market equity estimate from the bar drift.
// The paper loop has no venue balance feed, so equity tracks the close
// relative to the first bar.
func markEquity(cfg *config.Config, window []types.OHLCV) float64 {
	first := window[0].Close
	if first <= 0 {
		return cfg.StartingEquity
	}
	return cfg.StartingEquity * (window[len(window)-1].Close / first)
}
