package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rexaitrading/hybrid-ai-trading/internal/execution"
	"github.com/rexaitrading/hybrid-ai-trading/internal/orchestrator"
	"github.com/rexaitrading/hybrid-ai-trading/internal/portfolio"
	"github.com/rexaitrading/hybrid-ai-trading/internal/risk"
	"github.com/rexaitrading/hybrid-ai-trading/internal/veto"
)

// Config aggregates every component's settings. Values come from defaults,
// then an optional YAML file, then environment variables, later sources
// winning.
type Config struct {
	Account        string  `yaml:"account"`
	Symbol         string  `yaml:"symbol"`
	Sector         string  `yaml:"sector"`
	StartingEquity float64 `yaml:"starting_equity"`

	PollInterval time.Duration `yaml:"poll_interval"`

	Limits     risk.Limits                `yaml:"limits"`
	Sentiment  veto.SentimentConfig       `yaml:"sentiment"`
	GateScore  veto.GateScoreConfig       `yaml:"gate_score"`
	Guardrails portfolio.GuardrailConfig  `yaml:"guardrails"`
	Pipeline   orchestrator.Config        `yaml:"pipeline"`
	Bybit      execution.BybitConfig      `yaml:"bybit"`

	Audit struct {
		PrimaryPath string `yaml:"primary_path"`
		BackupPath  string `yaml:"backup_path"`
	} `yaml:"audit"`

	Monitoring struct {
		PrometheusPort int `yaml:"prometheus_port"`
		HealthPort     int `yaml:"health_port"`
	} `yaml:"monitoring"`

	Notifications struct {
		TelegramToken  string `yaml:"telegram_token"`
		TelegramChatID string `yaml:"telegram_chat_id"`
	} `yaml:"notifications"`

	KillSwitchFile string `yaml:"kill_switch_file"`
}

// Default returns the reference configuration.
func Default() *Config {
	cfg := &Config{
		Account:        "default",
		Symbol:         "BTCUSDT",
		Sector:         "crypto",
		StartingEquity: 10000,
		PollInterval:   time.Minute,
		Limits:         risk.DefaultLimits(),
		Sentiment:      veto.DefaultSentimentConfig(),
		GateScore:      veto.DefaultGateScoreConfig(),
		Guardrails:     portfolio.DefaultGuardrailConfig(),
		Pipeline:       orchestrator.DefaultConfig(),
	}
	cfg.Audit.PrimaryPath = "audit/trades.jsonl"
	cfg.Audit.BackupPath = "audit/trades.backup.jsonl"
	cfg.Monitoring.PrometheusPort = 8080
	cfg.Monitoring.HealthPort = 8081
	return cfg
}

// Load builds the configuration. A .env file in the working directory is
// applied to the environment first; a YAML path may be empty.
func Load(yamlPath string) (*Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Account = getEnv("TRADING_ACCOUNT", c.Account)
	c.Symbol = getEnv("TRADING_SYMBOL", c.Symbol)
	c.Sector = getEnv("TRADING_SECTOR", c.Sector)
	c.StartingEquity = getEnvFloat("STARTING_EQUITY", c.StartingEquity)
	c.PollInterval = getEnvDuration("POLL_INTERVAL", c.PollInterval)

	c.Limits.DayLossCapPct = getEnvFloat("DAY_LOSS_CAP_PCT", c.Limits.DayLossCapPct)
	c.Limits.PerTradeNotionalCap = getEnvFloat("PER_TRADE_NOTIONAL_CAP", c.Limits.PerTradeNotionalCap)
	c.Limits.MaxTradesPerDay = getEnvInt("MAX_TRADES_PER_DAY", c.Limits.MaxTradesPerDay)
	c.Limits.MaxConsecutiveLosers = getEnvInt("MAX_CONSECUTIVE_LOSERS", c.Limits.MaxConsecutiveLosers)
	c.Limits.CooldownBars = getEnvInt("COOLDOWN_BARS", c.Limits.CooldownBars)
	c.Limits.MaxDrawdownPct = getEnvFloat("MAX_DRAWDOWN_PCT", c.Limits.MaxDrawdownPct)
	c.Limits.FailClosed = getEnvBool("RISK_FAIL_CLOSED", c.Limits.FailClosed)

	c.Bybit.APIKey = getEnv("BYBIT_API_KEY", c.Bybit.APIKey)
	c.Bybit.APISecret = getEnv("BYBIT_API_SECRET", c.Bybit.APISecret)
	c.Bybit.Testnet = getEnvBool("BYBIT_TESTNET", c.Bybit.Testnet)
	c.Bybit.Demo = getEnvBool("BYBIT_DEMO", c.Bybit.Demo)

	c.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", c.Monitoring.PrometheusPort)
	c.Monitoring.HealthPort = getEnvInt("HEALTH_PORT", c.Monitoring.HealthPort)

	c.Notifications.TelegramToken = getEnv("TELEGRAM_TOKEN", c.Notifications.TelegramToken)
	c.Notifications.TelegramChatID = getEnv("TELEGRAM_CHAT_ID", c.Notifications.TelegramChatID)

	c.KillSwitchFile = getEnv("KILL_SWITCH_FILE", c.KillSwitchFile)
}

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.StartingEquity <= 0 {
		return fmt.Errorf("starting equity must be positive, got %.2f", c.StartingEquity)
	}
	if c.Limits.DayLossCapPct < 0 {
		// Negative caps are normalized by the limits layer; values beyond
		// -1 are certainly typos.
		if c.Limits.DayLossCapPct < -1 {
			return fmt.Errorf("day loss cap %.4f is out of range", c.Limits.DayLossCapPct)
		}
	}
	if c.Limits.MaxDrawdownPct < 0 || c.Limits.MaxDrawdownPct > 1 {
		return fmt.Errorf("max drawdown pct must be in [0, 1], got %.4f", c.Limits.MaxDrawdownPct)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
