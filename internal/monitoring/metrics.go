package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the trading pipeline's Prometheus instruments.
type Metrics struct {
	registry *prometheus.Registry

	decisionsTotal *prometheus.CounterVec
	tradesTotal    *prometheus.CounterVec
	equityGauge    prometheus.Gauge
	drawdownGauge  prometheus.Gauge
	cooldownGauge  prometheus.Gauge
	pipelineTimer  prometheus.Histogram
}

// NewMetrics creates and registers the instrument set on a private
// registry so tests can create many instances without collisions.
func NewMetrics(account string) *Metrics {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"account": account}

	m := &Metrics{
		registry: registry,
		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "trading_decisions_total",
			Help:        "Pipeline decisions by terminal status and reason.",
			ConstLabels: labels,
		}, []string{"status", "reason"}),
		tradesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "trading_trades_total",
			Help:        "Executed trades by side.",
			ConstLabels: labels,
		}, []string{"side"}),
		equityGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "trading_equity",
			Help:        "Current account equity.",
			ConstLabels: labels,
		}),
		drawdownGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "trading_drawdown_ratio",
			Help:        "Current drawdown from peak equity.",
			ConstLabels: labels,
		}),
		cooldownGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "trading_cooldown_active",
			Help:        "1 while a loser-streak cooldown is in force.",
			ConstLabels: labels,
		}),
		pipelineTimer: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "trading_pipeline_duration_seconds",
			Help:        "Wall time of one full pipeline evaluation.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.decisionsTotal,
		m.tradesTotal,
		m.equityGauge,
		m.drawdownGauge,
		m.cooldownGauge,
		m.pipelineTimer,
	)
	return m
}

// RecordDecision counts one terminal pipeline outcome.
func (m *Metrics) RecordDecision(status, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.decisionsTotal.WithLabelValues(status, reason).Inc()
}

// RecordTrade counts one executed trade.
func (m *Metrics) RecordTrade(side string) {
	if m == nil {
		return
	}
	m.tradesTotal.WithLabelValues(side).Inc()
}

// SetEquity updates the equity and drawdown gauges.
func (m *Metrics) SetEquity(equity, drawdown float64) {
	if m == nil {
		return
	}
	m.equityGauge.Set(equity)
	m.drawdownGauge.Set(drawdown)
}

// SetCooldownActive flips the cooldown gauge.
func (m *Metrics) SetCooldownActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.cooldownGauge.Set(1)
	} else {
		m.cooldownGauge.Set(0)
	}
}

// ObservePipeline records one pipeline evaluation's duration.
func (m *Metrics) ObservePipeline(d time.Duration) {
	if m == nil {
		return
	}
	m.pipelineTimer.Observe(d.Seconds())
}

// Handler returns the scrape handler for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts a metrics HTTP server on the given port. It blocks, so run
// it in a goroutine.
func (m *Metrics) Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
