package monitoring

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HealthChecker serves liveness information plus a snapshot supplier's view
// of the risk session.
type HealthChecker struct {
	mu       sync.RWMutex
	started  time.Time
	lastBeat time.Time
	snapshot func() map[string]interface{}
}

// NewHealthChecker creates a checker. The snapshot function may be nil.
func NewHealthChecker(snapshot func() map[string]interface{}) *HealthChecker {
	now := time.Now()
	return &HealthChecker{started: now, lastBeat: now, snapshot: snapshot}
}

// Beat records liveness. The trading loop calls it once per cycle.
func (h *HealthChecker) Beat() {
	h.mu.Lock()
	h.lastBeat = time.Now()
	h.mu.Unlock()
}

// Healthy reports whether a beat arrived within the given window.
func (h *HealthChecker) Healthy(window time.Duration) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return time.Since(h.lastBeat) <= window
}

func (h *HealthChecker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	body := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"last_beat":      h.lastBeat.UTC().Format(time.RFC3339),
	}
	h.mu.RUnlock()

	if !h.Healthy(5 * time.Minute) {
		body["status"] = "stale"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (h *HealthChecker) handleRisk(w http.ResponseWriter, _ *http.Request) {
	if h.snapshot == nil {
		http.Error(w, "no risk snapshot configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.snapshot())
}

// Serve starts the health HTTP server on the given port. It blocks.
func (h *HealthChecker) Serve(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/risk", h.handleRisk)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
