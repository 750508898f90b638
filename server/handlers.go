package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/onnwee/mute-sentinel/monitor"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	monitor   *monitor.Monitor
	startedAt time.Time
}

// NewHandlers creates a new Handlers instance with the given dependencies.
func NewHandlers(mon *monitor.Monitor) *Handlers {
	return &Handlers{monitor: mon, startedAt: time.Now()}
}

// HandleHealth responds to liveness probes with a fixed "ok" body. The probe
// is intentionally unauthenticated and does not depend on the gateway
// connection: it answers as long as the process is alive.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleStatus returns a lightweight status summary: uptime, tracked-mute
// count, and the current runtime settings.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	settings := h.monitor.Settings()
	out := map[string]any{
		"status":                 "ok",
		"started_at":             h.startedAt.UTC().Format(time.RFC3339),
		"uptime":                 humanize.Time(h.startedAt),
		"tracked_muted":          h.monitor.Tracker().MutedCount(),
		"mute_timeout_minutes":   settings.MuteTimeout().Minutes(),
		"check_interval_seconds": settings.CheckInterval().Seconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
