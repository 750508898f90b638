// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	VoiceEvents          prometheus.Counter
	TTSExemptions        prometheus.Counter
	ReconcilePasses      prometheus.Counter
	DisconnectsSucceeded prometheus.Counter
	DisconnectsFailed    prometheus.Counter

	// Histograms (seconds)
	ReconcileDuration prometheus.Observer

	// Gauges
	MutesTrackedGauge prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		VoiceEvents = promauto.NewCounter(prometheus.CounterOpts{Name: "mute_voice_events_total", Help: "Number of tracked voice-state transitions (mute, unmute, departure)"})
		TTSExemptions = promauto.NewCounter(prometheus.CounterOpts{Name: "mute_tts_exemptions_total", Help: "Number of reconcile skips due to recent TTS activity"})
		ReconcilePasses = promauto.NewCounter(prometheus.CounterOpts{Name: "mute_reconcile_passes_total", Help: "Number of non-empty reconcile passes"})
		DisconnectsSucceeded = promauto.NewCounter(prometheus.CounterOpts{Name: "mute_disconnects_succeeded_total", Help: "Number of successful auto-disconnects"})
		DisconnectsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "mute_disconnects_failed_total", Help: "Number of failed auto-disconnect attempts (retried next tick)"})
		ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "mute_reconcile_duration_seconds", Help: "Reconcile pass duration seconds", Buckets: prometheus.DefBuckets})
		MutesTrackedGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "mute_tracked_participants", Help: "Current number of tracked muted participants"})
	})
}

// SetMutesTracked records the current tracked-mute count.
func SetMutesTracked(n int) {
	if MutesTrackedGauge != nil {
		MutesTrackedGauge.Set(float64(n))
	}
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding correlation id (if absent) and the id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
