package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/onnwee/mute-sentinel/telemetry"
)

// ErrForbidden is returned by Platform.Disconnect when the bot lacks
// permission to move the member. The record is kept and retried, since an
// operator can fix the permission without restarting.
var ErrForbidden = errors.New("missing permission to disconnect member")

// ErrLoopNotRunning is returned by Reprogram when no reconcile loop is
// consuming timer updates.
var ErrLoopNotRunning = errors.New("reconcile loop is not running")

// Member is a resolved platform member with an active voice connection.
type Member struct {
	GuildID string
	Name    string
}

// Platform is the outbound surface the reconcile loop needs from the chat
// platform layer.
type Platform interface {
	// FindVoiceMember searches all known guilds for the participant and
	// returns them only if they currently have an active voice connection.
	FindVoiceMember(participantID string) (Member, bool)
	// Disconnect forcibly removes the participant from voice. Returns
	// ErrForbidden (possibly wrapped) on permission denial.
	Disconnect(ctx context.Context, guildID, participantID string) error
}

// Monitor runs the periodic reconciliation loop over the tracker.
type Monitor struct {
	tracker  *Tracker
	settings *Settings
	platform Platform
	reset    chan time.Duration
	running  atomic.Bool
}

// New returns a Monitor. Run must be called for the loop to tick.
func New(tracker *Tracker, settings *Settings, platform Platform) *Monitor {
	return &Monitor{
		tracker:  tracker,
		settings: settings,
		platform: platform,
		reset:    make(chan time.Duration, 1),
	}
}

// Tracker returns the tracker the monitor reconciles.
func (m *Monitor) Tracker() *Tracker { return m.tracker }

// Settings returns the runtime settings the monitor snapshots each tick.
func (m *Monitor) Settings() *Settings { return m.settings }

// Run ticks the reconcile loop until ctx is cancelled. Callers start it only
// after the platform connection is ready, so no passes run before live
// membership can be resolved. An in-progress pass always completes before
// the next tick or a timer reprogram is observed.
func (m *Monitor) Run(ctx context.Context) {
	interval := m.settings.CheckInterval()
	slog.Info("mute monitor starting",
		slog.Duration("interval", interval),
		slog.Duration("timeout", m.settings.MuteTimeout()))
	m.running.Store(true)
	defer m.running.Store(false)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("mute monitor stopped")
			return
		case d := <-m.reset:
			ticker.Reset(d)
			slog.Info("mute monitor interval changed", slog.Duration("interval", d))
		case <-ticker.C:
			m.reconcile(ctx, time.Now())
		}
	}
}

// Reprogram reschedules the running loop's ticker to d. The caller is
// expected to have stored d in Settings already; this only touches the
// timer. Fails distinctly when the loop is not running.
func (m *Monitor) Reprogram(d time.Duration) error {
	if !m.running.Load() {
		return ErrLoopNotRunning
	}
	select {
	case m.reset <- d:
		return nil
	default:
		// A previous reprogram is still pending; replace it.
		select {
		case <-m.reset:
		default:
		}
		m.reset <- d
		return nil
	}
}

// reconcile is one pass: snapshot settings and tracked mutes, then decide
// exempt/skip/disconnect per participant. Cleanup of disconnected
// participants is deferred to after the iteration so the snapshot is never
// mutated mid-pass and one participant's outcome never affects another's
// visibility within the same tick.
func (m *Monitor) reconcile(ctx context.Context, now time.Time) {
	if m.tracker.MutedCount() == 0 {
		return
	}

	ctx, span := telemetry.StartSpan(ctx, "monitor", "reconcile")
	defer span.End()
	start := time.Now()
	defer func() {
		telemetry.ReconcileDuration.Observe(time.Since(start).Seconds())
	}()
	telemetry.ReconcilePasses.Inc()

	timeout := m.settings.MuteTimeout()
	entries := m.tracker.MutedSnapshot()
	slog.Debug("reconcile pass",
		slog.Int("tracked", len(entries)),
		slog.Duration("timeout", timeout),
		slog.String("component", "monitor"))

	var disconnected []string
	for _, e := range entries {
		if lastTTS, ok := m.tracker.LastTTS(e.ParticipantID); ok && now.Sub(lastTTS) < TTSGracePeriod {
			telemetry.TTSExemptions.Inc()
			slog.Debug("tts exemption",
				slog.String("participant_id", e.ParticipantID),
				slog.Duration("since_tts", now.Sub(lastTTS)),
				slog.String("component", "monitor"))
			continue
		}

		member, ok := m.platform.FindVoiceMember(e.ParticipantID)
		if !ok {
			// Likely departed between snapshot and now; the departure event
			// cleans up the records, never this loop.
			continue
		}

		mutedFor := now.Sub(e.MuteStart)
		if mutedFor <= timeout {
			continue
		}

		switch err := m.platform.Disconnect(ctx, member.GuildID, e.ParticipantID); {
		case err == nil:
			disconnected = append(disconnected, e.ParticipantID)
			telemetry.DisconnectsSucceeded.Inc()
			slog.Info("auto-disconnected muted participant",
				slog.String("participant", member.Name),
				slog.Float64("muted_minutes", mutedFor.Minutes()),
				slog.String("component", "monitor"))
		case errors.Is(err, ErrForbidden):
			telemetry.DisconnectsFailed.Inc()
			slog.Error("missing permission to disconnect participant",
				slog.String("participant", member.Name),
				slog.String("component", "monitor"))
		default:
			telemetry.DisconnectsFailed.Inc()
			telemetry.RecordError(span, err)
			slog.Error("disconnect failed",
				slog.String("participant", member.Name),
				slog.Any("err", err),
				slog.String("component", "monitor"))
		}
	}

	if len(disconnected) > 0 {
		m.tracker.Remove(disconnected...)
	}
	telemetry.SetMutesTracked(m.tracker.MutedCount())
}
