package monitor

import (
	"log/slog"
	"time"

	"github.com/onnwee/mute-sentinel/telemetry"
)

// VoiceSnapshot is a platform-neutral view of one participant's voice state
// at a point in time. An empty ChannelID means no voice connection.
type VoiceSnapshot struct {
	ChannelID  string
	ServerMute bool
	SelfMute   bool
}

// Muted reports whether either mute flag is set. Server mute and self mute
// are treated identically for timeout purposes.
func (v VoiceSnapshot) Muted() bool { return v.ServerMute || v.SelfMute }

// Connected reports whether the participant has a voice connection.
func (v VoiceSnapshot) Connected() bool { return v.ChannelID != "" }

// Ingestor applies platform notifications to the tracker. Each handler runs
// synchronously with the notification and leaves the maps in a consistent
// state before returning.
type Ingestor struct {
	tracker *Tracker
}

// NewIngestor returns an Ingestor writing into tracker.
func NewIngestor(tracker *Tracker) *Ingestor {
	return &Ingestor{tracker: tracker}
}

// HandleVoiceState classifies a voice-state transition for one participant
// and mutates the tracker accordingly. Departure takes precedence over
// mute-flag interpretation; transitions that change neither membership nor
// mute state (e.g. a channel switch) are no-ops.
func (in *Ingestor) HandleVoiceState(participantID, name string, before, after VoiceSnapshot, now time.Time) {
	if before.Connected() && !after.Connected() {
		mutedFor, wasMuted := in.tracker.Forget(participantID, now)
		if wasMuted {
			slog.Info("participant left voice while muted",
				slog.String("participant", name),
				slog.Float64("muted_minutes", mutedFor.Minutes()),
				slog.String("component", "ingest"))
		} else {
			slog.Debug("participant left voice",
				slog.String("participant", name),
				slog.String("component", "ingest"))
		}
		telemetry.VoiceEvents.Inc()
		telemetry.SetMutesTracked(in.tracker.MutedCount())
		return
	}
	if !after.Connected() {
		return
	}

	switch {
	case after.Muted() && !before.Muted():
		in.tracker.MarkMuted(participantID, now)
		muteType := "self-muted"
		if after.ServerMute {
			muteType = "server-muted"
		}
		slog.Info("participant muted",
			slog.String("participant", name),
			slog.String("mute_type", muteType),
			slog.String("channel_id", after.ChannelID),
			slog.String("component", "ingest"))
	case !after.Muted() && before.Muted():
		// Missing record is fine: we may have started after the mute began.
		if mutedFor, ok := in.tracker.ClearMuted(participantID, now); ok {
			slog.Info("participant unmuted",
				slog.String("participant", name),
				slog.Float64("muted_minutes", mutedFor.Minutes()),
				slog.String("component", "ingest"))
		}
	default:
		return
	}
	telemetry.VoiceEvents.Inc()
	telemetry.SetMutesTracked(in.tracker.MutedCount())
}

// HandleMessage refreshes the participant's TTS record when the message is a
// TTS message and the sender currently has an active voice connection.
// Anything else is a no-op.
func (in *Ingestor) HandleMessage(participantID, name string, tts, inVoice bool, now time.Time) {
	if !tts || !inVoice {
		return
	}
	in.tracker.MarkTTS(participantID, now)
	slog.Info("tts activity",
		slog.String("participant", name),
		slog.String("component", "ingest"))
}
