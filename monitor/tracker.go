package monitor

import (
	"sync"
	"time"
)

// MuteEntry is one tracked muted participant, as seen by a snapshot.
type MuteEntry struct {
	ParticipantID string
	MuteStart     time.Time
}

// Tracker holds the two in-memory maps: mute start times and last TTS
// activity per participant id. A single mutex guards both so that the
// ingestor (running on session event goroutines) and the reconcile loop
// never observe a half-applied update. There is no persistence; entries
// live and die with the process.
type Tracker struct {
	mu    sync.Mutex
	muted map[string]time.Time
	tts   map[string]time.Time
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		muted: make(map[string]time.Time),
		tts:   make(map[string]time.Time),
	}
}

// MarkMuted records the start of an uninterrupted mute, overwriting any
// previous entry for the participant.
func (t *Tracker) MarkMuted(participantID string, at time.Time) {
	t.mu.Lock()
	t.muted[participantID] = at
	t.mu.Unlock()
}

// ClearMuted removes the participant's mute record, returning the elapsed
// mute duration relative to at. A missing record is a no-op (false).
func (t *Tracker) ClearMuted(participantID string, at time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	start, ok := t.muted[participantID]
	if !ok {
		return 0, false
	}
	delete(t.muted, participantID)
	return at.Sub(start), true
}

// MarkTTS records TTS activity, refreshing any existing entry.
func (t *Tracker) MarkTTS(participantID string, at time.Time) {
	t.mu.Lock()
	t.tts[participantID] = at
	t.mu.Unlock()
}

// LastTTS returns the participant's most recent TTS timestamp, if any.
func (t *Tracker) LastTTS(participantID string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.tts[participantID]
	return at, ok
}

// Forget removes the participant from both maps (voice departure). Returns
// the elapsed mute duration when a mute record existed.
func (t *Tracker) Forget(participantID string, at time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	start, wasMuted := t.muted[participantID]
	delete(t.muted, participantID)
	delete(t.tts, participantID)
	if !wasMuted {
		return 0, false
	}
	return at.Sub(start), true
}

// MutedCount returns the number of tracked muted participants.
func (t *Tracker) MutedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.muted)
}

// MutedSnapshot copies the current mute entries. The reconcile loop iterates
// the copy so concurrent ingestor mutations never disrupt a pass.
func (t *Tracker) MutedSnapshot() []MuteEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	entries := make([]MuteEntry, 0, len(t.muted))
	for id, start := range t.muted {
		entries = append(entries, MuteEntry{ParticipantID: id, MuteStart: start})
	}
	return entries
}

// Remove deletes the given participants from both maps. Used for the
// deferred post-pass cleanup after successful disconnects.
func (t *Tracker) Remove(participantIDs ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range participantIDs {
		delete(t.muted, id)
		delete(t.tts, id)
	}
}
