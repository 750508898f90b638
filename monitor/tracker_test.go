package monitor

import (
	"testing"
	"time"

	"github.com/onnwee/mute-sentinel/telemetry"
)

func TestMain(m *testing.M) {
	telemetry.Init()
	m.Run()
}

func TestTrackerMarkAndClear(t *testing.T) {
	tr := NewTracker()
	start := time.Now()

	tr.MarkMuted("a", start)
	if tr.MutedCount() != 1 {
		t.Fatalf("MutedCount = %d, want 1", tr.MutedCount())
	}

	mutedFor, ok := tr.ClearMuted("a", start.Add(10*time.Minute))
	if !ok {
		t.Fatal("ClearMuted: record not found")
	}
	if mutedFor != 10*time.Minute {
		t.Errorf("mutedFor = %v, want 10m", mutedFor)
	}
	if tr.MutedCount() != 0 {
		t.Errorf("MutedCount after clear = %d, want 0", tr.MutedCount())
	}
}

func TestTrackerClearMissingIsNoop(t *testing.T) {
	tr := NewTracker()
	if _, ok := tr.ClearMuted("ghost", time.Now()); ok {
		t.Error("ClearMuted on empty tracker reported a record")
	}
	// Repeated clears stay no-ops.
	if _, ok := tr.ClearMuted("ghost", time.Now()); ok {
		t.Error("second ClearMuted reported a record")
	}
}

func TestTrackerMarkMutedOverwrites(t *testing.T) {
	tr := NewTracker()
	first := time.Now()
	second := first.Add(5 * time.Minute)

	tr.MarkMuted("a", first)
	tr.MarkMuted("a", second)

	entries := tr.MutedSnapshot()
	if len(entries) != 1 {
		t.Fatalf("snapshot len = %d, want 1", len(entries))
	}
	if !entries[0].MuteStart.Equal(second) {
		t.Errorf("MuteStart = %v, want overwritten to %v", entries[0].MuteStart, second)
	}
}

func TestTrackerForgetRemovesBothMaps(t *testing.T) {
	tr := NewTracker()
	start := time.Now()
	tr.MarkMuted("a", start)
	tr.MarkTTS("a", start.Add(time.Minute))

	mutedFor, wasMuted := tr.Forget("a", start.Add(3*time.Minute))
	if !wasMuted {
		t.Fatal("Forget: expected muted record")
	}
	if mutedFor != 3*time.Minute {
		t.Errorf("mutedFor = %v, want 3m", mutedFor)
	}
	if tr.MutedCount() != 0 {
		t.Error("mute record survived Forget")
	}
	if _, ok := tr.LastTTS("a"); ok {
		t.Error("tts record survived Forget")
	}
}

func TestTrackerForgetWithoutMute(t *testing.T) {
	tr := NewTracker()
	tr.MarkTTS("a", time.Now())
	if _, wasMuted := tr.Forget("a", time.Now()); wasMuted {
		t.Error("Forget reported mute for tts-only participant")
	}
	if _, ok := tr.LastTTS("a"); ok {
		t.Error("tts record survived Forget")
	}
}

func TestTrackerTTSRefreshes(t *testing.T) {
	tr := NewTracker()
	first := time.Now()
	later := first.Add(2 * time.Minute)

	tr.MarkTTS("a", first)
	tr.MarkTTS("a", later)

	got, ok := tr.LastTTS("a")
	if !ok {
		t.Fatal("LastTTS: record not found")
	}
	if !got.Equal(later) {
		t.Errorf("LastTTS = %v, want refreshed to %v", got, later)
	}
}

func TestTrackerSnapshotIsACopy(t *testing.T) {
	tr := NewTracker()
	tr.MarkMuted("a", time.Now())
	tr.MarkMuted("b", time.Now())

	entries := tr.MutedSnapshot()
	tr.Remove("a", "b")

	if len(entries) != 2 {
		t.Errorf("snapshot len = %d after source mutation, want 2", len(entries))
	}
	if tr.MutedCount() != 0 {
		t.Errorf("MutedCount = %d, want 0", tr.MutedCount())
	}
}

func TestTrackerRemoveClearsBothMaps(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.MarkMuted("a", now)
	tr.MarkTTS("a", now)
	tr.MarkMuted("b", now)

	tr.Remove("a")

	if _, ok := tr.LastTTS("a"); ok {
		t.Error("tts record survived Remove")
	}
	if tr.MutedCount() != 1 {
		t.Errorf("MutedCount = %d, want 1 (b untouched)", tr.MutedCount())
	}
}
