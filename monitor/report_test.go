package monitor

import (
	"strings"
	"testing"
	"time"
)

func reportMonitor(t *testing.T) (*Monitor, *Tracker) {
	t.Helper()
	m, tracker, _ := newTestMonitor(t, 30*time.Minute)
	return m, tracker
}

func resolveAll(names map[string]string) MemberResolver {
	return func(id string) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

func TestReportEmpty(t *testing.T) {
	m, _ := reportMonitor(t)
	got := m.Report(time.Now(), resolveAll(nil))
	if got != EmptyReport {
		t.Errorf("Report = %q, want %q", got, EmptyReport)
	}
}

func TestReportFormatsMinutes(t *testing.T) {
	m, tracker := reportMonitor(t)
	now := time.Now()
	tracker.MarkMuted("u", now.Add(-12*time.Minute-18*time.Second)) // 12.3 minutes

	got := m.Report(now, resolveAll(map[string]string{"u": "alice"}))

	if !strings.HasPrefix(got, "**Currently Muted Users:**\n") {
		t.Errorf("Report missing header: %q", got)
	}
	if !strings.Contains(got, "- alice: 12.3 minutes\n") {
		t.Errorf("Report = %q, want line with 12.3 minutes", got)
	}
}

func TestReportTTSIndicator(t *testing.T) {
	m, tracker := reportMonitor(t)
	now := time.Now()
	tracker.MarkMuted("fresh", now.Add(-10*time.Minute))
	tracker.MarkTTS("fresh", now.Add(-2*time.Minute))
	tracker.MarkMuted("stale", now.Add(-10*time.Minute))
	tracker.MarkTTS("stale", now.Add(-6*time.Minute))

	got := m.Report(now, resolveAll(map[string]string{"fresh": "fresh", "stale": "stale"}))

	if !strings.Contains(got, "- fresh: 10.0 minutes (TTS active)\n") {
		t.Errorf("Report = %q, want TTS indicator for fresh activity", got)
	}
	if strings.Contains(got, "stale: 10.0 minutes (TTS active)") {
		t.Errorf("Report = %q, stale TTS must not show the indicator", got)
	}
	if !strings.Contains(got, "- stale: 10.0 minutes\n") {
		t.Errorf("Report = %q, want plain line for stale", got)
	}
}

func TestReportOmitsUnresolvable(t *testing.T) {
	m, tracker := reportMonitor(t)
	now := time.Now()
	tracker.MarkMuted("known", now.Add(-5*time.Minute))
	tracker.MarkMuted("departed", now.Add(-5*time.Minute))

	got := m.Report(now, resolveAll(map[string]string{"known": "alice"}))

	if !strings.Contains(got, "alice") {
		t.Errorf("Report = %q, want resolvable member listed", got)
	}
	if strings.Contains(got, "departed") {
		t.Errorf("Report = %q, unresolvable member must be omitted silently", got)
	}
}
