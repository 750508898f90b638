package monitor

import (
	"fmt"
	"strings"
	"time"
)

// EmptyReport is returned when no participants are tracked as muted.
const EmptyReport = "No users are currently being tracked as muted."

// MemberResolver resolves a participant id to a display name within the
// scope requesting the report (typically one guild). Unresolvable
// participants are silently omitted from the report.
type MemberResolver func(participantID string) (name string, ok bool)

// Report renders a point-in-time view of the tracked muted participants:
// one line per resolvable participant with elapsed muted minutes to one
// decimal and a TTS indicator when the grace window currently applies. The
// exemption is evaluated fresh at report time with the same rule the
// reconcile loop uses.
func (m *Monitor) Report(now time.Time, resolve MemberResolver) string {
	entries := m.tracker.MutedSnapshot()
	if len(entries) == 0 {
		return EmptyReport
	}

	var b strings.Builder
	b.WriteString("**Currently Muted Users:**\n")
	for _, e := range entries {
		name, ok := resolve(e.ParticipantID)
		if !ok {
			continue
		}
		indicator := ""
		if lastTTS, ok := m.tracker.LastTTS(e.ParticipantID); ok && now.Sub(lastTTS) < TTSGracePeriod {
			indicator = " (TTS active)"
		}
		fmt.Fprintf(&b, "- %s: %.1f minutes%s\n", name, now.Sub(e.MuteStart).Minutes(), indicator)
	}
	return b.String()
}
