package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestVoiceSnapshot(t *testing.T) {
	if got := voiceSnapshot(nil); got.Connected() || got.Muted() {
		t.Errorf("nil state snapshot = %+v, want zero", got)
	}

	got := voiceSnapshot(&discordgo.VoiceState{ChannelID: "vc-1", Mute: true, SelfMute: false})
	if !got.Connected() {
		t.Error("snapshot with channel not connected")
	}
	if !got.ServerMute || got.SelfMute {
		t.Errorf("snapshot mute flags = %+v, want server mute only", got)
	}
	if !got.Muted() {
		t.Error("server-muted snapshot not Muted")
	}
}

func TestMemberName(t *testing.T) {
	tests := []struct {
		name   string
		member *discordgo.Member
		want   string
	}{
		{"nil member", nil, ""},
		{"nick wins", &discordgo.Member{Nick: "nick", User: &discordgo.User{Username: "user"}}, "nick"},
		{"username fallback", &discordgo.Member{User: &discordgo.User{Username: "user"}}, "user"},
		{"no user", &discordgo.Member{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := memberName(tt.member); got != tt.want {
				t.Errorf("memberName = %q, want %q", got, tt.want)
			}
		})
	}
}
