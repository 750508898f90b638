package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/onnwee/mute-sentinel/monitor"
)

// voiceSnapshot converts a discordgo voice state into the monitor's neutral
// view. A nil state (no previous voice connection known) is the zero value.
func voiceSnapshot(vs *discordgo.VoiceState) monitor.VoiceSnapshot {
	if vs == nil {
		return monitor.VoiceSnapshot{}
	}
	return monitor.VoiceSnapshot{
		ChannelID:  vs.ChannelID,
		ServerMute: vs.Mute,
		SelfMute:   vs.SelfMute,
	}
}

// memberName returns the member's effective display name.
func memberName(m *discordgo.Member) string {
	if m == nil {
		return ""
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		return m.User.Username
	}
	return ""
}

func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	name := memberName(e.Member)
	if name == "" {
		name = e.UserID
	}
	b.ingestor.HandleVoiceState(e.UserID, name,
		voiceSnapshot(e.BeforeUpdate), voiceSnapshot(e.VoiceState), time.Now())
}

func (b *Bot) onMessageCreate(s *discordgo.Session, e *discordgo.MessageCreate) {
	if e.Author == nil {
		return
	}
	inVoice := false
	if e.GuildID != "" {
		if vs, err := s.State.VoiceState(e.GuildID, e.Author.ID); err == nil && vs != nil && vs.ChannelID != "" {
			inVoice = true
		}
	}
	b.ingestor.HandleMessage(e.Author.ID, e.Author.Username, e.TTS, inVoice, time.Now())
}
