package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/onnwee/mute-sentinel/monitor"
)

// FindVoiceMember implements monitor.Platform. It scans all guilds known to
// the session state for the participant and returns them only when they
// currently hold a voice connection.
func (b *Bot) FindVoiceMember(participantID string) (monitor.Member, bool) {
	b.session.State.RLock()
	guilds := make([]*discordgo.Guild, len(b.session.State.Guilds))
	copy(guilds, b.session.State.Guilds)
	b.session.State.RUnlock()

	for _, g := range guilds {
		vs, err := b.session.State.VoiceState(g.ID, participantID)
		if err != nil || vs == nil || vs.ChannelID == "" {
			continue
		}
		name := participantID
		if m, err := b.session.State.Member(g.ID, participantID); err == nil {
			if n := memberName(m); n != "" {
				name = n
			}
		}
		return monitor.Member{GuildID: g.ID, Name: name}, true
	}
	return monitor.Member{}, false
}

// Disconnect implements monitor.Platform by moving the member out of voice.
// A 50013 (missing permissions) REST error maps to monitor.ErrForbidden so
// the loop can tell an operator-fixable denial from transient failures.
func (b *Bot) Disconnect(ctx context.Context, guildID, participantID string) error {
	err := b.session.GuildMemberMove(guildID, participantID, nil, discordgo.WithContext(ctx))
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions {
		return fmt.Errorf("%w: %s", monitor.ErrForbidden, restErr.Message.Message)
	}
	return err
}
