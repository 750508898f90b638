package discord

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// maxInlineReport is the largest status report sent in the initial
// interaction response. Anything larger goes out as an acknowledgment plus a
// follow-up message, staying under Discord's 2000-character message limit.
const maxInlineReport = 1800

// commandDefs returns the slash command set. All three are guild-only and
// gated to administrators by default member permissions; bounds on the
// numeric options mirror the setters' validation.
func commandDefs() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	dmPermission := false
	minOne := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "set-timeout",
			Description:              "Set mute timeout in minutes",
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "minutes",
					Description: "Mute timeout in minutes",
					Required:    true,
					MinValue:    &minOne,
					MaxValue:    720,
				},
			},
		},
		{
			Name:                     "set-interval",
			Description:              "Set check interval in seconds",
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "seconds",
					Description: "Loop interval in seconds",
					Required:    true,
					MinValue:    &minOne,
					MaxValue:    3600,
				},
			},
		},
		{
			Name:                     "mute-status",
			Description:              "Show currently tracked muted users",
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &dmPermission,
		},
	}
}

// syncCommands registers the slash commands, scoped to TEST_GUILD_ID when
// configured so they become available immediately instead of after global
// propagation.
func (b *Bot) syncCommands(s *discordgo.Session) error {
	defs := commandDefs()
	synced, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, b.cfg.TestGuildID, defs)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	scope := "global"
	if b.cfg.TestGuildID != "" {
		scope = "guild " + b.cfg.TestGuildID
	}
	slog.Info("slash commands synced", slog.Int("count", len(synced)), slog.String("scope", scope))
	return nil
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	switch data.Name {
	case "set-timeout":
		b.handleSetTimeout(s, i, data)
	case "set-interval":
		b.handleSetInterval(s, i, data)
	case "mute-status":
		b.handleMuteStatus(s, i)
	}
}

func (b *Bot) handleSetTimeout(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	minutes := data.Options[0].IntValue()
	old := b.monitor.Settings().MuteTimeout()
	if err := b.monitor.Settings().SetMuteTimeout(time.Duration(minutes) * time.Minute); err != nil {
		respond(s, i, fmt.Sprintf("Invalid timeout: %v", err))
		return
	}
	slog.Info("mute timeout changed",
		slog.String("admin", interactionUser(i)),
		slog.Duration("old", old),
		slog.Int64("new_minutes", minutes))
	respond(s, i, fmt.Sprintf("Mute timeout set to %d minutes.", minutes))
}

func (b *Bot) handleSetInterval(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	seconds := data.Options[0].IntValue()
	old := b.monitor.Settings().CheckInterval()
	if err := b.monitor.Settings().SetCheckInterval(time.Duration(seconds) * time.Second); err != nil {
		respond(s, i, fmt.Sprintf("Invalid interval: %v", err))
		return
	}
	if err := b.monitor.Reprogram(time.Duration(seconds) * time.Second); err != nil {
		slog.Error("failed to change loop interval", slog.Any("err", err))
		respond(s, i, fmt.Sprintf("Failed to change loop interval: %v", err))
		return
	}
	slog.Info("check interval changed",
		slog.String("admin", interactionUser(i)),
		slog.Duration("old", old),
		slog.Int64("new_seconds", seconds))
	respond(s, i, fmt.Sprintf("Check interval set to %d seconds.", seconds))
}

func (b *Bot) handleMuteStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	slog.Info("mute status requested", slog.String("admin", interactionUser(i)))

	guildID := i.GuildID
	report := b.monitor.Report(time.Now(), func(participantID string) (string, bool) {
		m, err := s.State.Member(guildID, participantID)
		if err != nil || m == nil {
			return "", false
		}
		return memberName(m), true
	})

	if len(report) <= maxInlineReport {
		respond(s, i, report)
		return
	}
	respond(s, i, "Sending muted user list...")
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: report,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		slog.Error("failed to send status followup", slog.Any("err", err))
	}
}

// respond sends an ephemeral interaction response.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("interaction respond failed", slog.Any("err", err))
	}
}

// interactionUser returns the invoking user's name for logging.
func interactionUser(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}
