package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/onnwee/mute-sentinel/config"
	"github.com/onnwee/mute-sentinel/monitor"
)

// Bot owns the Discord session and the monitor it feeds.
type Bot struct {
	session   *discordgo.Session
	monitor   *monitor.Monitor
	ingestor  *monitor.Ingestor
	cfg       *config.Config
	runCtx    context.Context
	startOnce sync.Once
}

// New builds the session, wires the event handlers, and returns the bot.
// The session is not opened yet; call Run.
func New(cfg *config.Config, tracker *monitor.Tracker, settings *monitor.Settings) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildVoiceStates |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent
	session.StateEnabled = true
	session.State.TrackVoice = true
	session.State.TrackMembers = true

	b := &Bot{
		session:  session,
		ingestor: monitor.NewIngestor(tracker),
		cfg:      cfg,
	}
	b.monitor = monitor.New(tracker, settings, b)

	session.AddHandler(b.onReady)
	session.AddHandler(b.onVoiceStateUpdate)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Monitor exposes the reconcile loop (for the status HTTP surface).
func (b *Bot) Monitor() *monitor.Monitor { return b.monitor }

// Run opens the gateway connection and blocks until ctx is cancelled.
// The reconcile loop starts from the ready handler, never before.
func (b *Bot) Run(ctx context.Context) error {
	b.runCtx = ctx
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	<-ctx.Done()
	if err := b.session.Close(); err != nil {
		slog.Error("discord session close error", slog.Any("err", err))
	}
	return nil
}

// onReady starts the monitor loop exactly once and syncs slash commands.
// Reconnects re-fire ready, hence the once.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord session ready",
		slog.String("user", r.User.Username),
		slog.Int("guild_count", len(r.Guilds)))

	b.startOnce.Do(func() {
		go b.monitor.Run(b.runCtx)
	})

	// Command-sync failure is logged but never stops the monitor (the bot
	// still tracks and disconnects without the admin surface).
	if err := b.syncCommands(s); err != nil {
		slog.Error("failed to sync commands", slog.Any("err", err))
	}
}
