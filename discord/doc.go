// Package discord wires the Discord gateway to the mute monitor.
//
// It owns the discordgo session: intents, state tracking, the ready handler
// that starts the reconcile loop and syncs slash commands, and the event
// handlers that feed voice-state and message notifications into the monitor
// ingestor. It also implements monitor.Platform over the session state so
// the reconcile loop can resolve live voice membership and issue
// disconnects without importing the SDK.
//
// Slash commands (/set-timeout, /set-interval, /mute-status) are registered
// admin-only and guild-only; all responses are ephemeral. When TEST_GUILD_ID
// is configured, commands sync to that guild only, which propagates much
// faster than a global sync during testing.
package discord
