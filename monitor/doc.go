// Package monitor contains the mute-tracking core: the shared trackers, the
// event ingestor, and the periodic reconciliation loop.
//
// It provides three pieces:
//   - Tracker: in-memory maps from participant id to mute start and to last
//     TTS activity, guarded by a single mutex. All state is ephemeral; a
//     restart loses it and the maps are rebuilt purely from future events.
//   - Ingestor: translates platform voice-state and message notifications
//     into tracker mutations (mute start, unmute, departure, TTS refresh).
//   - Monitor: the reconciliation loop. Once per check interval it snapshots
//     the tracked mutes, skips anyone with TTS activity inside the grace
//     window, resolves live voice membership through the Platform interface,
//     and disconnects anyone muted longer than the configured timeout.
//     Failed disconnects keep their record and are retried on later ticks.
//
// The package never imports the Discord SDK; the discord package adapts
// session events and calls into it through VoiceSnapshot and Platform.
package monitor
