package monitor

import (
	"fmt"
	"sync"
	"time"
)

// TTSGracePeriod is how long after a TTS message a muted participant stays
// exempt from auto-disconnect. Not runtime-configurable.
const TTSGracePeriod = 5 * time.Minute

// Bounds for the runtime-adjustable settings.
const (
	MinMuteTimeout   = time.Minute
	MaxMuteTimeout   = 12 * time.Hour
	MinCheckInterval = time.Second
	MaxCheckInterval = time.Hour
)

// Settings holds the runtime-mutable monitor configuration. Setters validate
// bounds before applying; the reconcile loop snapshots values once per tick,
// so a change takes effect on the next tick, never mid-pass.
type Settings struct {
	mu            sync.RWMutex
	muteTimeout   time.Duration
	checkInterval time.Duration
}

// NewSettings validates the startup values and returns a Settings.
func NewSettings(muteTimeout, checkInterval time.Duration) (*Settings, error) {
	s := &Settings{}
	if err := s.SetMuteTimeout(muteTimeout); err != nil {
		return nil, err
	}
	if err := s.SetCheckInterval(checkInterval); err != nil {
		return nil, err
	}
	return s, nil
}

// MuteTimeout returns the current mute timeout.
func (s *Settings) MuteTimeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.muteTimeout
}

// CheckInterval returns the current reconcile interval.
func (s *Settings) CheckInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkInterval
}

// SetMuteTimeout replaces the mute timeout if d is within [1m, 12h].
func (s *Settings) SetMuteTimeout(d time.Duration) error {
	if d < MinMuteTimeout || d > MaxMuteTimeout {
		return fmt.Errorf("mute timeout %s out of range [%s, %s]", d, MinMuteTimeout, MaxMuteTimeout)
	}
	s.mu.Lock()
	s.muteTimeout = d
	s.mu.Unlock()
	return nil
}

// SetCheckInterval replaces the reconcile interval if d is within [1s, 1h].
// Reprogramming the running loop's ticker is the caller's job (Monitor.Reprogram).
func (s *Settings) SetCheckInterval(d time.Duration) error {
	if d < MinCheckInterval || d > MaxCheckInterval {
		return fmt.Errorf("check interval %s out of range [%s, %s]", d, MinCheckInterval, MaxCheckInterval)
	}
	s.mu.Lock()
	s.checkInterval = d
	s.mu.Unlock()
	return nil
}
