// Package config loads environment variables and provides a typed Config used across the service.
// It applies sensible defaults so the binary can run locally with minimal setup.
// The Discord token is the only required value; use Validate before connecting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default values applied when the corresponding env var is unset.
const (
	DefaultMuteTimeout   = 30 * time.Minute
	DefaultCheckInterval = time.Second
	DefaultHTTPAddr      = ":8000"
)

type Config struct {
	// Discord
	DiscordToken string
	TestGuildID  string // optional; scopes command sync to one guild for fast availability

	// Monitor
	MuteTimeout   time.Duration
	CheckInterval time.Duration

	// HTTP
	HTTPAddr      string
	HealthEnabled bool

	// Logging
	VerboseLogging bool
}

// Load reads environment variables and applies defaults. It doesn't fail when the
// token is missing; use Validate() before opening the session. Out-of-range startup
// values for timeout/interval are rejected here rather than silently clamped.
func Load() (*Config, error) {
	cfg := &Config{
		MuteTimeout:   DefaultMuteTimeout,
		CheckInterval: DefaultCheckInterval,
		HTTPAddr:      DefaultHTTPAddr,
		HealthEnabled: true,
	}

	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	cfg.TestGuildID = os.Getenv("TEST_GUILD_ID")

	if v := os.Getenv("MUTE_TIMEOUT_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MUTE_TIMEOUT_MINUTES: %w", err)
		}
		if n < 1 || n > 720 {
			return nil, fmt.Errorf("MUTE_TIMEOUT_MINUTES %d out of range [1, 720]", n)
		}
		cfg.MuteTimeout = time.Duration(n) * time.Minute
	}

	if v := os.Getenv("CHECK_INTERVAL_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CHECK_INTERVAL_SECONDS: %w", err)
		}
		if n < 1 || n > 3600 {
			return nil, fmt.Errorf("CHECK_INTERVAL_SECONDS %d out of range [1, 3600]", n)
		}
		cfg.CheckInterval = time.Duration(n) * time.Second
	}

	// HTTP_ADDR takes precedence; PORT is the deployment-platform convention.
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	} else if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.HTTPAddr = ":" + v
	}

	if v := os.Getenv("HEALTH_ENABLED"); v != "" {
		cfg.HealthEnabled = v == "1" || v == "true"
	}
	cfg.VerboseLogging = os.Getenv("VERBOSE_LOGGING") == "1" || os.Getenv("VERBOSE_LOGGING") == "true"

	return cfg, nil
}

// Validate checks required fields before connecting to Discord.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("missing required env: DISCORD_TOKEN")
	}
	return nil
}
