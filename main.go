// Command mute-sentinel is the main entrypoint for the mute monitor bot.
// It:
//   - Loads configuration and initializes structured logging.
//   - Connects to the Discord gateway and feeds voice/message events into
//     the mute tracker.
//   - Starts the reconciliation loop once the session is ready.
//   - Exposes a minimal HTTP server with /health, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/onnwee/mute-sentinel/config"
	"github.com/onnwee/mute-sentinel/discord"
	"github.com/onnwee/mute-sentinel/monitor"
	"github.com/onnwee/mute-sentinel/server"
	"github.com/onnwee/mute-sentinel/telemetry"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Configure logging (level + format). Defaults: level=info, format=text.
	// VERBOSE_LOGGING forces debug regardless of LOG_LEVEL.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	if cfg.VerboseLogging {
		lvl = slog.LevelDebug
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT")) // text | json
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
	slog.Info("logger initialized", slog.String("level", lvl.String()))

	// Missing token is the only fatal configuration error; abort before connecting.
	if err := cfg.Validate(); err != nil {
		slog.Error("config invalid", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()

	// Initialize OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdown, err := telemetry.InitTracing("mute-sentinel", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	settings, err := monitor.NewSettings(cfg.MuteTimeout, cfg.CheckInterval)
	if err != nil {
		slog.Error("invalid monitor settings", slog.Any("err", err))
		os.Exit(1)
	}
	tracker := monitor.NewTracker()

	bot, err := discord.New(cfg, tracker, settings)
	if err != nil {
		slog.Error("failed to create bot", slog.Any("err", err))
		os.Exit(1)
	}

	slog.Info("starting mute sentinel",
		slog.Duration("mute_timeout", cfg.MuteTimeout),
		slog.Duration("check_interval", cfg.CheckInterval),
		slog.String("http_addr", cfg.HTTPAddr),
		slog.Bool("health_enabled", cfg.HealthEnabled))

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server (health/status/metrics)
	if cfg.HealthEnabled {
		go func() {
			if err := server.Start(ctx, bot.Monitor(), cfg.HTTPAddr); err != nil {
				slog.Error("http server exited with error", slog.Any("err", err))
			}
		}()
	}

	// Block on the gateway connection until shutdown signal
	if err := bot.Run(ctx); err != nil {
		slog.Error("bot exited with error", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("shutting down")
}
