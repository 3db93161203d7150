package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default JSON logger. The level comes from LOG_LEVEL
// (debug, info, warn, error) and falls back to info; the PG handler is
// attached later in main once the database is up.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
