package logger

import (
	"log/slog"
	"os"

	"github.com/ahmedmubarak14/poconfirm/internal/config"
)

// New creates a preconfigured slog.Logger honoring the configured level.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
