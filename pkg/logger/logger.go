package logger

import (
	"log/slog"
	"os"
)

// Log defaults to a JSON handler so packages can log before Init runs
// (tests, init-time warnings).
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init() {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler).With("service", "nest-backend")
}
