package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog logger. Production environments log
// JSON; everything else gets the text handler for readability.
func NewLogger(environment string) *slog.Logger {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler).With(slog.String("service", "gridpicks"))
}

// NoOpLogger discards everything; used in tests.
var NoOpLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
