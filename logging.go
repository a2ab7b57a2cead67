package wat

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger creates a text logger writing to w. Verbose loggers emit every record down to debug; otherwise only
// warnings and errors are written.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if verbose {
		level.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ConfigureLogging sets the default logger to write diagnostics to stderr, keeping stdout for results.
func ConfigureLogging(verbose bool) *slog.Logger {
	logger := NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}
