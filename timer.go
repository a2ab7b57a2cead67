package wat

import (
	"log/slog"
	"time"
)

// Timer measures how long a stage of a session takes.
//
//	t := StartTimer(logger, "training race classifier", verbose)
//	defer t.Stop()
type Timer struct {
	logger  *slog.Logger
	label   string
	enabled bool
	start   time.Time
}

// StartTimer starts timing a stage. The elapsed time is only logged when enabled is true.
func StartTimer(logger *slog.Logger, label string, enabled bool) *Timer {
	return &Timer{
		logger:  logger,
		label:   label,
		enabled: enabled,
		start:   time.Now(),
	}
}

// Stop returns the time elapsed since the timer was started and logs it if the timer is enabled.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.enabled && t.logger != nil {
		t.logger.Info(t.label, "elapsed", elapsed)
	}
	return elapsed
}
