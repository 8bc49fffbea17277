package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes timer events to an slog.Logger.
// Useful for development when you want to see timer events in console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter that logs at the given level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("timer_id", event.TimerID),
		slog.String("kind", event.Kind.String()),
		slog.Duration("duration", event.Duration),
	}

	if event.Label != "" {
		attrs = append(attrs, slog.String("label", event.Label))
	}
	if event.Elapsed != nil {
		attrs = append(attrs, slog.Duration("elapsed", *event.Elapsed))
	}
	if event.Change != nil {
		attrs = append(attrs,
			slog.Duration("old_duration", event.Change.Old),
			slog.Duration("requested_duration", event.Change.Requested),
		)
	}

	a.logger.LogAttrs(context.Background(), a.level, "timer", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
