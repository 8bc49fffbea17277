// Package log provides structured lifecycle logging for countdown timers.
//
// This package defines the Logger interface and Event type for capturing the
// mutating operations of a countdown.Timer (start, restart, expiry observed by
// an auto-restart poll, duration changes). It is separate from operational
// logging (slog): event capture provides a machine-readable trace of what a
// timer did and when.
//
// # Basic Usage
//
// Applications configure logging by passing a Logger to the timer:
//
//	// For development: log to console via slog
//	t, _ := countdown.New(d, countdown.WithLogger(log.NewSlogAdapter(slog.Default())))
//
//	// For production: append to a binary file
//	fl, _ := log.NewFileLogger("/var/log/countdown/tea.clog")
//
//	// Both: use MultiLogger
//	l := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// Read-only queries (TimeUp, RemainingTime, PercentComplete) never emit
// events.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys and the
// .clog extension. The countdown-log CLI provides viewing, export and
// statistics.
package log
