// Package duration converts between real-valued seconds and time.Duration.
//
// Countdown timers are configured in seconds by humans and config files
// ("90", "1.5") but measured in time.Duration internally. This package is
// the single place where that conversion happens.
//
// # Accepted Forms
//
// Parse accepts either a bare decimal number of seconds or any string
// understood by time.ParseDuration:
//
//	duration.Parse("2.5")   // 2.5s
//	duration.Parse("1m30s") // 90s
//
// Parse does not enforce positivity. Whether a non-positive value is an
// error or silently ignored is decided by the caller (see package countdown).
package duration
