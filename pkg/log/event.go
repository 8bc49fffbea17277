package log

import (
	"strings"
	"time"
)

// Event represents a single timer lifecycle event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred, as read from the timer's clock.
	Timestamp time.Time `cbor:"1,keyasint"`

	// TimerID uniquely identifies the timer (UUID unless set explicitly).
	TimerID string `cbor:"2,keyasint"`

	// Label is an optional human-readable timer name.
	Label string `cbor:"3,keyasint,omitempty"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Duration is the configured duration after the event was applied.
	Duration time.Duration `cbor:"5,keyasint"`

	// Elapsed is the time since the previous start, if the timer was running.
	Elapsed *time.Duration `cbor:"6,keyasint,omitempty"`

	// Change is set for DurationChanged and DurationRejected events.
	Change *DurationChange `cbor:"7,keyasint,omitempty"`
}

// Kind classifies a timer event.
type Kind uint8

const (
	// KindStarted indicates the first Start of a timer.
	KindStarted Kind = 0
	// KindRestarted indicates Start on an already running timer.
	KindRestarted Kind = 1
	// KindExpired indicates an auto-restart poll observed expiry.
	KindExpired Kind = 2
	// KindDurationChanged indicates the configured duration was updated.
	KindDurationChanged Kind = 3
	// KindDurationRejected indicates a non-positive duration update was ignored.
	KindDurationRejected Kind = 4
)

// AllKinds lists every Kind in declaration order.
var AllKinds = []Kind{
	KindStarted,
	KindRestarted,
	KindExpired,
	KindDurationChanged,
	KindDurationRejected,
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStarted:
		return "STARTED"
	case KindRestarted:
		return "RESTARTED"
	case KindExpired:
		return "EXPIRED"
	case KindDurationChanged:
		return "DURATION_CHANGED"
	case KindDurationRejected:
		return "DURATION_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a kind name case-insensitively. Dashes are accepted in
// place of underscores ("duration-changed").
func ParseKind(s string) (Kind, bool) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, k := range AllKinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// DurationChange captures a requested duration update.
type DurationChange struct {
	// Old is the duration before the request.
	Old time.Duration `cbor:"1,keyasint"`

	// Requested is the duration passed by the caller.
	Requested time.Duration `cbor:"2,keyasint"`
}
