package countdown

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mash-protocol/countdown/pkg/duration"
	"github.com/mash-protocol/countdown/pkg/log"
)

// ErrInvalidDuration is returned by New when the duration is not positive.
// NewSeconds converts to whole nanoseconds first, so positive inputs below
// 0.5ns round to zero and are rejected too.
var ErrInvalidDuration = errors.New("timer duration must be positive")

// Timer is a countdown timer. The zero value is not usable; create timers
// with New or NewSeconds.
type Timer struct {
	id    string
	label string

	// duration is always > 0.
	duration time.Duration

	// started is only meaningful while running is true.
	started time.Time
	running bool

	clock  Clock
	logger log.Logger

	startOnCreate bool
}

// New creates a timer that runs for d once started.
// It returns ErrInvalidDuration if d <= 0.
func New(d time.Duration, opts ...Option) (*Timer, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDuration, d)
	}

	t := &Timer{
		duration: d,
		clock:    SystemClock{},
		logger:   log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.id == "" {
		t.id = uuid.New().String()
	}

	if t.startOnCreate {
		t.Start()
	}
	return t, nil
}

// NewSeconds is New for callers that measure durations in real seconds.
// Values that round to zero nanoseconds are rejected like non-positive ones.
func NewSeconds(seconds float64, opts ...Option) (*Timer, error) {
	return New(duration.FromSeconds(seconds), opts...)
}

// ID returns the timer identifier.
func (t *Timer) ID() string {
	return t.id
}

// Label returns the timer label, which may be empty.
func (t *Timer) Label() string {
	return t.label
}

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Running reports whether Start has been called.
func (t *Timer) Running() bool {
	return t.running
}

// Start starts the timer, or restarts it from now if already running.
func (t *Timer) Start() {
	now := t.clock.Now()

	event := t.newEvent(now, log.KindStarted)
	if t.running {
		event.Kind = log.KindRestarted
		elapsed := t.elapsedAt(now)
		event.Elapsed = &elapsed
	}

	t.started = now
	t.running = true
	t.logger.Log(event)
}

// TimeUp reports whether the duration has elapsed since the last Start.
// It always returns false for a timer that was never started.
func (t *Timer) TimeUp() bool {
	if !t.running {
		return false
	}
	return t.elapsedAt(t.clock.Now()) >= t.duration
}

// TimeUpAndTryRestart is TimeUp, except that an expired timer is restarted
// before returning true. The new period starts at the time of this call.
func (t *Timer) TimeUpAndTryRestart() bool {
	if !t.running {
		return false
	}

	now := t.clock.Now()
	elapsed := t.elapsedAt(now)
	if elapsed < t.duration {
		return false
	}

	event := t.newEvent(now, log.KindExpired)
	event.Elapsed = &elapsed
	t.logger.Log(event)

	t.Start()
	return true
}

// Elapsed returns the time since the last Start, or 0 if not running.
func (t *Timer) Elapsed() time.Duration {
	if !t.running {
		return 0
	}
	return t.elapsedAt(t.clock.Now())
}

// RemainingTime returns the time left before expiry. A timer that was never
// started reports its full duration; an expired timer reports 0.
func (t *Timer) RemainingTime() time.Duration {
	if !t.running {
		return t.duration
	}
	remaining := t.duration - t.elapsedAt(t.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PercentComplete returns the completed fraction of the duration in the
// range [0.0, 1.0]. A timer that was never started reports 0.0.
func (t *Timer) PercentComplete() float64 {
	if !t.running {
		return 0.0
	}
	progress := float64(t.elapsedAt(t.clock.Now())) / float64(t.duration)
	switch {
	case progress < 0.0:
		return 0.0
	case progress > 1.0:
		return 1.0
	}
	return progress
}

// ExpiresAt returns the instant the current period ends. ok is false if the
// timer was never started.
func (t *Timer) ExpiresAt() (at time.Time, ok bool) {
	if !t.running {
		return time.Time{}, false
	}
	return t.started.Add(t.duration), true
}

// ChangeDuration sets a new duration without touching the start reference.
// Non-positive values are ignored and the previous duration is kept.
func (t *Timer) ChangeDuration(d time.Duration) {
	now := t.clock.Now()
	change := &log.DurationChange{Old: t.duration, Requested: d}

	kind := log.KindDurationChanged
	if d <= 0 {
		kind = log.KindDurationRejected
	} else {
		t.duration = d
	}

	event := t.newEvent(now, kind)
	event.Change = change
	if t.running {
		elapsed := t.elapsedAt(now)
		event.Elapsed = &elapsed
	}
	t.logger.Log(event)
}

// elapsedAt returns now - started, clamped at zero.
func (t *Timer) elapsedAt(now time.Time) time.Duration {
	elapsed := now.Sub(t.started)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (t *Timer) newEvent(now time.Time, kind log.Kind) log.Event {
	return log.Event{
		Timestamp: now,
		TimerID:   t.id,
		Label:     t.label,
		Kind:      kind,
		Duration:  t.duration,
	}
}
