package countdown

import "github.com/mash-protocol/countdown/pkg/log"

// Option configures a Timer at construction.
type Option func(*Timer)

// StartImmediately starts the timer before New returns.
func StartImmediately() Option {
	return func(t *Timer) {
		t.startOnCreate = true
	}
}

// WithClock sets the time source. A nil clock is ignored.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithLogger sets the event logger. A nil logger is ignored.
func WithLogger(l log.Logger) Option {
	return func(t *Timer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithID sets the identifier reported in events. An empty ID is ignored.
func WithID(id string) Option {
	return func(t *Timer) {
		if id != "" {
			t.id = id
		}
	}
}

// WithLabel sets a human-readable name reported in events.
func WithLabel(label string) Option {
	return func(t *Timer) {
		t.label = label
	}
}
