package countdown

import (
	"errors"
	"testing"
	"time"
)

// manualClock is a Clock that only moves when told to.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestTimer(t *testing.T, d time.Duration, opts ...Option) (*Timer, *manualClock) {
	t.Helper()
	clock := newManualClock()
	timer, err := New(d, append([]Option{WithClock(clock)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%v) error = %v", d, err)
	}
	return timer, clock
}

func TestNewNotStarted(t *testing.T) {
	for _, d := range []time.Duration{time.Nanosecond, time.Second, 90 * time.Minute} {
		t.Run(d.String(), func(t *testing.T) {
			timer, clock := newTestTimer(t, d)
			clock.Advance(10 * d)

			if timer.Running() {
				t.Error("Running() = true for a timer that was never started")
			}
			if timer.TimeUp() {
				t.Error("TimeUp() = true for a timer that was never started")
			}
			if got := timer.RemainingTime(); got != d {
				t.Errorf("RemainingTime() = %v, want %v", got, d)
			}
			if got := timer.PercentComplete(); got != 0.0 {
				t.Errorf("PercentComplete() = %v, want 0", got)
			}
			if got := timer.Elapsed(); got != 0 {
				t.Errorf("Elapsed() = %v, want 0", got)
			}
			if _, ok := timer.ExpiresAt(); ok {
				t.Error("ExpiresAt() ok = true for a timer that was never started")
			}
		})
	}
}

func TestNewInvalidDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Nanosecond, -5 * time.Second} {
		t.Run(d.String(), func(t *testing.T) {
			timer, err := New(d)
			if !errors.Is(err, ErrInvalidDuration) {
				t.Errorf("New(%v) error = %v, want ErrInvalidDuration", d, err)
			}
			if timer != nil {
				t.Errorf("New(%v) returned non-nil timer on error", d)
			}
		})
	}
}

func TestNewSeconds(t *testing.T) {
	timer, err := NewSeconds(1.5)
	if err != nil {
		t.Fatalf("NewSeconds(1.5) error = %v", err)
	}
	if timer.Duration() != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", timer.Duration())
	}

	for _, s := range []float64{0.0, -5.0, 1e-12} {
		if _, err := NewSeconds(s); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("NewSeconds(%v) error = %v, want ErrInvalidDuration", s, err)
		}
	}

	// One nanosecond is the smallest accepted duration.
	timer, err = NewSeconds(1e-9)
	if err != nil {
		t.Fatalf("NewSeconds(1e-9) error = %v", err)
	}
	if timer.Duration() != time.Nanosecond {
		t.Errorf("Duration() = %v, want 1ns", timer.Duration())
	}
}

func TestStartImmediatelyEquivalentToStart(t *testing.T) {
	const d = 10 * time.Second

	immediate, clockA := newTestTimer(t, d, StartImmediately())
	manual, clockB := newTestTimer(t, d)
	manual.Start()

	for i := 0; i < 4; i++ {
		if immediate.Running() != manual.Running() {
			t.Fatalf("step %d: Running() differs", i)
		}
		if immediate.TimeUp() != manual.TimeUp() {
			t.Errorf("step %d: TimeUp() differs", i)
		}
		if immediate.RemainingTime() != manual.RemainingTime() {
			t.Errorf("step %d: RemainingTime() %v != %v", i, immediate.RemainingTime(), manual.RemainingTime())
		}
		if immediate.PercentComplete() != manual.PercentComplete() {
			t.Errorf("step %d: PercentComplete() %v != %v", i, immediate.PercentComplete(), manual.PercentComplete())
		}
		clockA.Advance(4 * time.Second)
		clockB.Advance(4 * time.Second)
	}
}

func TestStartAndQueries(t *testing.T) {
	timer, clock := newTestTimer(t, 10*time.Second)
	timer.Start()

	if !timer.Running() {
		t.Fatal("Running() = false after Start")
	}
	if timer.TimeUp() {
		t.Error("TimeUp() = true immediately after Start")
	}
	if got := timer.PercentComplete(); got != 0.0 {
		t.Errorf("PercentComplete() = %v immediately after Start, want 0", got)
	}

	clock.Advance(2500 * time.Millisecond)
	if got := timer.RemainingTime(); got != 7500*time.Millisecond {
		t.Errorf("RemainingTime() = %v, want 7.5s", got)
	}
	if got := timer.PercentComplete(); got != 0.25 {
		t.Errorf("PercentComplete() = %v, want 0.25", got)
	}
	if got := timer.Elapsed(); got != 2500*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 2.5s", got)
	}
	at, ok := timer.ExpiresAt()
	if !ok || !at.Equal(clock.Now().Add(7500*time.Millisecond)) {
		t.Errorf("ExpiresAt() = %v, %v", at, ok)
	}
}

func TestTimeUpAtExactBoundary(t *testing.T) {
	timer, clock := newTestTimer(t, time.Second, StartImmediately())

	clock.Advance(time.Second - time.Nanosecond)
	if timer.TimeUp() {
		t.Error("TimeUp() = true one nanosecond before expiry")
	}

	clock.Advance(time.Nanosecond)
	if !timer.TimeUp() {
		t.Error("TimeUp() = false at elapsed == duration")
	}
}

func TestProgressMonotonic(t *testing.T) {
	const d = time.Second
	timer, clock := newTestTimer(t, d, StartImmediately())

	prevRemaining := timer.RemainingTime()
	prevPercent := timer.PercentComplete()

	for i := 0; i < 30; i++ {
		clock.Advance(70 * time.Millisecond)

		remaining := timer.RemainingTime()
		percent := timer.PercentComplete()

		if remaining > prevRemaining {
			t.Fatalf("step %d: RemainingTime increased from %v to %v", i, prevRemaining, remaining)
		}
		if percent < prevPercent {
			t.Fatalf("step %d: PercentComplete decreased from %v to %v", i, prevPercent, percent)
		}
		if remaining < 0 {
			t.Fatalf("step %d: RemainingTime negative: %v", i, remaining)
		}
		if percent > 1.0 {
			t.Fatalf("step %d: PercentComplete above 1: %v", i, percent)
		}
		prevRemaining, prevPercent = remaining, percent
	}

	if prevRemaining != 0 {
		t.Errorf("final RemainingTime() = %v, want 0", prevRemaining)
	}
	if prevPercent != 1.0 {
		t.Errorf("final PercentComplete() = %v, want 1", prevPercent)
	}
}

func TestTimeUpStaysTrueUntilRestart(t *testing.T) {
	timer, clock := newTestTimer(t, time.Second, StartImmediately())
	clock.Advance(2 * time.Second)

	for i := 0; i < 3; i++ {
		if !timer.TimeUp() {
			t.Fatalf("check %d: TimeUp() = false after expiry", i)
		}
		clock.Advance(time.Hour)
	}

	timer.Start()
	if timer.TimeUp() {
		t.Error("TimeUp() = true right after restart")
	}
	if got := timer.RemainingTime(); got != time.Second {
		t.Errorf("RemainingTime() after restart = %v, want 1s", got)
	}
}

func TestTimeUpAndTryRestart(t *testing.T) {
	t.Run("NotStarted", func(t *testing.T) {
		timer, clock := newTestTimer(t, time.Second)
		clock.Advance(time.Hour)
		if timer.TimeUpAndTryRestart() {
			t.Error("TimeUpAndTryRestart() = true for a timer that was never started")
		}
		if timer.Running() {
			t.Error("TimeUpAndTryRestart() started the timer")
		}
	})

	t.Run("NotExpired", func(t *testing.T) {
		timer, clock := newTestTimer(t, time.Second, StartImmediately())
		clock.Advance(400 * time.Millisecond)

		if timer.TimeUpAndTryRestart() {
			t.Error("TimeUpAndTryRestart() = true before expiry")
		}
		if got := timer.RemainingTime(); got != 600*time.Millisecond {
			t.Errorf("RemainingTime() = %v, want 600ms (unchanged)", got)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		timer, clock := newTestTimer(t, time.Second, StartImmediately())
		clock.Advance(1300 * time.Millisecond)

		if !timer.TimeUpAndTryRestart() {
			t.Fatal("TimeUpAndTryRestart() = false after expiry")
		}
		if got := timer.RemainingTime(); got != time.Second {
			t.Errorf("RemainingTime() = %v, want full 1s after restart", got)
		}
		if timer.TimeUp() {
			t.Error("TimeUp() = true right after auto-restart")
		}
	})

	t.Run("DriftAccumulates", func(t *testing.T) {
		// Polling every 300ms against a 1s period restarts at 1.2s, 2.4s, 3.6s:
		// each period is anchored at the poll, not at the ideal boundary.
		timer, clock := newTestTimer(t, time.Second, StartImmediately())
		origin := clock.Now()

		var restarts []time.Duration
		for i := 0; i < 12; i++ {
			clock.Advance(300 * time.Millisecond)
			if timer.TimeUpAndTryRestart() {
				restarts = append(restarts, clock.Now().Sub(origin))
			}
		}

		want := []time.Duration{1200 * time.Millisecond, 2400 * time.Millisecond, 3600 * time.Millisecond}
		if len(restarts) != len(want) {
			t.Fatalf("restarts = %v, want %v", restarts, want)
		}
		for i := range want {
			if restarts[i] != want[i] {
				t.Errorf("restart %d at %v, want %v", i, restarts[i], want[i])
			}
		}
	})
}

func TestChangeDuration(t *testing.T) {
	t.Run("NonPositiveIgnored", func(t *testing.T) {
		timer, _ := newTestTimer(t, 5*time.Second)
		before := timer.RemainingTime()

		timer.ChangeDuration(0)
		timer.ChangeDuration(-3 * time.Second)

		if got := timer.RemainingTime(); got != before {
			t.Errorf("RemainingTime() = %v after invalid change, want %v", got, before)
		}
		if got := timer.Duration(); got != 5*time.Second {
			t.Errorf("Duration() = %v, want 5s", got)
		}
	})

	t.Run("NotStarted", func(t *testing.T) {
		timer, _ := newTestTimer(t, 5*time.Second)
		timer.ChangeDuration(7 * time.Second)

		if got := timer.RemainingTime(); got != 7*time.Second {
			t.Errorf("RemainingTime() = %v, want 7s", got)
		}
		if timer.Running() {
			t.Error("ChangeDuration started the timer")
		}
	})

	t.Run("ShortenExpiresImmediately", func(t *testing.T) {
		timer, clock := newTestTimer(t, 10*time.Second, StartImmediately())
		clock.Advance(3 * time.Second)

		timer.ChangeDuration(2 * time.Second)
		if !timer.TimeUp() {
			t.Error("TimeUp() = false after shortening below elapsed time")
		}
		if got := timer.RemainingTime(); got != 0 {
			t.Errorf("RemainingTime() = %v, want 0", got)
		}
	})

	t.Run("LengthenMovesProgressBackward", func(t *testing.T) {
		timer, clock := newTestTimer(t, 4*time.Second, StartImmediately())
		clock.Advance(2 * time.Second)

		if got := timer.PercentComplete(); got != 0.5 {
			t.Fatalf("PercentComplete() = %v, want 0.5", got)
		}

		timer.ChangeDuration(8 * time.Second)
		if got := timer.PercentComplete(); got != 0.25 {
			t.Errorf("PercentComplete() = %v after lengthening, want 0.25", got)
		}
		if got := timer.RemainingTime(); got != 6*time.Second {
			t.Errorf("RemainingTime() = %v after lengthening, want 6s", got)
		}
		if got := timer.Elapsed(); got != 2*time.Second {
			t.Errorf("Elapsed() = %v, start reference must not move", got)
		}
	})
}

func TestClockGoingBackwardsClamps(t *testing.T) {
	timer, clock := newTestTimer(t, time.Second, StartImmediately())
	clock.Advance(-500 * time.Millisecond)

	if got := timer.PercentComplete(); got != 0.0 {
		t.Errorf("PercentComplete() = %v, want 0 when clock went backwards", got)
	}
	if got := timer.RemainingTime(); got != time.Second {
		t.Errorf("RemainingTime() = %v, want 1s when clock went backwards", got)
	}
	if got := timer.Elapsed(); got != 0 {
		t.Errorf("Elapsed() = %v, want 0", got)
	}
	if timer.TimeUp() {
		t.Error("TimeUp() = true when clock went backwards")
	}
}

func TestIDAndLabel(t *testing.T) {
	a, _ := newTestTimer(t, time.Second)
	b, _ := newTestTimer(t, time.Second)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("default IDs should be unique and non-empty: %q, %q", a.ID(), b.ID())
	}

	c, _ := newTestTimer(t, time.Second, WithID("kitchen"), WithLabel("tea"))
	if c.ID() != "kitchen" {
		t.Errorf("ID() = %q, want %q", c.ID(), "kitchen")
	}
	if c.Label() != "tea" {
		t.Errorf("Label() = %q, want %q", c.Label(), "tea")
	}

	d, _ := newTestTimer(t, time.Second, WithID(""))
	if d.ID() == "" {
		t.Error("WithID(\"\") should keep the generated ID")
	}
}

func TestNilOptionsIgnored(t *testing.T) {
	timer, err := New(time.Second, WithClock(nil), WithLogger(nil))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	timer.Start()
	timer.ChangeDuration(2 * time.Second)
	if timer.TimeUp() {
		t.Error("TimeUp() = true right after Start")
	}
}

// End-to-end against the system clock.
func TestSystemClockScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping real-time test in short mode")
	}

	const d = 200 * time.Millisecond
	timer, err := New(d)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if timer.TimeUp() {
		t.Fatal("TimeUp() = true before Start")
	}

	timer.Start()
	if timer.TimeUp() {
		t.Error("TimeUp() = true immediately after Start")
	}
	if got := timer.PercentComplete(); got > 0.5 {
		t.Errorf("PercentComplete() = %v immediately after Start, want ~0", got)
	}

	time.Sleep(d + 50*time.Millisecond)

	if !timer.TimeUp() {
		t.Error("TimeUp() = false after the duration elapsed")
	}
	if got := timer.RemainingTime(); got != 0 {
		t.Errorf("RemainingTime() = %v, want 0", got)
	}
	if got := timer.PercentComplete(); got != 1.0 {
		t.Errorf("PercentComplete() = %v, want 1", got)
	}
}
