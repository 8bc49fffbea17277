// Package countdown implements a minimal countdown timer.
//
// A Timer is configured with a strictly positive duration. Once started it
// reports whether the duration has elapsed, how much time remains and the
// fraction completed. Elapsed time is measured against a monotonic clock, so
// wall-clock adjustments (NTP, DST, manual changes) never affect it.
//
// # Lifecycle
//
// A Timer is either not started or running. Start moves it to running and
// captures the start reference; calling Start again restarts it. There is no
// stop and no stored "expired" state: expiry is derived on every query.
//
//	t, err := countdown.New(3 * time.Second)
//	if err != nil {
//		return err
//	}
//	t.Start()
//	for !t.TimeUp() {
//		fmt.Printf("remaining %v\r", t.RemainingTime())
//		time.Sleep(100 * time.Millisecond)
//	}
//
// # Invalid Durations
//
// New fails with ErrInvalidDuration when the duration is not positive.
// ChangeDuration silently ignores non-positive values and keeps the previous
// duration.
//
// # Periodic Use
//
// TimeUpAndTryRestart restarts an expired timer from the moment of the poll,
// not from the ideal expiry instant. Polling at a fixed interval therefore
// accumulates drift of up to one poll interval per period.
//
// # Duration Changes
//
// ChangeDuration leaves the start reference alone. Shortening a running
// timer can make it expire immediately; lengthening it can move
// PercentComplete backward and RemainingTime up.
//
// # Concurrency
//
// Timer holds no locks. Read-only queries may run concurrently with each
// other, but Start and ChangeDuration require exclusive access. Use SyncTimer
// when several goroutines share a timer.
package countdown
