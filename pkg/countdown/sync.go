package countdown

import (
	"sync"
	"time"
)

// SyncTimer wraps a Timer for use from multiple goroutines.
// Queries take a read lock; Start, TimeUpAndTryRestart and ChangeDuration
// take the write lock.
type SyncTimer struct {
	mu sync.RWMutex
	t  *Timer
}

// NewSync wraps t. The caller must not use t directly afterwards.
func NewSync(t *Timer) *SyncTimer {
	return &SyncTimer{t: t}
}

// ID returns the timer identifier.
func (s *SyncTimer) ID() string {
	return s.t.ID()
}

// Duration returns the configured duration.
func (s *SyncTimer) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.Duration()
}

// Running reports whether Start has been called.
func (s *SyncTimer) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.Running()
}

// Start starts or restarts the timer.
func (s *SyncTimer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.Start()
}

// TimeUp reports whether the timer has expired.
func (s *SyncTimer) TimeUp() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.TimeUp()
}

// TimeUpAndTryRestart restarts an expired timer and reports whether it did.
func (s *SyncTimer) TimeUpAndTryRestart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.TimeUpAndTryRestart()
}

// Elapsed returns the time since the last Start.
func (s *SyncTimer) Elapsed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.Elapsed()
}

// RemainingTime returns the time left before expiry.
func (s *SyncTimer) RemainingTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.RemainingTime()
}

// PercentComplete returns the completed fraction of the duration.
func (s *SyncTimer) PercentComplete() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.PercentComplete()
}

// ChangeDuration sets a new duration; non-positive values are ignored.
func (s *SyncTimer) ChangeDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.ChangeDuration(d)
}
