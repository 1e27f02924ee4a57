package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-driven clock for session tests
// It remembers its start so tests can reason in session-relative time
type MockTimeProvider struct {
	mu    sync.RWMutex
	start time.Time
	now   time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start, now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Elapsed returns the mocked time since construction
func (m *MockTimeProvider) Elapsed() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now.Sub(m.start)
}

// SetTime jumps the clock to t; start is unchanged
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Ticks advances by step n times, calling fn after each advance with the new time
// fn runs without the lock held so it may read the clock
func (m *MockTimeProvider) Ticks(n int, step time.Duration, fn func(now time.Time)) {
	for i := 0; i < n; i++ {
		fn(m.Advance(step))
	}
}
