package engine

import (
	"sync"
	"time"
)

// PausableClock derives game time from a source clock minus paused intervals
// Spawn timers, cooldowns and deferred tasks all freeze while paused
type PausableClock struct {
	mu sync.RWMutex

	source   TimeProvider
	paused   bool
	pausedAt time.Time     // source time when the current pause began
	total    time.Duration // completed pause time
}

// NewPausableClock wraps source, running
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{source: source}
}

// Now returns game time, frozen at the pause point while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pausedAt.Add(-pc.total)
	}
	return pc.source.Now().Add(-pc.total)
}

// Pause stops game time, no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.source.Now()
}

// Resume continues game time, no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.total += pc.source.Now().Sub(pc.pausedAt)
	pc.paused = false
	pc.pausedAt = time.Time{}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// PausedDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) PausedDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.total
	if pc.paused {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
