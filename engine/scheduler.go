package engine

import (
	"time"

	"github.com/zyedidia/generic/heap"
)

// Scope is the lifetime bucket of a deferred task
type Scope uint8

const (
	// ScopeSession tasks survive level changes and die with the session
	ScopeSession Scope = iota
	// ScopeLevel tasks are cancelled on level teardown
	ScopeLevel
)

func (s Scope) String() string {
	if s == ScopeLevel {
		return "level"
	}
	return "session"
}

// TaskID identifies a scheduled task for cancellation
type TaskID uint64

type task struct {
	id    TaskID
	due   time.Duration
	scope Scope
	fn    func()
}

// Scheduler runs one-shot callbacks at session-relative times
// Tasks only execute inside RunDue, so every mutation stays on the update pass
type Scheduler struct {
	queue *heap.Heap[*task]
	live  map[TaskID]*task
	next  TaskID
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		queue: heap.New(func(a, b *task) bool {
			if a.due != b.due {
				return a.due < b.due
			}
			return a.id < b.id
		}),
		live: make(map[TaskID]*task),
		next: 1,
	}
}

// After schedules fn to run at now+d; negative delays run on the next pass
func (s *Scheduler) After(now, d time.Duration, scope Scope, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	t := &task{id: s.next, due: now + d, scope: scope, fn: fn}
	s.next++
	s.queue.Push(t)
	s.live[t.id] = t
	return t.id
}

// Cancel drops a pending task, reports whether it was still pending
func (s *Scheduler) Cancel(id TaskID) bool {
	if _, ok := s.live[id]; !ok {
		return false
	}
	delete(s.live, id)
	return true
}

// CancelScope drops every pending task of scope
func (s *Scheduler) CancelScope(scope Scope) int {
	n := 0
	for id, t := range s.live {
		if t.scope == scope {
			delete(s.live, id)
			n++
		}
	}
	return n
}

// CancelAll drops every pending task
func (s *Scheduler) CancelAll() int {
	n := len(s.live)
	clear(s.live)
	return n
}

// Pending returns the number of live tasks
func (s *Scheduler) Pending() int {
	return len(s.live)
}

// RunDue executes tasks due at or before now in due order
// Tasks scheduled while running wait for the next pass; a task cancelled by an earlier one is skipped
func (s *Scheduler) RunDue(now time.Duration) int {
	limit := s.next
	ran := 0
	for {
		t, ok := s.queue.Peek()
		if !ok {
			break
		}
		if _, alive := s.live[t.id]; !alive {
			s.queue.Pop()
			continue
		}
		if t.due > now || t.id >= limit {
			break
		}
		s.queue.Pop()
		delete(s.live, t.id)
		t.fn()
		ran++
	}
	return ran
}
