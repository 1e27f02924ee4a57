package engine

import "time"

// EventType classifies what the host should present
type EventType uint8

const (
	EventWhisper EventType = iota
	EventMonstersSpawned
	EventShard
	EventAllShards
	EventBattery
	EventDamage
	EventLevelChange
	EventHide
	EventUnhide
	EventFlashlightReload
	EventFlashlightEmpty
	EventFlicker
	EventJumpScare
	EventTransientMonster
	EventCaught
)

var eventNames = [...]string{
	EventWhisper:          "whisper",
	EventMonstersSpawned:  "monsters_spawned",
	EventShard:            "shard",
	EventAllShards:        "all_shards",
	EventBattery:          "battery",
	EventDamage:           "damage",
	EventLevelChange:      "level_change",
	EventHide:             "hide",
	EventUnhide:           "unhide",
	EventFlashlightReload: "flashlight_reload",
	EventFlashlightEmpty:  "flashlight_empty",
	EventFlicker:          "flicker",
	EventJumpScare:        "jump_scare",
	EventTransientMonster: "transient_monster",
	EventCaught:           "caught",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a notification produced during an update pass
type Event struct {
	Type  EventType
	Tick  uint64
	At    time.Duration // session elapsed time
	Level int
	Text  string  // whisper line
	Value float64 // damage amount, shard count, level number
}

// EventQueue is a bounded FIFO that overwrites its oldest entry when full
// Owned by the update goroutine, not safe for concurrent use
type EventQueue struct {
	buf     []Event
	head    int
	size    int
	dropped uint64
}

// NewEventQueue creates a queue holding up to capacity events
func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{buf: make([]Event, max(capacity, 1))}
}

// Push appends e, evicting the oldest event when full
func (q *EventQueue) Push(e Event) {
	if q.size == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped++
	}
	q.buf[(q.head+q.size)%len(q.buf)] = e
	q.size++
}

// Drain returns pending events oldest first and empties the queue
func (q *EventQueue) Drain() []Event {
	if q.size == 0 {
		return nil
	}
	out := make([]Event, q.size)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.head, q.size = 0, 0
	return out
}

// Len returns the number of pending events
func (q *EventQueue) Len() int {
	return q.size
}

// Dropped returns how many events were evicted unread
func (q *EventQueue) Dropped() uint64 {
	return q.dropped
}
