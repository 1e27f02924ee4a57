package parameter

import "time"

// Session loop
const (
	// TickInterval is the host's fixed update cadence
	TickInterval = 16 * time.Millisecond

	// EventQueueCapacity bounds queued host events; oldest are dropped when full
	EventQueueCapacity = 256
)
