package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/shardmaze/status"
)

// sessionMetrics caches registry cells so the tick path never takes the map lock
type sessionMetrics struct {
	ticks    *atomic.Int64
	tasks    *atomic.Int64
	contacts *atomic.Int64
	levels   *atomic.Int64
	level    *atomic.Int64
	shards   *atomic.Int64
	monsters *atomic.Int64
	pending  *atomic.Int64
	dropped  *atomic.Int64
	energy   *status.Float
	sanity   *status.Float
	damage   *status.Float
	peakHit  *status.Float
	hiding   *atomic.Bool
	caught   *atomic.Bool
}

func newSessionMetrics(r *status.Registry) sessionMetrics {
	return sessionMetrics{
		ticks:    r.Ints.Get("session.ticks"),
		tasks:    r.Ints.Get("scheduler.ran"),
		contacts: r.Ints.Get("pursuit.contacts"),
		levels:   r.Ints.Get("level.changes"),
		level:    r.Ints.Get("level.current"),
		shards:   r.Ints.Get("player.shards"),
		monsters: r.Ints.Get("pursuit.monsters"),
		pending:  r.Ints.Get("scheduler.pending"),
		dropped:  r.Ints.Get("events.dropped"),
		energy:   r.Floats.Get("light.energy"),
		sanity:   r.Floats.Get("player.sanity"),
		damage:   r.Floats.Get("player.damage_taken"),
		peakHit:  r.Floats.Get("pursuit.peak_damage"),
		hiding:   r.Bools.Get("player.hiding"),
		caught:   r.Bools.Get("session.caught"),
	}
}

// publish copies gauges from session state; counters are bumped where they happen
func (m sessionMetrics) publish(s *Session) {
	m.level.Store(int64(s.lvl.Number))
	m.shards.Store(int64(s.shards))
	m.monsters.Store(int64(s.pursuer.Count()))
	m.pending.Store(int64(s.sched.Pending()))
	m.dropped.Store(int64(s.queue.Dropped()))
	m.energy.Store(s.light.Energy)
	m.sanity.Store(s.player.Sanity)
	m.hiding.Store(s.hiding)
	m.caught.Store(s.phase == PhaseCaught)
}
