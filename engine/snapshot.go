package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/shardmaze/level"
	"github.com/lixenwraith/shardmaze/physics"
	"github.com/lixenwraith/shardmaze/vmath"
)

// Snapshot is a read-only view for rendering, rebuilt at the end of every update
type Snapshot struct {
	SessionID uuid.UUID
	Tick      uint64
	Elapsed   time.Duration
	Phase     Phase
	Level     int

	Player Player
	Light  Flashlight
	Hiding bool

	// GlobalLight is the ambient light, switched off when monsters arrive
	GlobalLight    bool
	MonstersActive bool
	SpawnIn        time.Duration // time until monsters arrive, zero once active
	Monsters       []physics.Monster

	Shards         int // collected across the session
	ShardsRequired int // placed on the current level
	ShardsLeft     int

	// Prompt names the interaction available at the player's position, empty when none
	Prompt string

	Oracle       *physics.Oracle
	Doors        []level.Door
	Lockers      []level.Locker
	Collectibles []level.Collectible // uncollected only
}

func (s *Session) refresh() {
	snap := Snapshot{
		SessionID:      s.ID,
		Tick:           s.tick,
		Elapsed:        s.now,
		Phase:          s.phase,
		Level:          s.lvl.Number,
		Player:         s.player,
		Light:          s.light,
		Hiding:         s.hiding,
		GlobalLight:    s.globalLight,
		MonstersActive: s.monstersActive,
		Monsters:       s.pursuer.Monsters(),
		Shards:         s.shards,
		ShardsRequired: s.lvl.Total(level.Shard),
		ShardsLeft:     s.lvl.Remaining(level.Shard),
		Prompt:         s.prompt(),
		Oracle:         s.lvl.Oracle(),
		Doors:          s.lvl.Doors,
		Lockers:        s.lvl.Lockers,
	}
	if !s.monstersActive {
		snap.SpawnIn = max(0, s.cfg.Pursuit.SpawnDelay-(s.now-s.levelStart))
	}
	for _, c := range s.lvl.Collectibles {
		if !c.Collected {
			snap.Collectibles = append(snap.Collectibles, c)
		}
	}
	s.snap = snap
	s.metrics.publish(s)
}

func (s *Session) prompt() string {
	if s.phase == PhaseCaught {
		return ""
	}
	if s.hiding {
		return "Press E to exit locker"
	}
	reach := s.cfg.Player.InteractDistance
	pos := s.player.Position
	for _, d := range s.lvl.Doors {
		if vmath.Distance(d.Position, pos) < reach {
			return "Press E to use door"
		}
	}
	for _, l := range s.lvl.Lockers {
		if vmath.Distance(l.Position, pos) < reach {
			return "Press E to hide in locker"
		}
	}
	return ""
}
