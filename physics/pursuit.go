package physics

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/parameter"
	"github.com/lixenwraith/shardmaze/vmath"
)

// Role selects a monster's pursuit behavior
type Role uint8

const (
	// RolePrimary chases the player directly
	RolePrimary Role = iota
	// RoleFlanker faces a rotating ring point around the player
	RoleFlanker
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleFlanker:
		return "flanker"
	default:
		return "unknown"
	}
}

// FlankMode selects what a flanker's ring target drives
type FlankMode uint8

const (
	// FlankCosmetic: ring target sets facing only, movement still heads for the player
	FlankCosmetic FlankMode = iota
	// FlankOrbit: flankers move toward their ring target
	FlankOrbit
)

func (m FlankMode) String() string {
	if m == FlankOrbit {
		return "orbit"
	}
	return "cosmetic"
}

// ParseFlankMode accepts "cosmetic" or "orbit", empty means cosmetic
func ParseFlankMode(s string) (FlankMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cosmetic":
		return FlankCosmetic, nil
	case "orbit":
		return FlankOrbit, nil
	default:
		return FlankCosmetic, fmt.Errorf("unknown flank mode %q", s)
	}
}

// PursuitConfig defines monster speeds, formation and contact penalties
type PursuitConfig struct {
	PrimarySpeed    float64
	FlankerSpeed    float64
	OrbitRadius     float64
	OrbitRate       float64 // radians per second
	PhaseStep       float64 // radians between consecutive indices
	CaptureDistance float64
	Damage          float64 // health per tick per monster in contact
	SanityPenalty   float64 // sanity per tick per monster in contact
	Mode            FlankMode
}

// DefaultPursuitConfig returns reference behavior, flanking cosmetic
func DefaultPursuitConfig() PursuitConfig {
	return PursuitConfig{
		PrimarySpeed:    parameter.PrimarySpeed,
		FlankerSpeed:    parameter.FlankerSpeed,
		OrbitRadius:     parameter.FlankOrbitRadius,
		OrbitRate:       parameter.FlankOrbitRate,
		PhaseStep:       parameter.FlankPhaseStep,
		CaptureDistance: parameter.CaptureDistance,
		Damage:          parameter.CaptureDamage,
		SanityPenalty:   parameter.CaptureSanityPenalty,
		Mode:            FlankCosmetic,
	}
}

// Monster is one pursuing entity
type Monster struct {
	Index    int
	Role     Role
	Position mgl64.Vec3
	Yaw      float64    // facing, yaw 0 looks down -Z
	Target   mgl64.Vec3 // last point the monster faced

	// Transient monsters come from ambience events and expire on their own
	Transient bool
	Expires   time.Duration // session elapsed time of removal
}

// Contact aggregates one tick of capture checks
type Contact struct {
	Hits   int
	Damage float64
	Sanity float64
}

// Pursuer owns monster positions; it is their only writer
type Pursuer struct {
	cfg      PursuitConfig
	collider Collider
	monsters []*Monster
	nextIdx  int
}

// NewPursuer creates an empty roster moving through c
func NewPursuer(cfg PursuitConfig, c Collider) *Pursuer {
	return &Pursuer{cfg: cfg, collider: c}
}

// SetCollider swaps the wall set, used on level change
func (p *Pursuer) SetCollider(c Collider) {
	p.collider = c
}

// Config returns the pursuit parameters
func (p *Pursuer) Config() PursuitConfig {
	return p.cfg
}

// Spawn replaces the roster; index 0 is primary, the rest flank
func (p *Pursuer) Spawn(positions []mgl64.Vec3) {
	p.monsters = p.monsters[:0]
	for i, pos := range positions {
		role := RoleFlanker
		if i == 0 {
			role = RolePrimary
		}
		p.monsters = append(p.monsters, &Monster{Index: i, Role: role, Position: pos, Target: pos})
	}
	p.nextIdx = len(positions)
}

// SpawnTransient adds a flanker removed by Expire once elapsed reaches expires
func (p *Pursuer) SpawnTransient(pos mgl64.Vec3, expires time.Duration) *Monster {
	m := &Monster{
		Index:     p.nextIdx,
		Role:      RoleFlanker,
		Position:  pos,
		Target:    pos,
		Transient: true,
		Expires:   expires,
	}
	p.nextIdx++
	p.monsters = append(p.monsters, m)
	return m
}

// Expire removes transient monsters due at elapsed, returns how many left
func (p *Pursuer) Expire(elapsed time.Duration) int {
	kept := p.monsters[:0]
	removed := 0
	for _, m := range p.monsters {
		if m.Transient && m.Expires <= elapsed {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(p.monsters); i++ {
		p.monsters[i] = nil
	}
	p.monsters = kept
	return removed
}

// Clear drops every monster
func (p *Pursuer) Clear() {
	for i := range p.monsters {
		p.monsters[i] = nil
	}
	p.monsters = p.monsters[:0]
	p.nextIdx = 0
}

// Count returns the roster size
func (p *Pursuer) Count() int {
	return len(p.monsters)
}

// Monsters returns a copy of the roster for readers
func (p *Pursuer) Monsters() []Monster {
	out := make([]Monster, len(p.monsters))
	for i, m := range p.monsters {
		out[i] = *m
	}
	return out
}

// Step advances every monster one tick toward the player and tallies contact
// Blocked steps leave the monster in place
func (p *Pursuer) Step(player mgl64.Vec3, elapsed time.Duration) Contact {
	var c Contact
	for _, m := range p.monsters {
		speed := p.cfg.FlankerSpeed
		goal := player

		if m.Role == RolePrimary {
			speed = p.cfg.PrimarySpeed
			m.Target = player
		} else {
			m.Target = FlankTarget(player, p.cfg.OrbitRadius, p.cfg.OrbitRate, p.cfg.PhaseStep, elapsed, m.Index)
			if p.cfg.Mode == FlankOrbit {
				goal = m.Target
			}
		}
		m.Yaw = vmath.LookYaw(m.Position, m.Target)

		if next, ok := StepToward(p.collider, m.Position, goal, speed); ok {
			m.Position = next
		}

		if vmath.Distance(m.Position, player) < p.cfg.CaptureDistance {
			c.Hits++
			c.Damage += p.cfg.Damage
			c.Sanity += p.cfg.SanityPenalty
		}
	}
	return c
}
