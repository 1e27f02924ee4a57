package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/parameter"
	"github.com/lixenwraith/shardmaze/vmath"
)

// Collider answers whether an entity centered at p would be blocked
type Collider interface {
	Collides(p mgl64.Vec3) bool
}

// OracleConfig defines the entity query volume and the arena backstop
type OracleConfig struct {
	ArenaRadius float64 // Max horizontal distance from origin
	Margin      float64 // Horizontal half-width of the query box
	HalfHeight  float64 // Vertical half-height of the query box
}

// DefaultOracleConfig returns human-scale reference bounds
func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		ArenaRadius: parameter.ArenaRadius,
		Margin:      parameter.CollisionMargin,
		HalfHeight:  parameter.CollisionHalfHeight,
	}
}

// Oracle tests positions against a fixed set of wall boxes
// Read-only after construction, safe to share between navigation and pursuit
type Oracle struct {
	cfg   OracleConfig
	half  mgl64.Vec3
	boxes []vmath.AABB
}

// NewOracle copies boxes; later changes to the caller's slice are not observed
func NewOracle(cfg OracleConfig, boxes []vmath.AABB) *Oracle {
	owned := make([]vmath.AABB, len(boxes))
	copy(owned, boxes)
	return &Oracle{
		cfg:   cfg,
		half:  mgl64.Vec3{cfg.Margin, cfg.HalfHeight, cfg.Margin},
		boxes: owned,
	}
}

// Collides reports true outside the arena radius or on any wall overlap, touching included
// Linear scan, short-circuits on first hit
func (o *Oracle) Collides(p mgl64.Vec3) bool {
	if vmath.HorizontalLen(p) > o.cfg.ArenaRadius {
		return true
	}
	q := o.QueryBox(p)
	for i := range o.boxes {
		if q.Intersects(o.boxes[i]) {
			return true
		}
	}
	return false
}

// QueryBox returns the entity volume tested for p
func (o *Oracle) QueryBox(p mgl64.Vec3) vmath.AABB {
	return vmath.BoxAround(p, o.half)
}

// Config returns the oracle's bounds
func (o *Oracle) Config() OracleConfig {
	return o.cfg
}

// WallCount returns the number of boxes tested per query
func (o *Oracle) WallCount() int {
	return len(o.boxes)
}

// BlockedXZ reports whether a bare point on the floor plane lies within any wall footprint
// Used by top-down rasterizers, ignores the query volume and arena radius
func (o *Oracle) BlockedXZ(x, z float64) bool {
	for i := range o.boxes {
		if o.boxes[i].ContainsXZ(x, z) {
			return true
		}
	}
	return false
}
