package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/vmath"
)

// StepToward advances pos by speed along the straight line to target
// Returns pos unchanged and false when coincident with target or when the collider rejects the step
func StepToward(c Collider, pos, target mgl64.Vec3, speed float64) (mgl64.Vec3, bool) {
	dir := vmath.Normalize(target.Sub(pos))
	if dir == (mgl64.Vec3{}) {
		return pos, false
	}
	candidate := pos.Add(dir.Mul(speed))
	if c.Collides(candidate) {
		return pos, false
	}
	return candidate, true
}
