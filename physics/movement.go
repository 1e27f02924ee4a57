package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/vmath"
)

// MoveIntent holds at most two orthogonal axis requests relative to facing
// Forward: +1 forward, -1 back. Right: +1 right, -1 left
type MoveIntent struct {
	Forward int
	Right   int
}

// IntentFrom folds held movement keys into an intent, opposing keys cancel
func IntentFrom(forward, back, left, right bool) MoveIntent {
	var in MoveIntent
	if forward {
		in.Forward++
	}
	if back {
		in.Forward--
	}
	if right {
		in.Right++
	}
	if left {
		in.Right--
	}
	return in
}

// Idle reports whether no axis is active
func (in MoveIntent) Idle() bool {
	return in.Forward == 0 && in.Right == 0
}

// Navigator resolves player movement through a collider
type Navigator struct {
	collider Collider
	speed    float64
}

// NewNavigator creates a navigator moving speed units per tick
func NewNavigator(c Collider, speed float64) *Navigator {
	return &Navigator{collider: c, speed: speed}
}

// SetCollider swaps the wall set, used on level change
func (n *Navigator) SetCollider(c Collider) {
	n.collider = c
}

// MoveDelta converts an intent into a world-space step for the given yaw
// Diagonals are normalized so every direction moves exactly speed units
func (n *Navigator) MoveDelta(in MoveIntent, yaw float64) mgl64.Vec3 {
	if in.Idle() {
		return mgl64.Vec3{}
	}
	local := vmath.Normalize(mgl64.Vec3{float64(in.Right), 0, -float64(in.Forward)})
	return vmath.YawRotate(local, yaw).Mul(n.speed)
}

// TryMove returns current+delta when the collider accepts it, otherwise current unchanged
// A blocked move is rejected whole, there is no sliding along the free axis
func (n *Navigator) TryMove(current, delta mgl64.Vec3) (mgl64.Vec3, bool) {
	candidate := current.Add(delta)
	if n.collider.Collides(candidate) {
		return current, false
	}
	return candidate, true
}

// Move is MoveDelta followed by TryMove
func (n *Navigator) Move(current mgl64.Vec3, in MoveIntent, yaw float64) (mgl64.Vec3, bool) {
	if in.Idle() {
		return current, false
	}
	return n.TryMove(current, n.MoveDelta(in, yaw))
}
