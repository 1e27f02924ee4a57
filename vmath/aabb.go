package vmath

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned box in world space
type AABB struct {
	Min, Max mgl64.Vec3
}

// BoxAround builds a box from a center and per-axis half extents
func BoxAround(center, half mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the box midpoint
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns half the box size on each axis
func (b AABB) HalfExtents() mgl64.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Intersects reports overlap, bounds inclusive: boxes sharing a face intersect
func (b AABB) Intersects(o AABB) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

// Contains reports whether p lies inside or on the box
func (b AABB) Contains(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// ContainsXZ ignores the vertical axis, used by top-down rasterizers
func (b AABB) ContainsXZ(x, z float64) bool {
	return x >= b.Min[0] && x <= b.Max[0] && z >= b.Min[2] && z <= b.Max[2]
}
