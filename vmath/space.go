package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis; yaw rotates about it
var Up = mgl64.Vec3{0, 1, 0}

// HorizontalLen returns the XZ-plane distance from origin
func HorizontalLen(v mgl64.Vec3) float64 {
	return math.Hypot(v[0], v[2])
}

// Distance returns the 3D distance between two points
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Normalize returns the unit vector, zero vector stays zero
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// YawRotate rotates v about +Y by yaw radians (right-handed)
func YawRotate(v mgl64.Vec3, yaw float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(yaw).Mul3x1(v)
}

// Forward is the facing direction for yaw; yaw 0 faces -Z
func Forward(yaw float64) mgl64.Vec3 {
	return YawRotate(mgl64.Vec3{0, 0, -1}, yaw)
}

// LookYaw returns the yaw that makes Forward point from 'from' toward 'to' on the XZ plane
// Coincident points keep yaw 0
func LookYaw(from, to mgl64.Vec3) float64 {
	dx, dz := to[0]-from[0], to[2]-from[2]
	if dx == 0 && dz == 0 {
		return 0
	}
	return math.Atan2(-dx, -dz)
}

// OnCircle returns center offset by radius along angle theta in the XZ plane, keeping center height
func OnCircle(center mgl64.Vec3, radius, theta float64) mgl64.Vec3 {
	sin, cos := math.Sincos(theta)
	return mgl64.Vec3{center[0] + cos*radius, center[1], center[2] + sin*radius}
}
