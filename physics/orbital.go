package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/vmath"
)

// FlankTarget returns the point on the ring around center that flanker index occupies at elapsed
// Angle = elapsed(s) * rate + index * phaseStep, so flankers rotate as a spaced formation
func FlankTarget(center mgl64.Vec3, radius, rate, phaseStep float64, elapsed time.Duration, index int) mgl64.Vec3 {
	theta := elapsed.Seconds()*rate + float64(index)*phaseStep
	return vmath.OnCircle(center, radius, theta)
}
