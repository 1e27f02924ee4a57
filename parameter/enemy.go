package parameter

import (
	"math"
	"time"
)

// Pursuit
const (
	// PrimarySpeed is the direct chaser's step per tick
	PrimarySpeed = 0.06

	// FlankerSpeed is every other monster's step per tick
	FlankerSpeed = 0.05

	// FlankOrbitRadius is the ring radius flankers face around the player
	FlankOrbitRadius = 10.0

	// FlankOrbitRate is orbit angular speed in radians per second
	FlankOrbitRate = 1.0

	// FlankPhaseStep separates flankers around the ring
	FlankPhaseStep = math.Pi / 2

	// CaptureDistance is the contact range for damage
	CaptureDistance = 2.0

	// CaptureDamage is health lost per tick per monster in contact
	CaptureDamage = 0.5

	// CaptureSanityPenalty is sanity lost per tick per monster in contact
	CaptureSanityPenalty = 1.0

	// MonsterHeight is the spawn elevation of monster centers
	MonsterHeight = 2.0

	// MonsterSpawnDelay is session time on a level before monsters appear
	MonsterSpawnDelay = 60 * time.Second

	// MonsterSpawnOffset places the four monsters on the (±x, ±z) diagonals
	MonsterSpawnOffset = 15.0
)
