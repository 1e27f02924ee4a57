package parameter

// Level population
const (
	// MaxLevels bounds door targets to 1..MaxLevels
	MaxLevels = 5

	DoorCount  = 20
	DoorRadius = 45.0

	LockerCount  = 15
	LockerRadius = 35.0
)
