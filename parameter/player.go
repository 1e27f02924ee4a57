package parameter

// Player movement and vitals
const (
	// PlayerSpeed is world units per tick
	PlayerSpeed = 0.2

	// PlayerEyeHeight is the camera height above the floor
	PlayerEyeHeight = 1.6

	PlayerMaxHealth = 100.0
	PlayerMaxSanity = 100.0

	// SanityLowThreshold triggers the view roll effect when sanity drops below it
	SanityLowThreshold = 30.0

	// InteractDistance is the reach for doors and lockers
	InteractDistance = 2.0
)

// Flashlight
const (
	FlashlightMaxEnergy = 100.0

	// FlashlightDrainPerTick is energy lost per tick while the light is on
	FlashlightDrainPerTick = 0.001 / 3

	FlashlightIntensity      = 2.0
	FlashlightScareIntensity = 5.0

	// FlashlightStartBatteries is the spare battery count at session start
	FlashlightStartBatteries = 4
)
