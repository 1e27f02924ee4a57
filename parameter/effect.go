package parameter

import "time"

// Ambience events, all probabilities are per tick once the cooldown has elapsed
const (
	FlickerCooldown    = 10 * time.Second
	FlickerChance      = 0.01
	FlickerDuration    = 100 * time.Millisecond
	JumpScareCooldown  = 30 * time.Second
	JumpScareChance    = 0.001
	JumpScareDuration  = 100 * time.Millisecond
	WhisperCooldown    = 15 * time.Second
	WhisperChance      = 0.005
	WhisperSanityCost  = 5.0
	EventCooldown      = 20 * time.Second
	EventChance        = 0.01
	TransientLifetime  = 5 * time.Second
	TransientDistance  = 10.0
	EventRollDuration  = 2 * time.Second
	SanityRollDuration = time.Second
	RollAmplitude      = 0.1
)
