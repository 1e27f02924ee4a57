package engine

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/config"
)

// trigger fires at most once per cooldown, with a per-tick chance once armed
type trigger struct {
	config.Trigger
	last time.Duration
}

func newTrigger(t config.Trigger) trigger {
	// Armed from the first tick
	return trigger{Trigger: t, last: -t.Cooldown}
}

func (t *trigger) roll(now time.Duration, s *Session) bool {
	if now-t.last <= t.Cooldown || s.rng.Float64() >= t.Chance {
		return false
	}
	t.last = now
	return true
}

// ambience drives random atmosphere: light flicker, jump scares, whispers, transient monsters, view roll
type ambience struct {
	cfg       config.AmbienceConfig
	flicker   trigger
	jumpScare trigger
	whisper   trigger
	event     trigger
}

func newAmbience(cfg config.AmbienceConfig) *ambience {
	return &ambience{
		cfg:       cfg,
		flicker:   newTrigger(cfg.Flicker),
		jumpScare: newTrigger(cfg.JumpScare),
		whisper:   newTrigger(cfg.Whisper),
		event:     newTrigger(cfg.Event),
	}
}

func (a *ambience) update(s *Session) {
	now := s.now

	if a.flicker.roll(now, s) {
		a.invertLight(s)
		s.emit(Event{Type: EventFlicker})
		s.sched.After(now, a.cfg.FlickerDuration, ScopeSession, func() { a.invertLight(s) })
	}

	if a.jumpScare.roll(now, s) {
		s.light.Intensity = s.cfg.Flashlight.ScareIntensity
		s.emit(Event{Type: EventJumpScare})
		s.sched.After(now, a.cfg.JumpScareDuration, ScopeSession, func() {
			s.light.Intensity = s.cfg.Flashlight.Intensity
		})
	}

	if a.whisper.roll(now, s) && len(a.cfg.WhisperMessages) > 0 {
		s.whisper(a.cfg.WhisperMessages[s.rng.IntN(len(a.cfg.WhisperMessages))])
		s.decreaseSanity(a.cfg.WhisperSanityCost)
	}

	if a.event.roll(now, s) {
		switch r := s.rng.Float64(); {
		case r < 0.3:
			a.spawnTransient(s)
		case r < 0.6:
			s.rollView(a.cfg.EventRoll)
		}
	}
}

func (a *ambience) invertLight(s *Session) {
	if s.light.On() {
		s.light.Intensity = 0
	} else {
		s.light.Intensity = s.cfg.Flashlight.Intensity
	}
}

// spawnTransient drops a short-lived flanker on a ring around the player
// A spot inside a wall is skipped rather than retried
func (a *ambience) spawnTransient(s *Session) {
	sin, cos := math.Sincos(s.rng.Float64() * 2 * math.Pi)
	d := a.cfg.TransientDistance
	pos := mgl64.Vec3{
		s.player.Position[0] + cos*d,
		s.cfg.Pursuit.SpawnHeight,
		s.player.Position[2] + sin*d,
	}
	if s.lvl.Collides(pos) {
		return
	}

	expires := s.now + a.cfg.TransientLifetime
	s.pursuer.SpawnTransient(pos, expires)
	s.emit(Event{Type: EventTransientMonster})
	s.sched.After(s.now, a.cfg.TransientLifetime, ScopeLevel, func() { s.pursuer.Expire(s.now) })
}
