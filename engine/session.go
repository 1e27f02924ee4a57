package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/shardmaze/config"
	"github.com/lixenwraith/shardmaze/level"
	"github.com/lixenwraith/shardmaze/physics"
	"github.com/lixenwraith/shardmaze/status"
	"github.com/lixenwraith/shardmaze/vmath"
)

var (
	// ErrInvalidLevel reports a level number outside 1..MaxLevels
	ErrInvalidLevel = errors.New("invalid level")
	// ErrSessionOver reports an operation on a caught session
	ErrSessionOver = errors.New("session over")
)

// Phase is the session lifecycle state
type Phase uint8

const (
	PhasePlaying Phase = iota
	// PhaseCaught is terminal, Update becomes a no-op
	PhaseCaught
)

func (p Phase) String() string {
	if p == PhaseCaught {
		return "caught"
	}
	return "playing"
}

// Input is one tick of player intent
type Input struct {
	Move        physics.MoveIntent
	Turn        float64 // yaw delta in radians, positive turns left
	Interact    bool
	ToggleLight bool
}

// Player is the first-person actor; Position is the eye
type Player struct {
	Position mgl64.Vec3
	Yaw      float64
	Roll     float64 // view tilt from low sanity and ambience
	Health   float64
	Sanity   float64
}

// Flashlight state; Intensity 0 means off
type Flashlight struct {
	Intensity float64
	Energy    float64
	Batteries int
}

// On reports whether the light is lit
func (f Flashlight) On() bool {
	return f.Intensity > 0
}

// Option customizes a session at construction
type Option func(*Session)

// WithLogger sets the structured logger, default is disabled
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithClock sets the time source, default is the monotonic system clock
func WithClock(c TimeProvider) Option {
	return func(s *Session) { s.clock = c }
}

// WithSeed overrides the configured seed
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithRegistry publishes session counters into r, default is a private registry
func WithRegistry(r *status.Registry) Option {
	return func(s *Session) { s.stats = r }
}

// Session owns one playthrough: the current level, player, monsters and timers
// All mutation happens inside Update and ChangeLevel on a single goroutine
type Session struct {
	ID uuid.UUID

	cfg      *config.Config
	levelCfg level.Config
	log      zerolog.Logger
	clock    TimeProvider
	seed     uint64
	rng      *rand.Rand

	sched   *Scheduler
	queue   *EventQueue
	nav     *physics.Navigator
	pursuer *physics.Pursuer
	amb     *ambience
	stats   *status.Registry
	metrics sessionMetrics

	start      time.Time
	now        time.Duration
	levelStart time.Duration
	tick       uint64
	phase      Phase

	lvl            *level.Level
	player         Player
	light          Flashlight
	hiding         bool
	hideReturn     mgl64.Vec3
	monstersActive bool
	globalLight    bool
	shards         int

	snap Snapshot
}

// NewSession validates cfg, builds level 1 and places the player at its start
func NewSession(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:          uuid.New(),
		cfg:         cfg,
		levelCfg:    cfg.LevelConfig(),
		log:         zerolog.Nop(),
		clock:       NewMonotonicTimeProvider(),
		seed:        cfg.Session.Seed,
		sched:       NewScheduler(),
		queue:       NewEventQueue(cfg.Session.EventQueue),
		globalLight: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stats == nil {
		s.stats = status.NewRegistry()
	}
	s.metrics = newSessionMetrics(s.stats)

	s.start = s.clock.Now()
	if s.seed == 0 {
		s.seed = uint64(s.start.UnixNano())
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	s.log = s.log.With().Str("session", s.ID.String()).Logger()

	s.nav = physics.NewNavigator(nil, cfg.Player.Speed)
	s.pursuer = physics.NewPursuer(cfg.PursuitConfig(), nil)
	s.amb = newAmbience(cfg.Ambience)

	s.player = Player{Health: cfg.Player.MaxHealth, Sanity: cfg.Player.MaxSanity}
	s.light = Flashlight{
		Intensity: cfg.Flashlight.Intensity,
		Energy:    cfg.Flashlight.MaxEnergy,
		Batteries: cfg.Flashlight.StartBatteries,
	}

	lvl, err := s.buildLevel(1)
	if err != nil {
		return nil, err
	}
	s.enterLevel(lvl)
	s.log.Info().Uint64("seed", s.seed).Msg("session started")
	s.refresh()
	return s, nil
}

// Update runs one tick: timers, spawn, flashlight, movement, pursuit, pickup, ambience, snapshot
func (s *Session) Update(in Input) {
	if s.phase == PhaseCaught {
		return
	}
	s.tick++
	s.now = s.clock.Now().Sub(s.start)
	s.metrics.ticks.Add(1)

	s.metrics.tasks.Add(int64(s.sched.RunDue(s.now)))
	s.checkSpawn()
	s.drainLight()
	s.handleInput(in)

	if s.monstersActive && !s.hiding {
		s.applyContact(s.pursuer.Step(s.player.Position, s.now))
		if s.phase == PhaseCaught {
			s.refresh()
			return
		}
	}

	s.collect()
	if s.cfg.Ambience.Enabled {
		s.amb.update(s)
	}
	s.refresh()
}

// ChangeLevel tears down the current level and builds target
// On any error the current level is left untouched
func (s *Session) ChangeLevel(target int) error {
	if s.phase == PhaseCaught {
		return ErrSessionOver
	}
	if target < 1 || target > s.cfg.Level.MaxLevels {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidLevel, target, s.cfg.Level.MaxLevels)
	}

	s.now = s.clock.Now().Sub(s.start)
	lvl, err := s.buildLevel(target)
	if err != nil {
		return err
	}

	from := s.lvl.Number
	cancelled := s.sched.CancelScope(ScopeLevel)
	s.pursuer.Clear()
	s.monstersActive = false
	s.hiding = false
	s.enterLevel(lvl)

	s.metrics.levels.Add(1)
	s.log.Info().Int("from", from).Int("level", target).Int("cancelled", cancelled).Msg("level changed")
	s.emit(Event{Type: EventLevelChange, Value: float64(target)})
	s.whisper(fmt.Sprintf("Level %d", target))
	s.refresh()
	return nil
}

// Events drains notifications queued since the last call
func (s *Session) Events() []Event {
	return s.queue.Drain()
}

// Snapshot returns the state as of the last update
func (s *Session) Snapshot() Snapshot {
	return s.snap
}

// Phase returns the lifecycle state
func (s *Session) Phase() Phase {
	return s.phase
}

// Level returns the current level, read-only for callers
func (s *Session) Level() *level.Level {
	return s.lvl
}

// Stats returns the registry the session publishes counters into
func (s *Session) Stats() *status.Registry {
	return s.stats
}

// Seed returns the effective random seed
func (s *Session) Seed() uint64 {
	return s.seed
}

func (s *Session) buildLevel(number int) (*level.Level, error) {
	_, lvl, err := level.Generate(s.levelCfg, number, s.rng)
	if err != nil {
		s.log.Error().Err(err).Int("level", number).Msg("level generation failed")
		return nil, fmt.Errorf("build level %d: %w", number, err)
	}
	return lvl, nil
}

func (s *Session) enterLevel(lvl *level.Level) {
	s.lvl = lvl
	s.nav.SetCollider(lvl.Oracle())
	s.pursuer.SetCollider(lvl.Oracle())
	s.player.Position = lvl.PlayerStart
	s.levelStart = s.now
	s.globalLight = true

	s.log.Info().
		Int("level", lvl.Number).
		Int("walls", len(lvl.Walls)).
		Int("shards", lvl.Total(level.Shard)).
		Int("doors", len(lvl.Doors)).
		Msg("level generated")
}

func (s *Session) checkSpawn() {
	if s.monstersActive || s.now-s.levelStart < s.cfg.Pursuit.SpawnDelay {
		return
	}
	s.pursuer.Spawn(s.lvl.MonsterSpawns)
	s.monstersActive = true
	s.globalLight = false
	if s.light.Energy > 0 {
		s.light.Intensity = s.cfg.Flashlight.Intensity
	}

	s.log.Info().Int("level", s.lvl.Number).Int("monsters", s.pursuer.Count()).Msg("monsters spawned")
	s.emit(Event{Type: EventMonstersSpawned, Value: float64(s.pursuer.Count())})
	s.whisper("They're here...")
}

func (s *Session) drainLight() {
	if !s.light.On() {
		return
	}
	s.light.Energy = math.Max(0, s.light.Energy-s.cfg.Flashlight.DrainPerTick)
	if s.light.Energy == 0 {
		s.toggleLight()
	}
}

// toggleLight reloads from a spare battery when empty, otherwise flips on/off
func (s *Session) toggleLight() {
	switch {
	case s.light.Energy <= 0 && s.light.Batteries > 0:
		s.light.Intensity = s.cfg.Flashlight.Intensity
		s.light.Energy = s.cfg.Flashlight.MaxEnergy
		s.light.Batteries--
		s.emit(Event{Type: EventFlashlightReload, Value: float64(s.light.Batteries)})
	case s.light.Energy <= 0:
		s.light.Intensity = 0
		s.emit(Event{Type: EventFlashlightEmpty})
	case s.light.On():
		s.light.Intensity = 0
	default:
		s.light.Intensity = s.cfg.Flashlight.Intensity
	}
}

func (s *Session) handleInput(in Input) {
	s.player.Yaw = math.Remainder(s.player.Yaw+in.Turn, 2*math.Pi)
	if !s.hiding {
		s.player.Position, _ = s.nav.Move(s.player.Position, in.Move, s.player.Yaw)
	}
	if in.ToggleLight {
		s.toggleLight()
	}
	if in.Interact {
		s.interact()
	}
}

// interact uses a door in reach, otherwise enters or leaves a locker
func (s *Session) interact() {
	reach := s.cfg.Player.InteractDistance
	if s.hiding {
		s.hiding = false
		s.player.Position = s.hideReturn
		s.emit(Event{Type: EventUnhide})
		return
	}

	if i := nearest(s.player.Position, reach, len(s.lvl.Doors), func(i int) mgl64.Vec3 { return s.lvl.Doors[i].Position }); i >= 0 {
		if err := s.ChangeLevel(s.lvl.Doors[i].Target); err != nil {
			s.log.Warn().Err(err).Int("level", s.lvl.Number).Msg("door failed")
		}
		return
	}

	if i := nearest(s.player.Position, reach, len(s.lvl.Lockers), func(i int) mgl64.Vec3 { return s.lvl.Lockers[i].Position }); i >= 0 {
		locker := s.lvl.Lockers[i]
		s.hiding = true
		s.hideReturn = s.player.Position
		s.player.Position = locker.Position
		s.player.Yaw = locker.Yaw
		s.emit(Event{Type: EventHide})
	}
}

// nearest returns the index of the closest of n points strictly within reach, or -1
func nearest(from mgl64.Vec3, reach float64, n int, at func(int) mgl64.Vec3) int {
	best, bestDist := -1, reach
	for i := 0; i < n; i++ {
		if d := vmath.Distance(from, at(i)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (s *Session) applyContact(c physics.Contact) {
	if c.Hits == 0 {
		return
	}
	s.metrics.contacts.Add(int64(c.Hits))
	s.metrics.damage.Add(c.Damage)
	s.metrics.peakHit.Max(c.Damage)
	s.player.Health -= c.Damage
	s.decreaseSanity(c.Sanity)
	s.emit(Event{Type: EventDamage, Value: c.Damage})

	if s.player.Health <= 0 {
		s.player.Health = 0
		s.gameOver()
	}
}

func (s *Session) decreaseSanity(amount float64) {
	s.player.Sanity = math.Max(0, s.player.Sanity-amount)
	if s.player.Sanity < s.cfg.Player.SanityLow {
		s.rollView(s.cfg.Ambience.SanityRoll)
	}
}

// rollView tilts the camera randomly and schedules the reset
func (s *Session) rollView(d time.Duration) {
	s.player.Roll = (s.rng.Float64() - 0.5) * s.cfg.Ambience.RollAmplitude
	s.sched.After(s.now, d, ScopeSession, func() { s.player.Roll = 0 })
}

func (s *Session) gameOver() {
	s.phase = PhaseCaught
	cancelled := s.sched.CancelAll()
	s.pursuer.Clear()
	s.monstersActive = false

	s.log.Info().
		Int("level", s.lvl.Number).
		Int("shards", s.shards).
		Dur("elapsed", s.now).
		Int("cancelled", cancelled).
		Msg("player caught")
	s.emit(Event{Type: EventCaught})
}

func (s *Session) collect() {
	reach := s.cfg.Player.PickupDistance
	for i := range s.lvl.Collectibles {
		c := &s.lvl.Collectibles[i]
		if c.Collected || vmath.Distance(c.Position, s.player.Position) >= reach {
			continue
		}
		c.Collected = true

		switch c.Kind {
		case level.Shard:
			s.shards++
			s.emit(Event{Type: EventShard, Value: float64(s.shards)})
			if s.lvl.Remaining(level.Shard) == 0 {
				s.log.Info().Int("level", s.lvl.Number).Int("shards", s.shards).Msg("all shards collected")
				s.emit(Event{Type: EventAllShards, Value: float64(s.shards)})
			}
		case level.Battery:
			s.light.Batteries++
			s.emit(Event{Type: EventBattery, Value: float64(s.light.Batteries)})
		}
	}
}

func (s *Session) whisper(text string) {
	s.emit(Event{Type: EventWhisper, Text: text})
}

func (s *Session) emit(e Event) {
	e.Tick = s.tick
	e.At = s.now
	if e.Level == 0 && s.lvl != nil {
		e.Level = s.lvl.Number
	}
	s.queue.Push(e)
}
