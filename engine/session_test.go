package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/config"
	"github.com/lixenwraith/shardmaze/level"
	"github.com/lixenwraith/shardmaze/physics"
)

func newTestSession(t *testing.T, mutate func(*config.Config)) (*Session, *MockTimeProvider) {
	t.Helper()
	cfg := config.Default()
	cfg.Ambience.Enabled = false
	cfg.Session.Seed = 7
	if mutate != nil {
		mutate(cfg)
	}
	clock := NewMockTimeProvider(epoch)
	s, err := NewSession(cfg, WithClock(clock))
	if err != nil {
		t.Fatalf("Expected session, got %v", err)
	}
	return s, clock
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestNewSessionInitialState(t *testing.T) {
	s, _ := newTestSession(t, nil)
	snap := s.Snapshot()

	if snap.Phase != PhasePlaying || snap.Level != 1 {
		t.Errorf("Expected playing on level 1, got %v level %d", snap.Phase, snap.Level)
	}
	if snap.Player.Position != s.Level().PlayerStart {
		t.Errorf("Expected player at %v, got %v", s.Level().PlayerStart, snap.Player.Position)
	}
	if snap.Player.Health != 100 || snap.Player.Sanity != 100 {
		t.Errorf("Expected full vitals, got health %v sanity %v", snap.Player.Health, snap.Player.Sanity)
	}
	if !snap.Light.On() || snap.Light.Energy != 100 || snap.Light.Batteries != 4 {
		t.Errorf("Expected lit flashlight with 100 energy and 4 batteries, got %+v", snap.Light)
	}
	if snap.ShardsRequired != 250 || snap.ShardsLeft != 250 {
		t.Errorf("Expected 250 shards placed, got %d/%d", snap.ShardsLeft, snap.ShardsRequired)
	}
	if snap.SpawnIn != 60*time.Second {
		t.Errorf("Expected spawn in 60s, got %v", snap.SpawnIn)
	}
	if snap.SessionID != s.ID {
		t.Error("Expected snapshot to carry session id")
	}
}

func TestSessionSeedDeterminism(t *testing.T) {
	a, _ := newTestSession(t, nil)
	b, _ := newTestSession(t, nil)
	if len(a.Level().Walls) != len(b.Level().Walls) {
		t.Fatalf("Expected same wall count for same seed, got %d and %d", len(a.Level().Walls), len(b.Level().Walls))
	}
	for i := range a.Level().Collectibles {
		if a.Level().Collectibles[i].Position != b.Level().Collectibles[i].Position {
			t.Fatalf("Expected identical placement at %d", i)
		}
	}
}

func TestMonstersSpawnAfterDelay(t *testing.T) {
	s, clock := newTestSession(t, nil)

	clock.Advance(59 * time.Second)
	s.Update(Input{})
	if s.Snapshot().MonstersActive || len(s.Snapshot().Monsters) != 0 {
		t.Fatal("Expected no monsters before 60s")
	}

	clock.Advance(time.Second)
	s.Update(Input{})
	snap := s.Snapshot()
	if !snap.MonstersActive || len(snap.Monsters) != 4 {
		t.Fatalf("Expected 4 monsters at 60s, got active=%v count=%d", snap.MonstersActive, len(snap.Monsters))
	}
	if snap.GlobalLight {
		t.Error("Expected ambient light off once monsters arrive")
	}
	if snap.Monsters[0].Role != physics.RolePrimary {
		t.Errorf("Expected first monster primary, got %v", snap.Monsters[0].Role)
	}

	events := s.Events()
	if countEvents(events, EventMonstersSpawned) != 1 {
		t.Error("Expected one spawn event")
	}
	if countEvents(events, EventWhisper) != 1 {
		t.Error("Expected arrival whisper")
	}
}

func TestFlashlightDrainAndToggle(t *testing.T) {
	s, _ := newTestSession(t, nil)

	s.Update(Input{})
	if got, want := s.Snapshot().Light.Energy, 100-s.cfg.Flashlight.DrainPerTick; got != want {
		t.Errorf("Expected energy %v after one tick, got %v", want, got)
	}

	s.Update(Input{ToggleLight: true})
	if s.Snapshot().Light.On() {
		t.Fatal("Expected toggle to switch light off")
	}
	energy := s.Snapshot().Light.Energy
	s.Update(Input{})
	if s.Snapshot().Light.Energy != energy {
		t.Error("Expected no drain while off")
	}

	s.Update(Input{ToggleLight: true})
	if !s.Snapshot().Light.On() {
		t.Error("Expected toggle to switch light back on")
	}
}

func TestFlashlightReloadConsumesBattery(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.light.Energy = s.cfg.Flashlight.DrainPerTick

	s.Update(Input{})
	light := s.Snapshot().Light
	if light.Batteries != 3 {
		t.Errorf("Expected 3 batteries after reload, got %d", light.Batteries)
	}
	if light.Energy != 100 || !light.On() {
		t.Errorf("Expected full lit flashlight after reload, got %+v", light)
	}
	if countEvents(s.Events(), EventFlashlightReload) != 1 {
		t.Error("Expected reload event")
	}
}

func TestFlashlightEmptyWithoutBatteries(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.light.Energy = s.cfg.Flashlight.DrainPerTick
	s.light.Batteries = 0

	s.Update(Input{})
	light := s.Snapshot().Light
	if light.On() || light.Energy != 0 {
		t.Errorf("Expected dark empty flashlight, got %+v", light)
	}
	if countEvents(s.Events(), EventFlashlightEmpty) != 1 {
		t.Error("Expected empty event")
	}

	s.Update(Input{ToggleLight: true})
	if s.Snapshot().Light.On() {
		t.Error("Expected empty flashlight to stay off")
	}
}

func TestMovementBlockedByWalls(t *testing.T) {
	s, _ := newTestSession(t, nil)
	start := s.Snapshot().Player.Position

	// Walk forward long enough to hit a wall or the arena edge
	for i := 0; i < 2000; i++ {
		s.Update(Input{Move: physics.MoveIntent{Forward: 1}})
	}
	pos := s.Snapshot().Player.Position
	if pos == start {
		t.Error("Expected some movement from start")
	}
	if s.Level().Collides(pos) {
		t.Errorf("Expected final position %v to be free", pos)
	}
}

func TestHidingFreezesPursuit(t *testing.T) {
	s, clock := newTestSession(t, nil)
	locker := s.Level().Lockers[0]
	before := locker.Position.Add(mgl64.Vec3{0.5, 0, 0})
	s.player.Position = before

	s.Update(Input{Interact: true})
	snap := s.Snapshot()
	if !snap.Hiding {
		t.Fatal("Expected player hiding after interact near locker")
	}
	if snap.Player.Position != locker.Position {
		t.Errorf("Expected player moved into locker at %v, got %v", locker.Position, snap.Player.Position)
	}

	clock.Advance(60 * time.Second)
	s.Update(Input{})
	frozen := s.Snapshot().Monsters
	if len(frozen) != 4 {
		t.Fatalf("Expected monsters to spawn while hiding, got %d", len(frozen))
	}

	clock.Ticks(10, 16*time.Millisecond, func(time.Time) {
		s.Update(Input{Move: physics.MoveIntent{Forward: 1}})
	})
	snap = s.Snapshot()
	for i, m := range snap.Monsters {
		if m.Position != frozen[i].Position {
			t.Errorf("Expected monster %d frozen at %v, got %v", i, frozen[i].Position, m.Position)
		}
	}
	if snap.Player.Position != locker.Position {
		t.Error("Expected movement ignored while hiding")
	}

	s.Update(Input{Interact: true})
	snap = s.Snapshot()
	if snap.Hiding || snap.Player.Position != before {
		t.Errorf("Expected restore to %v after leaving, got hiding=%v at %v", before, snap.Hiding, snap.Player.Position)
	}
}

func TestCaptureDeductsOneTick(t *testing.T) {
	s, _ := newTestSession(t, nil)
	player := s.player.Position
	s.pursuer.Spawn([]mgl64.Vec3{player.Add(mgl64.Vec3{0, 0, 1.9})})
	s.monstersActive = true

	s.Update(Input{})
	snap := s.Snapshot()
	if snap.Player.Health != 99.5 {
		t.Errorf("Expected health 99.5, got %v", snap.Player.Health)
	}
	if snap.Player.Sanity != 99 {
		t.Errorf("Expected sanity 99, got %v", snap.Player.Sanity)
	}
	if countEvents(s.Events(), EventDamage) != 1 {
		t.Error("Expected one damage event")
	}
	if got := s.Stats().Floats.Get("player.damage_taken").Load(); got != 0.5 {
		t.Errorf("Expected damage_taken 0.5, got %v", got)
	}
	if got := s.Stats().Ints.Get("pursuit.contacts").Load(); got != 1 {
		t.Errorf("Expected 1 contact, got %d", got)
	}
}

func TestCaughtIsTerminal(t *testing.T) {
	s, clock := newTestSession(t, nil)
	fired := false
	s.sched.After(s.now, time.Second, ScopeSession, func() { fired = true })
	s.sched.After(s.now, time.Second, ScopeLevel, func() { fired = true })

	s.player.Health = 0.5
	s.pursuer.Spawn([]mgl64.Vec3{s.player.Position})
	s.monstersActive = true
	s.Update(Input{})

	if s.Phase() != PhaseCaught || s.Snapshot().Phase != PhaseCaught {
		t.Fatalf("Expected caught, got %v", s.Phase())
	}
	if countEvents(s.Events(), EventCaught) != 1 {
		t.Error("Expected caught event")
	}
	if s.sched.Pending() != 0 {
		t.Errorf("Expected all tasks cancelled, got %d pending", s.sched.Pending())
	}

	tick := s.Snapshot().Tick
	clock.Advance(time.Minute)
	s.Update(Input{Move: physics.MoveIntent{Forward: 1}})
	if s.Snapshot().Tick != tick {
		t.Error("Expected update to be a no-op after caught")
	}
	if fired {
		t.Error("Expected no task to fire after game over")
	}
	if err := s.ChangeLevel(2); !errors.Is(err, ErrSessionOver) {
		t.Errorf("Expected ErrSessionOver, got %v", err)
	}
}

func TestChangeLevelValidatesTarget(t *testing.T) {
	s, _ := newTestSession(t, nil)
	lvl := s.Level()

	for _, target := range []int{0, 6, -1} {
		if err := s.ChangeLevel(target); !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("Expected ErrInvalidLevel for %d, got %v", target, err)
		}
	}
	if s.Level() != lvl {
		t.Error("Expected level untouched after invalid target")
	}
}

func TestChangeLevelRebuilds(t *testing.T) {
	s, clock := newTestSession(t, nil)
	old := s.Level()

	clock.Advance(60 * time.Second)
	s.Update(Input{})
	fired := false
	s.sched.After(s.now, time.Second, ScopeLevel, func() { fired = true })
	s.player.Position = old.Collectibles[0].Position

	if err := s.ChangeLevel(3); err != nil {
		t.Fatalf("Expected level change, got %v", err)
	}
	snap := s.Snapshot()
	if s.Level() == old || snap.Level != 3 {
		t.Fatalf("Expected new level 3, got %d", snap.Level)
	}
	if snap.Player.Position != s.Level().PlayerStart {
		t.Errorf("Expected player reset to %v, got %v", s.Level().PlayerStart, snap.Player.Position)
	}
	if snap.MonstersActive || len(snap.Monsters) != 0 {
		t.Error("Expected monsters cleared on level change")
	}
	if snap.SpawnIn != 60*time.Second {
		t.Errorf("Expected spawn timer restarted, got %v", snap.SpawnIn)
	}
	if s.Level().Oracle() == old.Oracle() {
		t.Error("Expected a fresh oracle")
	}

	clock.Advance(2 * time.Second)
	s.Update(Input{})
	if fired {
		t.Error("Expected level task cancelled on teardown")
	}
	if countEvents(s.Events(), EventLevelChange) != 1 {
		t.Error("Expected level change event")
	}
}

func TestDoorChangesLevel(t *testing.T) {
	s, _ := newTestSession(t, nil)
	door := s.Level().Doors[0]
	old := s.Level()
	s.player.Position = door.Position
	s.refresh()
	if s.Snapshot().Prompt != "Press E to use door" {
		t.Errorf("Expected door prompt, got %q", s.Snapshot().Prompt)
	}

	s.Update(Input{Interact: true})
	if s.Level() == old {
		t.Fatal("Expected door to rebuild the level")
	}
	if s.Level().Number != door.Target {
		t.Errorf("Expected level %d, got %d", door.Target, s.Level().Number)
	}
}

func TestPickups(t *testing.T) {
	s, _ := newTestSession(t, nil)

	var shard, battery *level.Collectible
	for i := range s.Level().Collectibles {
		c := &s.Level().Collectibles[i]
		if c.Kind == level.Shard && shard == nil {
			shard = c
		}
		if c.Kind == level.Battery && battery == nil {
			battery = c
		}
	}

	s.player.Position = shard.Position
	s.Update(Input{})
	if !shard.Collected {
		t.Fatal("Expected shard collected within pickup range")
	}
	snap := s.Snapshot()
	if snap.Shards < 1 || snap.ShardsLeft != snap.ShardsRequired-snap.Shards {
		t.Errorf("Expected shard tally consistent, got %d collected %d left of %d", snap.Shards, snap.ShardsLeft, snap.ShardsRequired)
	}

	batteries := s.light.Batteries
	s.player.Position = battery.Position
	s.Update(Input{})
	if !battery.Collected || s.light.Batteries < batteries+1 {
		t.Errorf("Expected battery collected, have %d", s.light.Batteries)
	}
	if countEvents(s.Events(), EventBattery) < 1 {
		t.Error("Expected battery event")
	}
}

func TestWhisperCostsSanity(t *testing.T) {
	s, clock := newTestSession(t, func(c *config.Config) {
		c.Ambience.Enabled = true
		c.Ambience.Flicker.Chance = 0
		c.Ambience.JumpScare.Chance = 0
		c.Ambience.Event.Chance = 0
		c.Ambience.Whisper.Chance = 1
	})

	clock.Advance(time.Millisecond)
	s.Update(Input{})
	if got := s.Snapshot().Player.Sanity; got != 95 {
		t.Errorf("Expected sanity 95 after whisper, got %v", got)
	}
	events := s.Events()
	if countEvents(events, EventWhisper) != 1 {
		t.Fatal("Expected one whisper")
	}

	// Cooldown holds the next whisper back
	s.Update(Input{})
	if countEvents(s.Events(), EventWhisper) != 0 {
		t.Error("Expected whisper cooldown")
	}
}

func TestFlickerRestores(t *testing.T) {
	s, clock := newTestSession(t, func(c *config.Config) {
		c.Ambience.Enabled = true
		c.Ambience.JumpScare.Chance = 0
		c.Ambience.Whisper.Chance = 0
		c.Ambience.Event.Chance = 0
		c.Ambience.Flicker.Chance = 1
		c.Ambience.Flicker.Cooldown = time.Hour
	})

	clock.Advance(time.Millisecond)
	s.Update(Input{})
	if s.Snapshot().Light.On() {
		t.Fatal("Expected flicker to cut the light")
	}

	clock.Advance(100 * time.Millisecond)
	s.Update(Input{})
	if !s.Snapshot().Light.On() {
		t.Error("Expected light restored after flicker")
	}
}

func TestTransientMonsterExpires(t *testing.T) {
	s, clock := newTestSession(t, nil)

	for i := 0; i < 100 && s.pursuer.Count() == 0; i++ {
		s.amb.spawnTransient(s)
	}
	if s.pursuer.Count() != 1 {
		t.Fatalf("Expected one transient monster, got %d", s.pursuer.Count())
	}
	m := s.pursuer.Monsters()[0]
	if !m.Transient || s.Level().Collides(m.Position) {
		t.Errorf("Expected free transient monster, got %+v", m)
	}

	clock.Advance(4 * time.Second)
	s.Update(Input{})
	if s.pursuer.Count() != 1 {
		t.Error("Expected transient monster alive before its lifetime")
	}

	clock.Advance(time.Second)
	s.Update(Input{})
	if s.pursuer.Count() != 0 {
		t.Error("Expected transient monster removed after 5s")
	}
}

func TestLowSanityRollsView(t *testing.T) {
	s, clock := newTestSession(t, nil)
	s.player.Sanity = 30

	s.decreaseSanity(1)
	if s.player.Sanity != 29 {
		t.Errorf("Expected sanity 29, got %v", s.player.Sanity)
	}
	if s.sched.Pending() != 1 {
		t.Fatalf("Expected a roll reset task, got %d", s.sched.Pending())
	}

	clock.Advance(time.Second)
	s.Update(Input{})
	if s.Snapshot().Player.Roll != 0 {
		t.Errorf("Expected roll reset after 1s, got %v", s.Snapshot().Player.Roll)
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Level.MaxLevels = 0
	if _, err := NewSession(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewSessionPlacementFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Level.PlacementRadius = 1e6
	cfg.Level.PlacementRetries = 1
	_, err := NewSession(cfg, WithSeed(3))
	if !errors.Is(err, level.ErrPlacementExhausted) {
		t.Errorf("Expected ErrPlacementExhausted, got %v", err)
	}
}

func TestSessionPublishesStats(t *testing.T) {
	s, clock := newTestSession(t, nil)
	s.Update(Input{})
	clock.Advance(time.Second)
	s.Update(Input{})

	stats := s.Stats()
	if got := stats.Ints.Get("session.ticks").Load(); got != 2 {
		t.Errorf("Expected 2 ticks, got %d", got)
	}
	if got := stats.Ints.Get("level.current").Load(); got != 1 {
		t.Errorf("Expected level 1, got %d", got)
	}
	if got := stats.Floats.Get("light.energy").Load(); got != s.Snapshot().Light.Energy {
		t.Errorf("Expected energy %v, got %v", s.Snapshot().Light.Energy, got)
	}

	if err := s.ChangeLevel(2); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}
	if got := stats.Ints.Get("level.changes").Load(); got != 1 {
		t.Errorf("Expected 1 level change, got %d", got)
	}
}
