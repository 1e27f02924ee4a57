// Package config loads game tuning from YAML on top of the reference defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/shardmaze/level"
	"github.com/lixenwraith/shardmaze/maze"
	"github.com/lixenwraith/shardmaze/parameter"
	"github.com/lixenwraith/shardmaze/physics"
)

// ErrInvalidConfig marks values outside their accepted range
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full tunable surface; zero sections are never valid, start from Default
type Config struct {
	Maze       MazeConfig       `yaml:"maze"`
	Layout     LayoutConfig     `yaml:"layout"`
	Collision  CollisionConfig  `yaml:"collision"`
	Player     PlayerConfig     `yaml:"player"`
	Pursuit    PursuitConfig    `yaml:"pursuit"`
	Level      LevelConfig      `yaml:"level"`
	Flashlight FlashlightConfig `yaml:"flashlight"`
	Ambience   AmbienceConfig   `yaml:"ambience"`
	Session    SessionConfig    `yaml:"session"`
}

type MazeConfig struct {
	Size           int     `yaml:"size"`
	LoopFactor     float64 `yaml:"loop_factor"`
	ShortcutFactor float64 `yaml:"shortcut_factor"`
}

type LayoutConfig struct {
	Pitch     float64 `yaml:"pitch"`
	Thickness float64 `yaml:"thickness"`
	Length    float64 `yaml:"length"`
	Height    float64 `yaml:"height"`
}

type CollisionConfig struct {
	ArenaRadius float64 `yaml:"arena_radius"`
	Margin      float64 `yaml:"margin"`
	HalfHeight  float64 `yaml:"half_height"`
}

type PlayerConfig struct {
	Speed            float64 `yaml:"speed"`
	EyeHeight        float64 `yaml:"eye_height"`
	MaxHealth        float64 `yaml:"max_health"`
	MaxSanity        float64 `yaml:"max_sanity"`
	SanityLow        float64 `yaml:"sanity_low"`
	InteractDistance float64 `yaml:"interact_distance"`
	PickupDistance   float64 `yaml:"pickup_distance"`
}

type PursuitConfig struct {
	PrimarySpeed    float64       `yaml:"primary_speed"`
	FlankerSpeed    float64       `yaml:"flanker_speed"`
	OrbitRadius     float64       `yaml:"orbit_radius"`
	OrbitRate       float64       `yaml:"orbit_rate"`
	CaptureDistance float64       `yaml:"capture_distance"`
	Damage          float64       `yaml:"damage"`
	SanityPenalty   float64       `yaml:"sanity_penalty"`
	FlankMode       string        `yaml:"flank_mode"`
	SpawnDelay      time.Duration `yaml:"spawn_delay"`
	SpawnHeight     float64       `yaml:"spawn_height"`
	SpawnOffset     float64       `yaml:"spawn_offset"`
}

type LevelConfig struct {
	MaxLevels         int     `yaml:"max_levels"`
	Doors             int     `yaml:"doors"`
	DoorRadius        float64 `yaml:"door_radius"`
	Lockers           int     `yaml:"lockers"`
	LockerRadius      float64 `yaml:"locker_radius"`
	Shards            int     `yaml:"shards"`
	Batteries         int     `yaml:"batteries"`
	CollectibleHeight float64 `yaml:"collectible_height"`
	PlacementRadius   float64 `yaml:"placement_radius"`
	PlacementRetries  int     `yaml:"placement_retries"`
}

type FlashlightConfig struct {
	MaxEnergy      float64 `yaml:"max_energy"`
	DrainPerTick   float64 `yaml:"drain_per_tick"`
	StartBatteries int     `yaml:"start_batteries"`
	Intensity      float64 `yaml:"intensity"`
	ScareIntensity float64 `yaml:"scare_intensity"`
}

// Trigger is a cooldown-gated random roll
type Trigger struct {
	Cooldown time.Duration `yaml:"cooldown"`
	Chance   float64       `yaml:"chance"`
}

type AmbienceConfig struct {
	Enabled bool `yaml:"enabled"`

	Flicker         Trigger       `yaml:"flicker"`
	FlickerDuration time.Duration `yaml:"flicker_duration"`

	JumpScare         Trigger       `yaml:"jump_scare"`
	JumpScareDuration time.Duration `yaml:"jump_scare_duration"`

	Whisper           Trigger  `yaml:"whisper"`
	WhisperSanityCost float64  `yaml:"whisper_sanity_cost"`
	WhisperMessages   []string `yaml:"whisper_messages"`

	Event             Trigger       `yaml:"event"`
	TransientLifetime time.Duration `yaml:"transient_lifetime"`
	TransientDistance float64       `yaml:"transient_distance"`
	EventRoll         time.Duration `yaml:"event_roll"`
	SanityRoll        time.Duration `yaml:"sanity_roll"`
	RollAmplitude     float64       `yaml:"roll_amplitude"`
}

type SessionConfig struct {
	Seed       uint64        `yaml:"seed"` // 0 seeds from the clock
	Tick       time.Duration `yaml:"tick"`
	EventQueue int           `yaml:"event_queue"`
}

// DefaultWhispers are the reference whisper lines
var DefaultWhispers = []string{"Behind you...", "Run...", "They're coming...", "Can't escape..."}

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		Maze: MazeConfig{
			Size:           parameter.MazeSize,
			LoopFactor:     parameter.MazeLoopFactor,
			ShortcutFactor: parameter.MazeShortcutFactor,
		},
		Layout: LayoutConfig{
			Pitch:     parameter.CorridorPitch,
			Thickness: parameter.WallThickness,
			Length:    parameter.WallLength,
			Height:    parameter.WallHeight,
		},
		Collision: CollisionConfig{
			ArenaRadius: parameter.ArenaRadius,
			Margin:      parameter.CollisionMargin,
			HalfHeight:  parameter.CollisionHalfHeight,
		},
		Player: PlayerConfig{
			Speed:            parameter.PlayerSpeed,
			EyeHeight:        parameter.PlayerEyeHeight,
			MaxHealth:        parameter.PlayerMaxHealth,
			MaxSanity:        parameter.PlayerMaxSanity,
			SanityLow:        parameter.SanityLowThreshold,
			InteractDistance: parameter.InteractDistance,
			PickupDistance:   parameter.PickupDistance,
		},
		Pursuit: PursuitConfig{
			PrimarySpeed:    parameter.PrimarySpeed,
			FlankerSpeed:    parameter.FlankerSpeed,
			OrbitRadius:     parameter.FlankOrbitRadius,
			OrbitRate:       parameter.FlankOrbitRate,
			CaptureDistance: parameter.CaptureDistance,
			Damage:          parameter.CaptureDamage,
			SanityPenalty:   parameter.CaptureSanityPenalty,
			FlankMode:       physics.FlankCosmetic.String(),
			SpawnDelay:      parameter.MonsterSpawnDelay,
			SpawnHeight:     parameter.MonsterHeight,
			SpawnOffset:     parameter.MonsterSpawnOffset,
		},
		Level: LevelConfig{
			MaxLevels:         parameter.MaxLevels,
			Doors:             parameter.DoorCount,
			DoorRadius:        parameter.DoorRadius,
			Lockers:           parameter.LockerCount,
			LockerRadius:      parameter.LockerRadius,
			Shards:            parameter.ShardCount,
			Batteries:         parameter.BatteryCount,
			CollectibleHeight: parameter.CollectibleHeight,
			PlacementRadius:   parameter.PlacementRadius,
			PlacementRetries:  parameter.PlacementRetries,
		},
		Flashlight: FlashlightConfig{
			MaxEnergy:      parameter.FlashlightMaxEnergy,
			DrainPerTick:   parameter.FlashlightDrainPerTick,
			StartBatteries: parameter.FlashlightStartBatteries,
			Intensity:      parameter.FlashlightIntensity,
			ScareIntensity: parameter.FlashlightScareIntensity,
		},
		Ambience: AmbienceConfig{
			Enabled:           true,
			Flicker:           Trigger{Cooldown: parameter.FlickerCooldown, Chance: parameter.FlickerChance},
			FlickerDuration:   parameter.FlickerDuration,
			JumpScare:         Trigger{Cooldown: parameter.JumpScareCooldown, Chance: parameter.JumpScareChance},
			JumpScareDuration: parameter.JumpScareDuration,
			Whisper:           Trigger{Cooldown: parameter.WhisperCooldown, Chance: parameter.WhisperChance},
			WhisperSanityCost: parameter.WhisperSanityCost,
			WhisperMessages:   append([]string(nil), DefaultWhispers...),
			Event:             Trigger{Cooldown: parameter.EventCooldown, Chance: parameter.EventChance},
			TransientLifetime: parameter.TransientLifetime,
			TransientDistance: parameter.TransientDistance,
			EventRoll:         parameter.EventRollDuration,
			SanityRoll:        parameter.SanityRollDuration,
			RollAmplitude:     parameter.RollAmplitude,
		},
		Session: SessionConfig{
			Tick:       parameter.TickInterval,
			EventQueue: parameter.EventQueueCapacity,
		},
	}
}

// Load reads path and overlays it onto Default; keys absent from the file keep their defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays YAML bytes onto Default and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate rejects values the core cannot run with
func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		name string
		val  any
	}{
		{c.Maze.Size >= parameter.MazeMinSize, "maze.size", c.Maze.Size},
		{c.Maze.LoopFactor >= 0, "maze.loop_factor", c.Maze.LoopFactor},
		{c.Maze.ShortcutFactor >= 0, "maze.shortcut_factor", c.Maze.ShortcutFactor},
		{c.Layout.Pitch > 0, "layout.pitch", c.Layout.Pitch},
		{c.Layout.Thickness > 0, "layout.thickness", c.Layout.Thickness},
		{c.Layout.Length >= c.Layout.Pitch, "layout.length", c.Layout.Length},
		{c.Layout.Height > 0, "layout.height", c.Layout.Height},
		{c.Collision.ArenaRadius > 0, "collision.arena_radius", c.Collision.ArenaRadius},
		{c.Collision.Margin >= 0, "collision.margin", c.Collision.Margin},
		{c.Collision.HalfHeight >= 0, "collision.half_height", c.Collision.HalfHeight},
		{c.Player.Speed > 0, "player.speed", c.Player.Speed},
		{c.Player.MaxHealth > 0, "player.max_health", c.Player.MaxHealth},
		{c.Player.MaxSanity > 0, "player.max_sanity", c.Player.MaxSanity},
		{c.Player.InteractDistance > 0, "player.interact_distance", c.Player.InteractDistance},
		{c.Player.PickupDistance > 0, "player.pickup_distance", c.Player.PickupDistance},
		{c.Pursuit.PrimarySpeed >= 0, "pursuit.primary_speed", c.Pursuit.PrimarySpeed},
		{c.Pursuit.FlankerSpeed >= 0, "pursuit.flanker_speed", c.Pursuit.FlankerSpeed},
		{c.Pursuit.CaptureDistance > 0, "pursuit.capture_distance", c.Pursuit.CaptureDistance},
		{c.Pursuit.SpawnDelay >= 0, "pursuit.spawn_delay", c.Pursuit.SpawnDelay},
		{c.Level.MaxLevels >= 1, "level.max_levels", c.Level.MaxLevels},
		{c.Level.Doors >= 0, "level.doors", c.Level.Doors},
		{c.Level.Lockers >= 0, "level.lockers", c.Level.Lockers},
		{c.Level.Shards >= 0, "level.shards", c.Level.Shards},
		{c.Level.Batteries >= 0, "level.batteries", c.Level.Batteries},
		{c.Level.PlacementRadius > 0, "level.placement_radius", c.Level.PlacementRadius},
		{c.Level.PlacementRetries >= 1, "level.placement_retries", c.Level.PlacementRetries},
		{c.Flashlight.MaxEnergy > 0, "flashlight.max_energy", c.Flashlight.MaxEnergy},
		{c.Flashlight.DrainPerTick >= 0, "flashlight.drain_per_tick", c.Flashlight.DrainPerTick},
		{c.Flashlight.StartBatteries >= 0, "flashlight.start_batteries", c.Flashlight.StartBatteries},
		{chance(c.Ambience.Flicker.Chance), "ambience.flicker.chance", c.Ambience.Flicker.Chance},
		{chance(c.Ambience.JumpScare.Chance), "ambience.jump_scare.chance", c.Ambience.JumpScare.Chance},
		{chance(c.Ambience.Whisper.Chance), "ambience.whisper.chance", c.Ambience.Whisper.Chance},
		{chance(c.Ambience.Event.Chance), "ambience.event.chance", c.Ambience.Event.Chance},
		{c.Session.Tick > 0, "session.tick", c.Session.Tick},
		{c.Session.EventQueue >= 1, "session.event_queue", c.Session.EventQueue},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, chk.name, chk.val)
		}
	}
	// Spawns snap to cell centers, which must clear both facing walls by the collision margin
	if clearance := c.Layout.Pitch - c.Layout.Thickness; clearance <= 2*c.Collision.Margin {
		return fmt.Errorf("%w: layout.pitch - layout.thickness = %v must exceed 2 * collision.margin = %v",
			ErrInvalidConfig, clearance, 2*c.Collision.Margin)
	}
	if _, err := physics.ParseFlankMode(c.Pursuit.FlankMode); err != nil {
		return fmt.Errorf("%w: pursuit.flank_mode: %v", ErrInvalidConfig, err)
	}
	return nil
}

func chance(p float64) bool {
	return p >= 0 && p <= 1
}

// LevelConfig translates the relevant sections for level generation
func (c *Config) LevelConfig() level.Config {
	return level.Config{
		Maze: maze.Config{
			Size:           c.Maze.Size,
			LoopFactor:     c.Maze.LoopFactor,
			ShortcutFactor: c.Maze.ShortcutFactor,
		},
		Layout: level.Layout{
			Pitch:     c.Layout.Pitch,
			Thickness: c.Layout.Thickness,
			Length:    c.Layout.Length,
			Height:    c.Layout.Height,
		},
		Oracle:            c.OracleConfig(),
		MaxLevels:         c.Level.MaxLevels,
		DoorCount:         c.Level.Doors,
		DoorRadius:        c.Level.DoorRadius,
		LockerCount:       c.Level.Lockers,
		LockerRadius:      c.Level.LockerRadius,
		ShardCount:        c.Level.Shards,
		BatteryCount:      c.Level.Batteries,
		CollectibleHeight: c.Level.CollectibleHeight,
		PlacementRadius:   c.Level.PlacementRadius,
		PlacementRetries:  c.Level.PlacementRetries,
		EyeHeight:         c.Player.EyeHeight,
		MonsterHeight:     c.Pursuit.SpawnHeight,
		MonsterOffset:     c.Pursuit.SpawnOffset,
	}
}

// OracleConfig returns collision bounds
func (c *Config) OracleConfig() physics.OracleConfig {
	return physics.OracleConfig{
		ArenaRadius: c.Collision.ArenaRadius,
		Margin:      c.Collision.Margin,
		HalfHeight:  c.Collision.HalfHeight,
	}
}

// PursuitConfig returns monster behavior; call after Validate
func (c *Config) PursuitConfig() physics.PursuitConfig {
	mode, _ := physics.ParseFlankMode(c.Pursuit.FlankMode)
	return physics.PursuitConfig{
		PrimarySpeed:    c.Pursuit.PrimarySpeed,
		FlankerSpeed:    c.Pursuit.FlankerSpeed,
		OrbitRadius:     c.Pursuit.OrbitRadius,
		OrbitRate:       c.Pursuit.OrbitRate,
		PhaseStep:       parameter.FlankPhaseStep,
		CaptureDistance: c.Pursuit.CaptureDistance,
		Damage:          c.Pursuit.Damage,
		SanityPenalty:   c.Pursuit.SanityPenalty,
		Mode:            mode,
	}
}
