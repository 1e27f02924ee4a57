package level

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/maze"
	"github.com/lixenwraith/shardmaze/parameter"
	"github.com/lixenwraith/shardmaze/physics"
)

// Door carries the player to another level
type Door struct {
	Position mgl64.Vec3
	Yaw      float64
	Target   int // 1..MaxLevels
}

// Locker is a hiding spot
type Locker struct {
	Position mgl64.Vec3
	Yaw      float64
}

// CollectibleKind identifies pickup types
type CollectibleKind uint8

const (
	Shard CollectibleKind = iota
	Battery
)

func (k CollectibleKind) String() string {
	if k == Battery {
		return "battery"
	}
	return "shard"
}

// Collectible is a pickup placed in free space
type Collectible struct {
	Kind      CollectibleKind
	Position  mgl64.Vec3
	Collected bool
}

// Config defines everything needed to build one level
type Config struct {
	Maze   maze.Config
	Layout Layout
	Oracle physics.OracleConfig

	MaxLevels    int
	DoorCount    int
	DoorRadius   float64
	LockerCount  int
	LockerRadius float64

	ShardCount        int
	BatteryCount      int
	CollectibleHeight float64
	PlacementRadius   float64
	PlacementRetries  int

	EyeHeight     float64
	MonsterHeight float64
	MonsterOffset float64 // spawn diagonal offset before snapping to a cell
}

// DefaultConfig returns the reference level setup
func DefaultConfig() Config {
	return Config{
		Maze:              maze.DefaultConfig(),
		Layout:            DefaultLayout(),
		Oracle:            physics.DefaultOracleConfig(),
		MaxLevels:         parameter.MaxLevels,
		DoorCount:         parameter.DoorCount,
		DoorRadius:        parameter.DoorRadius,
		LockerCount:       parameter.LockerCount,
		LockerRadius:      parameter.LockerRadius,
		ShardCount:        parameter.ShardCount,
		BatteryCount:      parameter.BatteryCount,
		CollectibleHeight: parameter.CollectibleHeight,
		PlacementRadius:   parameter.PlacementRadius,
		PlacementRetries:  parameter.PlacementRetries,
		EyeHeight:         parameter.PlayerEyeHeight,
		MonsterHeight:     parameter.MonsterHeight,
		MonsterOffset:     parameter.MonsterSpawnOffset,
	}
}

// Level exclusively owns its walls, interactables and pickups
// Rebuilt wholesale on level change; the grid is not retained
type Level struct {
	Number int
	Size   int
	Layout Layout

	Walls        []Wall
	Doors        []Door
	Lockers      []Locker
	Collectibles []Collectible

	PlayerStart   mgl64.Vec3
	MonsterSpawns []mgl64.Vec3

	oracle *physics.Oracle
}

// Generate builds the topology and a populated level from it
// The grid is returned for callers that draw it; the level itself only keeps walls
func Generate(cfg Config, number int, rng *rand.Rand) (*maze.Grid, *Level, error) {
	grid := maze.Generate(cfg.Maze, rng)
	lvl := &Level{
		Number: number,
		Size:   grid.Size,
		Layout: cfg.Layout,
		Walls:  BuildWalls(grid, cfg.Layout),
	}
	lvl.oracle = physics.NewOracle(cfg.Oracle, Boxes(lvl.Walls))

	lvl.PlayerStart = lvl.snap(mgl64.Vec3{}, cfg.EyeHeight)
	o := cfg.MonsterOffset
	for _, p := range []mgl64.Vec3{{o, 0, o}, {-o, 0, -o}, {-o, 0, o}, {o, 0, -o}} {
		lvl.MonsterSpawns = append(lvl.MonsterSpawns, lvl.snap(p, cfg.MonsterHeight))
	}

	for i := 0; i < cfg.DoorCount; i++ {
		angle := float64(i) / float64(cfg.DoorCount) * 2 * math.Pi
		lvl.Doors = append(lvl.Doors, Door{
			Position: lvl.snap(ring(angle, cfg.DoorRadius), cfg.EyeHeight),
			Yaw:      angle + math.Pi,
			Target:   rng.IntN(max(cfg.MaxLevels, 1)) + 1,
		})
	}
	for i := 0; i < cfg.LockerCount; i++ {
		angle := float64(i) / float64(cfg.LockerCount) * 2 * math.Pi
		lvl.Lockers = append(lvl.Lockers, Locker{
			Position: lvl.snap(ring(angle, cfg.LockerRadius), cfg.EyeHeight),
			Yaw:      angle + math.Pi,
		})
	}

	scatter := Scatter{
		Radius:  cfg.PlacementRadius,
		Height:  cfg.CollectibleHeight,
		Retries: cfg.PlacementRetries,
	}
	for _, batch := range []struct {
		kind  CollectibleKind
		count int
	}{{Shard, cfg.ShardCount}, {Battery, cfg.BatteryCount}} {
		scatter.Count = batch.count
		positions, err := Place(lvl.oracle, scatter, rng)
		if err != nil {
			return grid, nil, fmt.Errorf("level %d %s placement: %w", number, batch.kind, err)
		}
		for _, pos := range positions {
			lvl.Collectibles = append(lvl.Collectibles, Collectible{Kind: batch.kind, Position: pos})
		}
	}

	return grid, lvl, nil
}

// ring returns a floor point on a circle around origin
func ring(angle, radius float64) mgl64.Vec3 {
	sin, cos := math.Sincos(angle)
	return mgl64.Vec3{cos * radius, 0, sin * radius}
}

// snap moves pos to the nearest cell center at height y; cell centers never touch walls
func (l *Level) snap(pos mgl64.Vec3, y float64) mgl64.Vec3 {
	c := l.Layout.CellCenter(l.Size, l.Layout.CellAt(l.Size, pos))
	c[1] = y
	return c
}

// Oracle returns the level's collision oracle
func (l *Level) Oracle() *physics.Oracle {
	return l.oracle
}

// Collides delegates to the level oracle
func (l *Level) Collides(p mgl64.Vec3) bool {
	return l.oracle.Collides(p)
}

// Remaining counts uncollected pickups of kind
func (l *Level) Remaining(kind CollectibleKind) int {
	n := 0
	for i := range l.Collectibles {
		if l.Collectibles[i].Kind == kind && !l.Collectibles[i].Collected {
			n++
		}
	}
	return n
}

// Total counts all pickups of kind
func (l *Level) Total(kind CollectibleKind) int {
	n := 0
	for i := range l.Collectibles {
		if l.Collectibles[i].Kind == kind {
			n++
		}
	}
	return n
}
