package maze

import (
	"math/rand/v2"

	"github.com/lixenwraith/shardmaze/parameter"
)

// Config controls topology generation
type Config struct {
	Size int

	// LoopFactor scales random cycle injection: floor(Size * LoopFactor) passes
	LoopFactor float64

	// ShortcutFactor scales single-wall removals: floor(Size * ShortcutFactor) passes
	ShortcutFactor float64
}

// DefaultConfig returns the reference 30x30 setup
func DefaultConfig() Config {
	return Config{
		Size:           parameter.MazeSize,
		LoopFactor:     parameter.MazeLoopFactor,
		ShortcutFactor: parameter.MazeShortcutFactor,
	}
}

// Generate builds a braided maze with two-cell-wide corridors
// Output is fully connected, wall flags are symmetric, and no interior cell is a dead end
// Identical rng state yields identical grids
func Generate(cfg Config, rng *rand.Rand) *Grid {
	size := cfg.Size
	if size < parameter.MazeMinSize {
		size = parameter.MazeMinSize
	}

	// 1. Closed, unvisited grid
	g := NewGrid(size)

	// 2. Outer ring flags, already set by NewGrid but the boundary must never depend on it
	g.sealBoundary()

	// 3. Depth-first carving from fixed seeds
	for _, seed := range g.seeds() {
		if g.At(seed).Visited {
			continue
		}
		g.carve(seed, rng)
	}

	// 4. Cycles so pursuit is never forced down a single path
	g.injectLoops(int(float64(size)*cfg.LoopFactor), rng)

	// 5. Long straight traversals through the middle
	g.carveMainPathways()

	// 6. Shortcuts, possibly redundant with existing openings
	g.carveShortcuts(int(float64(size)*cfg.ShortcutFactor), rng)

	// 7. Seeds whose lattice was consumed as midpoints leave sealed pockets
	g.repairConnectivity(rng)

	// 8. Terminal corridors
	g.reduceDeadEnds(rng)

	return g
}

func (g *Grid) sealBoundary() {
	last := g.Size - 1
	for i := 0; i < g.Size; i++ {
		g.Cells[i][0].Walls[North] = true
		g.Cells[i][last].Walls[South] = true
		g.Cells[0][i].Walls[West] = true
		g.Cells[last][i].Walls[East] = true
	}
}

// seeds returns the four near-corner cells, the center, and four quadrant centers
func (g *Grid) seeds() []Point {
	s := g.Size
	return []Point{
		{1, 1},
		{s - 2, 1},
		{1, s - 2},
		{s - 2, s - 2},
		{s / 2, s / 2},
		{s / 4, s / 4},
		{3 * s / 4, s / 4},
		{s / 4, 3 * s / 4},
		{3 * s / 4, 3 * s / 4},
	}
}

// carveFrame is one level of the backtracking walk
type carveFrame struct {
	at    Point
	order [4]Direction
	next  int
}

// carve runs recursive backtracking with an explicit stack, stepping two cells
// The skipped midpoint opens on both sides of the travel axis and counts as visited
func (g *Grid) carve(start Point, rng *rand.Rand) {
	stack := []carveFrame{g.enter(start, rng)}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.order) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.order[top.next]
		top.next++

		target := top.at.Step(d, 2)
		if !g.InBounds(target) || g.At(target).Visited {
			continue
		}

		mid := top.at.Step(d, 1)
		g.clearPair(top.at, d)
		g.clearPair(mid, d)
		g.At(mid).Visited = true

		stack = append(stack, g.enter(target, rng))
	}
}

func (g *Grid) enter(p Point, rng *rand.Rand) carveFrame {
	g.At(p).Visited = true
	f := carveFrame{at: p, order: Directions}
	rng.Shuffle(len(f.order), func(i, j int) {
		f.order[i], f.order[j] = f.order[j], f.order[i]
	})
	return f
}

// randomInterior picks a cell in [1, Size-2] on both axes
func (g *Grid) randomInterior(rng *rand.Rand) Point {
	return Point{rng.IntN(g.Size-2) + 1, rng.IntN(g.Size-2) + 1}
}

func (g *Grid) injectLoops(count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		p := g.randomInterior(rng)
		if rng.Float64() < 0.5 {
			g.clearPair(p, North)
		}
		if rng.Float64() < 0.5 {
			g.clearPair(p, East)
		}
	}
}

func (g *Grid) carveMainPathways() {
	mid := g.Size / 2
	for x := g.Size / 4; x < 3*g.Size/4; x++ {
		g.clearPair(Point{x, mid}, East)
	}
	for z := g.Size / 4; z < 3*g.Size/4; z++ {
		g.clearPair(Point{mid, z}, South)
	}
}

func (g *Grid) carveShortcuts(count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		p := g.randomInterior(rng)
		if rng.Float64() < 0.5 {
			g.clearPair(p, North)
		} else {
			g.clearPair(p, East)
		}
	}
}

// repairConnectivity opens a wall from every unreached cell into the reached region
// until the whole grid is one component
func (g *Grid) repairConnectivity(rng *rand.Rand) {
	reached := g.Reachable(g.Center())
	total := g.Size * g.Size

	for reached.Size() < total {
		for x := 0; x < g.Size; x++ {
			for z := 0; z < g.Size; z++ {
				p := Point{x, z}
				if reached.Has(p) {
					continue
				}
				order := Directions
				rng.Shuffle(len(order), func(i, j int) {
					order[i], order[j] = order[j], order[i]
				})
				for _, d := range order {
					n := p.Step(d, 1)
					if g.InBounds(n) && reached.Has(n) {
						g.clearPair(p, d)
						g.floodInto(reached, p)
						break
					}
				}
			}
		}
	}
}

// reduceDeadEnds opens one random wall of every interior three-walled cell, sweeping until stable
func (g *Grid) reduceDeadEnds(rng *rand.Rand) {
	for {
		changed := false
		for x := 1; x < g.Size-1; x++ {
			for z := 1; z < g.Size-1; z++ {
				p := Point{x, z}
				if g.WallCount(p) != 3 {
					continue
				}
				present := make([]Direction, 0, 3)
				for _, d := range Directions {
					if g.HasWall(p, d) {
						present = append(present, d)
					}
				}
				if g.clearPair(p, present[rng.IntN(len(present))]) {
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}
