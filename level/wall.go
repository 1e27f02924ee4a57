package level

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/maze"
	"github.com/lixenwraith/shardmaze/parameter"
	"github.com/lixenwraith/shardmaze/vmath"
)

// WallKind distinguishes the enclosing walls for rendering; collision treats both alike
type WallKind uint8

const (
	WallInternal WallKind = iota
	WallBoundary
)

func (k WallKind) String() string {
	if k == WallBoundary {
		return "boundary"
	}
	return "internal"
}

// Wall is an immutable axis-aligned wall volume
type Wall struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Kind        WallKind

	// Source cell and side for internal walls
	Cell maze.Point
	Side maze.Direction
}

// Box returns the wall's bounds
func (w Wall) Box() vmath.AABB {
	return vmath.BoxAround(w.Center, w.HalfExtents)
}

// Layout maps grid topology to world space
type Layout struct {
	Pitch     float64 // distance between adjacent cell centers
	Thickness float64
	Length    float64 // long axis, longer than Pitch to close corners
	Height    float64
}

// DefaultLayout returns the reference corridor geometry
func DefaultLayout() Layout {
	return Layout{
		Pitch:     parameter.CorridorPitch,
		Thickness: parameter.WallThickness,
		Length:    parameter.WallLength,
		Height:    parameter.WallHeight,
	}
}

// CellCenter returns the floor-level world center of p, the grid centered on origin
func (l Layout) CellCenter(size int, p maze.Point) mgl64.Vec3 {
	half := float64(size-1) / 2
	return mgl64.Vec3{
		(float64(p.X) - half) * l.Pitch,
		0,
		(float64(p.Z) - half) * l.Pitch,
	}
}

// CellAt returns the cell whose center is nearest to pos, clamped into the grid
func (l Layout) CellAt(size int, pos mgl64.Vec3) maze.Point {
	half := float64(size-1) / 2
	clamp := func(v float64) int {
		i := int(math.Round(v/l.Pitch + half))
		return max(0, min(size-1, i))
	}
	return maze.Point{X: clamp(pos[0]), Z: clamp(pos[2])}
}

// Extent returns the half-width of the grid footprint
func (l Layout) Extent(size int) float64 {
	return float64(size) * l.Pitch / 2
}

// BuildWalls emits one volume per north and east flag plus four boundary walls
// South and west flags are implied by the neighbor's north and east
func BuildWalls(g *maze.Grid, l Layout) []Wall {
	walls := make([]Wall, 0, g.Size*g.Size+4)

	halfH := l.Height / 2
	alongX := mgl64.Vec3{l.Length / 2, halfH, l.Thickness / 2}
	alongZ := mgl64.Vec3{l.Thickness / 2, halfH, l.Length / 2}
	edge := l.Pitch / 2

	for x := 0; x < g.Size; x++ {
		for z := 0; z < g.Size; z++ {
			p := maze.Point{X: x, Z: z}
			c := l.CellCenter(g.Size, p)
			if g.HasWall(p, maze.North) {
				walls = append(walls, Wall{
					Center:      mgl64.Vec3{c[0], halfH, c[2] - edge},
					HalfExtents: alongX,
					Kind:        WallInternal,
					Cell:        p,
					Side:        maze.North,
				})
			}
			if g.HasWall(p, maze.East) {
				walls = append(walls, Wall{
					Center:      mgl64.Vec3{c[0] + edge, halfH, c[2]},
					HalfExtents: alongZ,
					Kind:        WallInternal,
					Cell:        p,
					Side:        maze.East,
				})
			}
		}
	}

	// Boundary walls sit just outside the footprint and overlap at the corners
	ext := l.Extent(g.Size)
	span := ext + l.Thickness
	t := l.Thickness / 2
	walls = append(walls,
		Wall{Center: mgl64.Vec3{0, halfH, -ext - t}, HalfExtents: mgl64.Vec3{span, halfH, t}, Kind: WallBoundary, Side: maze.North},
		Wall{Center: mgl64.Vec3{0, halfH, ext + t}, HalfExtents: mgl64.Vec3{span, halfH, t}, Kind: WallBoundary, Side: maze.South},
		Wall{Center: mgl64.Vec3{ext + t, halfH, 0}, HalfExtents: mgl64.Vec3{t, halfH, span}, Kind: WallBoundary, Side: maze.East},
		Wall{Center: mgl64.Vec3{-ext - t, halfH, 0}, HalfExtents: mgl64.Vec3{t, halfH, span}, Kind: WallBoundary, Side: maze.West},
	)
	return walls
}

// Boxes extracts collision volumes
func Boxes(walls []Wall) []vmath.AABB {
	out := make([]vmath.AABB, len(walls))
	for i := range walls {
		out[i] = walls[i].Box()
	}
	return out
}
