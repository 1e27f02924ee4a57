package maze

import "strings"

// Direction indexes a cell's wall flags
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all four in flag order
var Directions = [4]Direction{North, East, South, West}

var directionNames = [4]string{"north", "east", "south", "west"}

// offsets: north is -Z, east is +X
var offsets = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Opposite returns the facing direction on the neighbor's side
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the unit grid step toward d
func (d Direction) Offset() Point {
	return offsets[d]
}

// Point is a cell coordinate
type Point struct {
	X, Z int
}

// Step returns p moved n cells toward d
func (p Point) Step(d Direction, n int) Point {
	o := offsets[d]
	return Point{p.X + o.X*n, p.Z + o.Z*n}
}

// Cell is one grid unit with four wall flags
type Cell struct {
	X, Z    int
	Visited bool
	Walls   [4]bool
}

// Grid is a square topology addressed as Cells[x][z]
type Grid struct {
	Size  int
	Cells [][]Cell
}

// NewGrid creates a size x size grid with every wall present and nothing visited
func NewGrid(size int) *Grid {
	cells := make([][]Cell, size)
	for x := range cells {
		cells[x] = make([]Cell, size)
		for z := range cells[x] {
			cells[x][z] = Cell{
				X:     x,
				Z:     z,
				Walls: [4]bool{true, true, true, true},
			}
		}
	}
	return &Grid{Size: size, Cells: cells}
}

// InBounds reports whether p addresses a cell
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Z >= 0 && p.Z < g.Size
}

// Interior reports whether p is off the outer ring
func (g *Grid) Interior(p Point) bool {
	return p.X > 0 && p.X < g.Size-1 && p.Z > 0 && p.Z < g.Size-1
}

// At returns the cell at p, caller ensures bounds
func (g *Grid) At(p Point) *Cell {
	return &g.Cells[p.X][p.Z]
}

// Center returns the middle cell coordinate
func (g *Grid) Center() Point {
	return Point{g.Size / 2, g.Size / 2}
}

// HasWall reports the wall flag of p facing d
func (g *Grid) HasWall(p Point, d Direction) bool {
	return g.Cells[p.X][p.Z].Walls[d]
}

// WallCount returns how many of p's four walls are present
func (g *Grid) WallCount(p Point) int {
	n := 0
	for _, w := range g.Cells[p.X][p.Z].Walls {
		if w {
			n++
		}
	}
	return n
}

// Open reports whether movement from p toward d is possible within the grid
func (g *Grid) Open(p Point, d Direction) bool {
	return !g.HasWall(p, d) && g.InBounds(p.Step(d, 1))
}

// clearPair removes the wall between p and its neighbor toward d
// Out-of-grid neighbors leave the outward wall untouched
func (g *Grid) clearPair(p Point, d Direction) bool {
	n := p.Step(d, 1)
	if !g.InBounds(p) || !g.InBounds(n) {
		return false
	}
	g.Cells[p.X][p.Z].Walls[d] = false
	g.Cells[n.X][n.Z].Walls[d.Opposite()] = false
	return true
}

// String renders the topology as ASCII, north at the top
func (g *Grid) String() string {
	var sb strings.Builder
	for z := 0; z < g.Size; z++ {
		for x := 0; x < g.Size; x++ {
			sb.WriteByte('+')
			if g.Cells[x][z].Walls[North] {
				sb.WriteString("--")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("+\n")
		for x := 0; x < g.Size; x++ {
			if g.Cells[x][z].Walls[West] {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteString("  ")
		}
		if g.Cells[g.Size-1][z].Walls[East] {
			sb.WriteByte('|')
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	for x := 0; x < g.Size; x++ {
		sb.WriteByte('+')
		if g.Cells[x][g.Size-1].Walls[South] {
			sb.WriteString("--")
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("+\n")
	return sb.String()
}
