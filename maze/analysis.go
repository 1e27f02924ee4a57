package maze

import "github.com/zyedidia/generic/mapset"

// Reachable returns every cell connected to from through open walls
func (g *Grid) Reachable(from Point) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if g.InBounds(from) {
		g.floodInto(visited, from)
	}
	return visited
}

// floodInto adds start and everything reachable from it to visited
func (g *Grid) floodInto(visited mapset.Set[Point], start Point) {
	visited.Put(start)
	queue := []Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range Directions {
			if !g.Open(current, d) {
				continue
			}
			n := current.Step(d, 1)
			if !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
}

// DeadEnds lists interior cells with exactly three walls
func (g *Grid) DeadEnds() []Point {
	var out []Point
	for x := 1; x < g.Size-1; x++ {
		for z := 1; z < g.Size-1; z++ {
			p := Point{x, z}
			if g.WallCount(p) == 3 {
				out = append(out, p)
			}
		}
	}
	return out
}

// SymmetryViolations counts neighbor pairs whose facing wall flags disagree
func (g *Grid) SymmetryViolations() int {
	bad := 0
	for x := 0; x < g.Size; x++ {
		for z := 0; z < g.Size; z++ {
			p := Point{x, z}
			for _, d := range Directions {
				n := p.Step(d, 1)
				if !g.InBounds(n) {
					continue
				}
				if g.HasWall(p, d) != g.HasWall(n, d.Opposite()) {
					bad++
				}
			}
		}
	}
	return bad
}

// Stats summarizes a topology for tooling
type Stats struct {
	Cells     int
	Reachable int
	DeadEnds  int
	Openings  int // open neighbor pairs, each counted once
}

// Stats computes reachability from the center plus opening and dead-end counts
func (g *Grid) Stats() Stats {
	s := Stats{
		Cells:     g.Size * g.Size,
		Reachable: g.Reachable(g.Center()).Size(),
		DeadEnds:  len(g.DeadEnds()),
	}
	for x := 0; x < g.Size; x++ {
		for z := 0; z < g.Size; z++ {
			p := Point{x, z}
			if g.Open(p, East) {
				s.Openings++
			}
			if g.Open(p, South) {
				s.Openings++
			}
		}
	}
	return s
}
