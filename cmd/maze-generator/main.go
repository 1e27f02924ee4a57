package main

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/shardmaze/level"
	"github.com/lixenwraith/shardmaze/maze"
)

func main() {
	reader := bufio.NewReader(os.Stdin)
	defaults := maze.DefaultConfig()

	for {
		fmt.Println("\n=== SHARDMAZE TOPOLOGY GENERATOR ===")

		cfg := maze.Config{
			Size:           getInt(reader, fmt.Sprintf("Size (default %d): ", defaults.Size), defaults.Size),
			LoopFactor:     getFloat(reader, fmt.Sprintf("Loop Factor (default %.1f): ", defaults.LoopFactor), defaults.LoopFactor),
			ShortcutFactor: getFloat(reader, fmt.Sprintf("Shortcut Factor (default %.1f): ", defaults.ShortcutFactor), defaults.ShortcutFactor),
		}
		seed := uint64(getInt(reader, "Seed (default: clock): ", int(time.Now().UnixNano()&0x7fffffff)))

		fmt.Println("\nGenerating...")
		startT := time.Now()
		g := maze.Generate(cfg, rand.New(rand.NewPCG(seed, seed+1)))
		dur := time.Since(startT)

		stats := g.Stats()
		walls := level.BuildWalls(g, level.DefaultLayout())

		fmt.Print(g.String())
		fmt.Printf("Done in %v (seed %d)\n", dur, seed)
		fmt.Printf("Grid: %dx%d, reachable %d/%d, openings %d\n", g.Size, g.Size, stats.Reachable, stats.Cells, stats.Openings)
		fmt.Printf("Interior dead ends: %d, asymmetric walls: %d, wall volumes: %d\n", stats.DeadEnds, g.SymmetryViolations(), len(walls))

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}
