package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shardmaze/engine"
	"github.com/lixenwraith/shardmaze/level"
	"github.com/lixenwraith/shardmaze/physics"
)

const (
	hudRows        = 2
	messageTTL     = 3 * time.Second
	darkRadius     = 6.0
	beamRadius     = 12.0 // per unit of flashlight intensity
	rowAspect      = 2.0  // terminal cells are roughly twice as tall as wide
	defaultScale   = 1.0  // world units per column
	minimapMinimum = 8
)

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleShard   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBattery = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDoor    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleLocker  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleMonster = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleWhisper = tcell.StyleDefault.Foreground(tcell.ColorMaroon).Italic(true)
	playerGlyphs = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}
)

// view draws a north-up minimap centered on the player plus a HUD
type view struct {
	screen tcell.Screen
	scale  float64
	walls  wallMap

	message      string
	messageUntil time.Time
}

func newView(screen tcell.Screen) *view {
	return &view{screen: screen, scale: defaultScale}
}

// zoom adjusts world units per column within sane bounds
func (v *view) zoom(factor float64) {
	v.scale = math.Max(0.25, math.Min(4, v.scale*factor))
}

// notify turns session events into HUD messages
func (v *view) notify(e engine.Event, now time.Time) {
	var msg string
	switch e.Type {
	case engine.EventWhisper:
		msg = e.Text
	case engine.EventAllShards:
		msg = "You found all the glass shards! Now escape!"
	case engine.EventCaught:
		msg = "The monsters caught you!"
	case engine.EventFlashlightEmpty:
		msg = "Your flashlight dies."
	default:
		return
	}
	v.message = msg
	v.messageUntil = now.Add(messageTTL)
}

// project maps a world position to a screen cell relative to the player at (cx, cy)
func project(x, z, px, pz float64, cx, cy int, scale float64) (int, int) {
	col := cx + int(math.Round((x-px)/scale))
	row := cy + int(math.Round((z-pz)/(scale*rowAspect)))
	return col, row
}

// visibility returns the lit radius around the player
func visibility(snap engine.Snapshot) float64 {
	switch {
	case snap.GlobalLight:
		return math.Inf(1)
	case snap.Light.On():
		return beamRadius * snap.Light.Intensity / 2
	default:
		return darkRadius
	}
}

// playerGlyph picks an arrow for the facing yaw, yaw 0 points up the screen
func playerGlyph(yaw float64) rune {
	idx := int(math.Round(yaw/(math.Pi/4))) % 8
	if idx < 0 {
		idx += 8
	}
	return playerGlyphs[idx]
}

func (v *view) draw(snap engine.Snapshot, paused bool, now time.Time) {
	v.screen.Clear()
	w, h := v.screen.Size()
	mapH := h - hudRows
	if w < minimapMinimum || mapH < minimapMinimum {
		v.text(0, 0, "terminal too small", styleWarning)
		v.screen.Show()
		return
	}

	if v.walls.oracle != snap.Oracle {
		v.walls.reset(snap.Oracle)
	}
	cx, cy := w/2, mapH/2
	px, pz := snap.Player.Position[0], snap.Player.Position[2]
	vis := visibility(snap)

	lit := func(x, z float64) bool {
		return math.Hypot(x-px, z-pz) <= vis
	}

	for row := 0; row < mapH; row++ {
		z := pz + float64(row-cy)*v.scale*rowAspect
		for col := 0; col < w; col++ {
			x := px + float64(col-cx)*v.scale
			if !lit(x, z) {
				continue
			}
			if v.walls.blocked(x, z) {
				v.screen.SetContent(col, row, '█', nil, styleWall)
			}
		}
	}

	put := func(x, z float64, r rune, style tcell.Style) {
		if !lit(x, z) {
			return
		}
		col, row := project(x, z, px, pz, cx, cy, v.scale)
		if col >= 0 && col < w && row >= 0 && row < mapH {
			v.screen.SetContent(col, row, r, nil, style)
		}
	}

	for _, c := range snap.Collectibles {
		if c.Kind == level.Shard {
			put(c.Position[0], c.Position[2], '*', styleShard)
		} else {
			put(c.Position[0], c.Position[2], '+', styleBattery)
		}
	}
	for _, d := range snap.Doors {
		put(d.Position[0], d.Position[2], 'D', styleDoor)
	}
	for _, l := range snap.Lockers {
		put(l.Position[0], l.Position[2], 'L', styleLocker)
	}
	for _, m := range snap.Monsters {
		r := 'M'
		if m.Transient {
			r = 'm'
		}
		// Monsters are heard before they are seen
		col, row := project(m.Position[0], m.Position[2], px, pz, cx, cy, v.scale)
		if col >= 0 && col < w && row >= 0 && row < mapH {
			v.screen.SetContent(col, row, r, nil, styleMonster)
		}
	}
	v.screen.SetContent(cx, cy, playerGlyph(snap.Player.Yaw), nil, stylePlayer)

	v.hud(snap, paused, now, w, mapH)
	v.screen.Show()
}

func (v *view) hud(snap engine.Snapshot, paused bool, now time.Time, w, top int) {
	light := "OFF"
	if snap.Light.On() {
		light = "ON"
	}
	status := fmt.Sprintf("L%d  HP %3.0f  SAN %3.0f  LIGHT %s %3.0f%%  BAT %d  SHARDS %d/%d",
		snap.Level, snap.Player.Health, snap.Player.Sanity, light, snap.Light.Energy,
		snap.Light.Batteries, snap.ShardsRequired-snap.ShardsLeft, snap.ShardsRequired)

	style := styleHUD
	if snap.MonstersActive {
		status += "  HUNTED"
		style = styleWarning
	} else {
		status += fmt.Sprintf("  QUIET %2.0fs", snap.SpawnIn.Seconds())
	}
	v.text(0, top, status, style)

	line, lstyle := snap.Prompt, styleHUD
	switch {
	case snap.Phase == engine.PhaseCaught:
		line, lstyle = "CAUGHT - press Esc to quit", styleWarning
	case paused:
		line, lstyle = "PAUSED - press P to resume", styleHUD
	case now.Before(v.messageUntil):
		line, lstyle = v.message, styleWhisper
	}
	if len([]rune(line)) > w {
		line = string([]rune(line)[:w])
	}
	v.text(0, top+1, line, lstyle)
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// wallMap memoizes wall footprint lookups on a unit lattice for one level
// Cells resolve lazily as they scroll into view
type wallMap struct {
	oracle *physics.Oracle
	half   int
	cells  []uint8 // 0 unknown, 1 open, 2 wall
}

func (m *wallMap) reset(o *physics.Oracle) {
	m.oracle = o
	m.half = int(math.Ceil(o.Config().ArenaRadius)) + 1
	side := 2 * m.half
	m.cells = make([]uint8, side*side)
}

func (m *wallMap) blocked(x, z float64) bool {
	fx, fz := math.Floor(x), math.Floor(z)
	ix, iz := int(fx)+m.half, int(fz)+m.half
	side := 2 * m.half
	if ix < 0 || iz < 0 || ix >= side || iz >= side {
		return false
	}
	i := iz*side + ix
	if m.cells[i] == 0 {
		m.cells[i] = 1
		if m.oracle.BlockedXZ(fx+0.5, fz+0.5) {
			m.cells[i] = 2
		}
	}
	return m.cells[i] == 2
}
