package main

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shardmaze/engine"
	"github.com/lixenwraith/shardmaze/physics"
)

const (
	// holdWindow keeps a movement key active after its last press or auto-repeat
	holdWindow = 180 * time.Millisecond
	turnStep   = math.Pi / 24
)

type action uint8

const (
	actNone action = iota
	actQuit
	actPause
	actMute
)

// controls folds key presses into per-tick session input
// Terminals report presses and auto-repeats but never releases, so held state expires on its own
type controls struct {
	held     map[rune]time.Time
	turn     float64
	interact bool
	light    bool
}

func newControls() *controls {
	return &controls{held: make(map[rune]time.Time)}
}

// press records a key; returns a host-level action for keys the session does not consume
func (c *controls) press(ev *tcell.EventKey, now time.Time) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyUp:
		c.held['w'] = now
	case tcell.KeyDown:
		c.held['s'] = now
	case tcell.KeyLeft:
		c.turn += turnStep
	case tcell.KeyRight:
		c.turn -= turnStep
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'w', 'a', 's', 'd', 'W', 'A', 'S', 'D':
			c.held[r|0x20] = now
		case 'h', 'q':
			c.turn += turnStep
		case 'l':
			c.turn -= turnStep
		case 'e', 'E':
			c.interact = true
		case 'f', 'F':
			c.light = true
		case 'p', 'P':
			return actPause
		case 'm', 'M':
			return actMute
		}
	}
	return actNone
}

func (c *controls) down(r rune, now time.Time) bool {
	t, ok := c.held[r]
	return ok && now.Sub(t) <= holdWindow
}

// input builds one tick of intent and consumes one-shot presses
func (c *controls) input(now time.Time) engine.Input {
	in := engine.Input{
		Move:        physics.IntentFrom(c.down('w', now), c.down('s', now), c.down('a', now), c.down('d', now)),
		Turn:        c.turn,
		Interact:    c.interact,
		ToggleLight: c.light,
	}
	c.turn = 0
	c.interact = false
	c.light = false
	return in
}
