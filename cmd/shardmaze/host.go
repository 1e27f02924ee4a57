package main

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/shardmaze/config"
	"github.com/lixenwraith/shardmaze/engine"
)

// host connects the terminal to a session
// Only the tick goroutine touches the session; input arrives over a channel
type host struct {
	cfg      *config.Config
	session  *engine.Session
	clock    *engine.PausableClock
	screen   tcell.Screen
	view     *view
	controls *controls
	audio    *Audio
	log      zerolog.Logger
}

func (h *host) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	// Finalizing the screen unblocks PollEvent
	g.Go(h.guard("screen watcher", func() error {
		<-ctx.Done()
		h.screen.Fini()
		return nil
	}))

	g.Go(h.guard("event poller", func() error {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}))

	g.Go(h.guard("game loop", func() error {
		defer cancel()
		return h.loop(ctx, events)
	}))

	return g.Wait()
}

// guard converts a panic in fn into an error after restoring the terminal
// Each errgroup member needs its own guard
func (h *host) guard(name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				h.screen.Fini()
				h.log.Error().Str("goroutine", name).Interface("panic", r).Msg("crashed")
				err = fmt.Errorf("%s crashed: %v\n%s", name, r, debug.Stack())
			}
		}()
		return fn()
	}
}

func (h *host) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(h.cfg.Session.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch h.controls.press(ev, time.Now()) {
				case actQuit:
					h.log.Info().Msg("quit requested")
					return nil
				case actPause:
					paused := h.clock.Toggle()
					h.log.Info().Bool("paused", paused).Msg("pause toggled")
				case actMute:
					h.audio.ToggleMute()
				}
				if ev.Key() == tcell.KeyRune {
					switch ev.Rune() {
					case '+', '=':
						h.view.zoom(0.5)
					case '-':
						h.view.zoom(2)
					}
				}
			case *tcell.EventResize:
				h.screen.Sync()
			}

		case <-ticker.C:
			h.step(time.Now())
		}
	}
}

// step advances the session one tick and redraws
// Input gathered while paused is consumed and dropped so it cannot fire on resume
func (h *host) step(now time.Time) {
	paused := h.clock.IsPaused()
	in := h.controls.input(now)
	if !paused {
		h.session.Update(in)
	}
	for _, e := range h.session.Events() {
		h.audio.Play(e)
		h.view.notify(e, now)
	}
	h.view.draw(h.session.Snapshot(), paused, now)
}
