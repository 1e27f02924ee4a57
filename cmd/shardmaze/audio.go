package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/shardmaze/engine"
)

const sampleRate = beep.SampleRate(44100)

// cue is a short sine tone
type cue struct {
	freq   float64
	length time.Duration
	volume float64 // log2 gain, 0 is unity
}

var cues = map[engine.EventType]cue{
	engine.EventShard:            {1320, 30 * time.Millisecond, -2},
	engine.EventAllShards:        {1760, 400 * time.Millisecond, -1},
	engine.EventBattery:          {660, 80 * time.Millisecond, -1},
	engine.EventDamage:           {110, 60 * time.Millisecond, -1},
	engine.EventMonstersSpawned:  {55, 600 * time.Millisecond, 0},
	engine.EventWhisper:          {220, 200 * time.Millisecond, -3},
	engine.EventJumpScare:        {90, 150 * time.Millisecond, 1},
	engine.EventFlashlightReload: {440, 50 * time.Millisecond, -2},
	engine.EventFlashlightEmpty:  {150, 120 * time.Millisecond, -2},
	engine.EventCaught:           {40, 900 * time.Millisecond, 1},
}

// Audio plays event cues through one mixer; a failed speaker init leaves it silent
type Audio struct {
	mixer   *beep.Mixer
	enabled bool
	muted   bool
}

// NewAudio initializes the speaker, error is non-fatal to the caller
func NewAudio() (*Audio, error) {
	a := &Audio{mixer: &beep.Mixer{}}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return a, err
	}
	speaker.Play(a.mixer)
	a.enabled = true
	return a, nil
}

// Play sounds the cue for e, if any
func (a *Audio) Play(e engine.Event) {
	if a == nil || !a.enabled || a.muted {
		return
	}
	c, ok := cues[e.Type]
	if !ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, c.freq)
	if err != nil {
		return
	}
	tone := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(c.length), sine),
		Base:     2,
		Volume:   c.volume,
	}
	speaker.Lock()
	a.mixer.Add(tone)
	speaker.Unlock()
}

// ToggleMute flips muting, returns the new state
func (a *Audio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}

// Close releases the speaker
func (a *Audio) Close() {
	if a == nil || !a.enabled {
		return
	}
	speaker.Lock()
	a.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
