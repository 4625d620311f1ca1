// Package audio plays the optional bell chime that accompanies the star.
package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/evergreen/constants"
)

const (
	sampleRate = beep.SampleRate(constants.AudioSampleRate)
)

// Chimes rings a synthesized bell through the speaker
// Every method is a no-op until Initialize succeeds
type Chimes struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	rung        int
}

// NewChimes creates an uninitialized chime player
func NewChimes() *Chimes {
	return &Chimes{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker
func (c *Chimes) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences pending chimes
func (c *Chimes) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	// speaker has no Close, an empty mixer leaves it silent
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Ring queues one bell strike without blocking
func (c *Chimes) Ring() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	streamer := beep.Take(sampleRate.N(constants.BellSoundDuration), NewBellGenerator(sampleRate, constants.BellFundamental))
	speaker.Lock()
	c.mixer.Add(streamer)
	speaker.Unlock()
	c.rung++
}

// Rung returns how many strikes reached the mixer
func (c *Chimes) Rung() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rung
}

// Bell partial ratios and relative amplitudes
var bellPartials = []struct {
	ratio float64
	amp   float64
	decay float64 // release in seconds
}{
	{1.0, 1.0, constants.BellSoundFundamentalRelease.Seconds()},
	{2.0, 0.5, constants.BellSoundOvertoneRelease.Seconds()},
	{2.76, 0.35, constants.BellSoundOvertoneRelease.Seconds()},
	{5.4, 0.15, constants.BellSoundOvertoneRelease.Seconds() / 2},
}

// BellGenerator generates a struck bell, inharmonic partials with exponential decay
type BellGenerator struct {
	sr     beep.SampleRate
	freq   float64
	pos    int
	attack int
}

// NewBellGenerator creates a bell generator at the fundamental freq
func NewBellGenerator(sr beep.SampleRate, freq float64) *BellGenerator {
	return &BellGenerator{
		sr:     sr,
		freq:   freq,
		attack: sr.N(constants.BellSoundAttack),
	}
}

func (g *BellGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		for _, p := range bellPartials {
			sample += p.amp * math.Exp(-t/p.decay) * math.Sin(2*math.Pi*g.freq*p.ratio*t)
		}

		// Linear attack removes the click at onset
		if g.pos < g.attack {
			sample *= float64(g.pos) / float64(g.attack)
		}
		sample *= constants.BellVolume

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BellGenerator) Err() error {
	return nil
}
