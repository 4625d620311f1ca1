// Package scene assembles layout, snow and compositor for one display mode.
package scene

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/evergreen/constants"
	"github.com/lixenwraith/evergreen/glyph"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/render"
	"github.com/lixenwraith/evergreen/snow"
	"github.com/lixenwraith/evergreen/terminal"
)

// Mode selects what is drawn and how frames replace each other
type Mode uint8

const (
	// Forest fills the terminal with trees and snow, redrawn from the home position
	Forest Mode = iota
	// Single draws one tree inline without snow
	Single
	// Fancy draws one tree under a strip of sky, centered and inline
	Fancy
)

var modeNames = [...]string{"forest", "single", "fancy"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode maps a flag value to a Mode
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), true
		}
	}
	return Forest, false
}

// Interval returns the mode's frame interval
func (m Mode) Interval() time.Duration {
	switch m {
	case Single:
		return constants.SingleInterval
	case Fancy:
		return constants.FancyInterval
	}
	return constants.ForestInterval
}

// Options tunes a scene
type Options struct {
	// Spacing between forest trees, negative uses the default
	Spacing int
	// Snow enables the snow field in modes that have one
	Snow bool
}

// Scene owns everything needed to produce frames for one mode
type Scene struct {
	mode Mode
	opts Options
	lib  glyph.Library
	rng  *rand.Rand

	compositor *render.Compositor

	lay       layout.Layout
	field     *snow.Field
	occupancy []bool

	leftPad int
}

// New builds the scene for a terminal of the given size
func New(mode Mode, width, height int, opts Options, rng *rand.Rand) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scene %s at %dx%d: %w", mode, width, height, layout.ErrInvalidSize)
	}

	palette := render.DefaultPalette()
	palette.PlainStar = mode == Single

	s := &Scene{
		mode:       mode,
		opts:       opts,
		lib:        glyph.NewLibrary(),
		rng:        rng,
		compositor: render.NewCompositor(palette, rng),
	}
	if err := s.build(width, height); err != nil {
		return nil, err
	}
	s.field.Seed()
	return s, nil
}

// build computes the layout and sizes the snow field for a terminal size
func (s *Scene) build(termWidth, termHeight int) error {
	var (
		w, h int
		lopt = layout.Options{Spacing: s.opts.Spacing}
		cfg  = snow.NoSnow()
	)
	switch s.mode {
	case Single:
		w, h = s.lib.Width(), glyph.Base.Height()
		lopt = layout.Options{MaxTrees: 1, Fixed: true, Variant: glyph.Medium}
	case Fancy:
		w, h = s.lib.Width(), constants.SkyRows+glyph.Base.Height()
		lopt = layout.Options{MaxTrees: 1, Fixed: true, Variant: glyph.Medium}
		cfg = snow.SkyConfig()
		s.leftPad = max(0, (termWidth-w)/2)
	default:
		w, h = termWidth, termHeight
		cfg = snow.DefaultConfig()
	}
	if !s.opts.Snow {
		cfg = snow.NoSnow()
	}

	lay, err := layout.Compute(w, h, s.lib, lopt, s.rng)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.mode, err)
	}
	s.lay = lay

	if s.field == nil {
		s.field = snow.New(w, h, lay.BandTop, cfg, s.rng)
	} else {
		s.field.Resize(w, h, lay.BandTop)
	}

	if cap(s.occupancy) < w*h {
		s.occupancy = make([]bool, w*h)
	} else {
		s.occupancy = s.occupancy[:w*h]
	}
	return nil
}

// Mode returns the scene mode
func (s *Scene) Mode() Mode {
	return s.mode
}

// Size returns the frame dimensions
func (s *Scene) Size() (int, int) {
	return s.lay.Width, s.lay.Height
}

// Layout returns the current tree arrangement
func (s *Scene) Layout() *layout.Layout {
	return &s.lay
}

// Snow returns the snow field
func (s *Scene) Snow() *snow.Field {
	return s.field
}

// LeftPad returns the columns of blank margin written before each row
func (s *Scene) LeftPad() int {
	return s.leftPad
}

// StreamOptions returns the ANSI stream settings matching the mode
func (s *Scene) StreamOptions(color terminal.ColorMode) terminal.StreamOptions {
	switch s.mode {
	case Single:
		return terminal.StreamOptions{ColorMode: color, Redraw: terminal.RedrawInline}
	case Fancy:
		return terminal.StreamOptions{ColorMode: color, Redraw: terminal.RedrawInline, Clear: true, LeftPad: s.leftPad}
	}
	return terminal.StreamOptions{ColorMode: color, Redraw: terminal.RedrawHome, Clear: true}
}

// Step advances the simulation one tick
func (s *Scene) Step() {
	s.field.Tick()
}

// Compose draws the current state into f
func (s *Scene) Compose(f *render.Frame, blink render.Blink) {
	s.field.Occupancy(s.occupancy)
	s.compositor.Compose(f, &s.lay, s.occupancy, blink)
}

// Resize re-rolls the layout for a new terminal size and folds the snow into it.
// Modes with a fixed frame only recompute their margin.
func (s *Scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("scene %s at %dx%d: %w", s.mode, width, height, layout.ErrInvalidSize)
	}

	switch s.mode {
	case Single:
		return nil
	case Fancy:
		s.leftPad = max(0, (width-s.lay.Width)/2)
		return nil
	}
	return s.build(width, height)
}
