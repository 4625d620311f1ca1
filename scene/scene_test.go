package scene

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lixenwraith/evergreen/constants"
	"github.com/lixenwraith/evergreen/glyph"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/render"
	"github.com/lixenwraith/evergreen/terminal"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(21, 12))
}

func TestNewRejectsDegenerateSize(t *testing.T) {
	for _, mode := range []Mode{Forest, Single, Fancy} {
		_, err := New(mode, 0, 24, Options{Snow: true}, newRNG())
		if !errors.Is(err, layout.ErrInvalidSize) {
			t.Errorf("%s: expected ErrInvalidSize, got %v", mode, err)
		}
	}
}

func TestForestGlyphSizedTerminal(t *testing.T) {
	s, err := New(Forest, 18, 10, Options{Spacing: constants.TreeSpacing}, newRNG())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Force the medium variant to compare against the base glyph
	s.lay.Trees[0].Mask = glyph.Base
	s.lay.BandHeight = glyph.Base.Height()
	s.lay.BandTop = 0

	f := render.NewFrame(0, 0)
	s.Compose(f, render.Bright)

	if diff := cmp.Diff(glyph.Base.Rows, f.Lines()); diff != "" {
		t.Errorf("Frame mismatch (-want +got):\n%s", diff)
	}
}

func TestModeGeometry(t *testing.T) {
	tests := []struct {
		mode          Mode
		width, height int
		wantW, wantH  int
		wantPad       int
		wantRedraw    terminal.RedrawMode
	}{
		{Forest, 80, 24, 80, 24, 0, terminal.RedrawHome},
		{Single, 80, 24, 18, 10, 0, terminal.RedrawInline},
		{Fancy, 80, 24, 18, 15, 31, terminal.RedrawInline},
		{Fancy, 10, 5, 18, 15, 0, terminal.RedrawInline},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s, err := New(tt.mode, tt.width, tt.height, Options{Spacing: 4, Snow: true}, newRNG())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			w, h := s.Size()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Expected %dx%d frame, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
			if s.LeftPad() != tt.wantPad {
				t.Errorf("Expected left pad %d, got %d", tt.wantPad, s.LeftPad())
			}
			opts := s.StreamOptions(terminal.ColorMode16)
			if opts.Redraw != tt.wantRedraw {
				t.Errorf("Expected redraw %d, got %d", tt.wantRedraw, opts.Redraw)
			}
			if opts.LeftPad != tt.wantPad {
				t.Errorf("Expected stream pad %d, got %d", tt.wantPad, opts.LeftPad)
			}
		})
	}
}

func TestSnowPerMode(t *testing.T) {
	tests := []struct {
		mode Mode
		snow bool
		want int
	}{
		{Forest, true, 40},
		{Forest, false, 0},
		{Single, true, 0},
		{Fancy, true, 15},
	}

	for _, tt := range tests {
		s, err := New(tt.mode, 80, 24, Options{Spacing: 4, Snow: tt.snow}, newRNG())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if got := s.Snow().Len(); got != tt.want {
			t.Errorf("%s snow=%v: expected %d flakes, got %d", tt.mode, tt.snow, tt.want, got)
		}
	}
}

func TestFancyTreeSitsUnderSky(t *testing.T) {
	s, err := New(Fancy, 40, 30, Options{}, newRNG())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	f := render.NewFrame(0, 0)
	s.Compose(f, render.Dim)

	lines := f.Lines()
	want := make([]string, 0, 15)
	for range constants.SkyRows {
		want = append(want, "                  ")
	}
	want = append(want, glyph.Base.Rows...)
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Frame mismatch (-want +got):\n%s", diff)
	}
	if star := f.At(8, constants.SkyRows); star.Fg != terminal.ColorBrightWhite {
		t.Errorf("Expected dim star color, got %+v", star.Fg)
	}
}

func TestStarColorPerMode(t *testing.T) {
	lights := render.DefaultPalette().Lights
	tests := []struct {
		mode    Mode
		starRow int
		blinks  bool
	}{
		{Single, 0, false},
		{Fancy, constants.SkyRows, true},
		{Forest, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s, err := New(tt.mode, 18, 15, Options{}, newRNG())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			f := render.NewFrame(0, 0)
			if tt.mode == Forest {
				tt.starRow = s.Layout().BandTop
			}

			for _, blink := range []render.Blink{render.Bright, render.Dim} {
				s.Compose(f, blink)
				star := f.At(8, tt.starRow)
				if star.Rune != glyph.Foliage {
					t.Fatalf("Expected star glyph at row %d, got %q", tt.starRow, star.Rune)
				}
				want := render.DefaultPalette().Star(blink)
				if tt.blinks && star.Fg != want {
					t.Errorf("Expected %v star color %+v, got %+v", blink, want, star.Fg)
				}
				if !tt.blinks && !slices.Contains(lights, star.Fg) {
					t.Errorf("Expected light-colored star, got %+v", star.Fg)
				}
			}
		})
	}
}

func TestStepKeepsFlakesInFrame(t *testing.T) {
	s, err := New(Forest, 60, 20, Options{Spacing: 4, Snow: true}, newRNG())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	f := render.NewFrame(0, 0)

	for range 100 {
		s.Step()
		s.Compose(f, render.Bright)
		if f.Width != 60 || f.Height != 20 {
			t.Fatalf("Unexpected frame size %dx%d", f.Width, f.Height)
		}
	}
	if s.Snow().Len() > s.Snow().Cap() {
		t.Errorf("Snow exceeded cap: %d > %d", s.Snow().Len(), s.Snow().Cap())
	}
}

func TestResize(t *testing.T) {
	s, err := New(Forest, 120, 40, Options{Spacing: 4, Snow: true}, newRNG())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for range 10 {
		s.Step()
	}

	if err := s.Resize(40, 12); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := s.Size(); w != 40 || h != 12 {
		t.Errorf("Expected 40x12 after resize, got %dx%d", w, h)
	}
	if len(s.Layout().Trees) != 2 {
		t.Errorf("Expected 2 trees at width 40, got %d", len(s.Layout().Trees))
	}
	for _, p := range s.Snow().Particles() {
		if p.Row >= 12 || p.Col >= 40 {
			t.Fatalf("Flake %+v outside resized grid", p)
		}
	}

	f := render.NewFrame(0, 0)
	s.Compose(f, render.Bright)
	if f.Width != 40 || f.Height != 12 {
		t.Errorf("Expected frame to follow resize, got %dx%d", f.Width, f.Height)
	}

	if err := s.Resize(0, 12); !errors.Is(err, layout.ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}
}

func TestFancyResizeRecentres(t *testing.T) {
	s, err := New(Fancy, 80, 24, Options{Snow: true}, newRNG())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Resize(100, 24); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if s.LeftPad() != 41 {
		t.Errorf("Expected left pad 41, got %d", s.LeftPad())
	}
	if w, h := s.Size(); w != 18 || h != 15 {
		t.Errorf("Expected fixed 18x15 frame, got %dx%d", w, h)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"forest", Forest, true},
		{"single", Single, true},
		{"fancy", Fancy, true},
		{"tree", Forest, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q): expected (%v, %v), got (%v, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}

func TestModeInterval(t *testing.T) {
	if Forest.Interval() != constants.ForestInterval ||
		Single.Interval() != constants.SingleInterval ||
		Fancy.Interval() != constants.FancyInterval {
		t.Error("Unexpected mode interval")
	}
}
