package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, w, h int, mode ColorMode) (tcell.SimulationScreen, Terminal) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	term := NewScreenFrom(sim, mode)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(term.Fini)
	return sim, term
}

func TestScreenFlushDrawsCells(t *testing.T) {
	sim, term := newSimTerminal(t, 3, 2, ColorModeTrueColor)

	cells := []Cell{
		{Rune: ' '}, {Rune: '*', Fg: ColorBrightYellow}, {Rune: 0},
		{Rune: '|', Fg: ColorYellow}, {Rune: '|', Fg: ColorYellow}, {Rune: '.'},
	}
	if err := term.Flush(cells, 3, 2); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	contents, w, h := sim.GetContents()
	if w != 3 || h != 2 {
		t.Fatalf("Expected 3x2 screen, got %dx%d", w, h)
	}

	want := " * ||."
	for i, c := range contents {
		if len(c.Runes) == 0 || c.Runes[0] != rune(want[i]) {
			t.Errorf("Cell %d: expected %q, got %v", i, want[i], c.Runes)
		}
	}

	fg, _, _ := contents[1].Style.Decompose()
	r, g, b := fg.RGB()
	if r != 245 || g != 245 || b != 67 {
		t.Errorf("Expected star color (245,245,67), got (%d,%d,%d)", r, g, b)
	}

	if _, _, visible := sim.GetCursor(); visible {
		t.Error("Expected cursor hidden")
	}
}

func TestScreenStyleModes(t *testing.T) {
	s := NewScreenFrom(tcell.NewSimulationScreen(""), ColorMode16).(*screenTerminal)

	fg, _, _ := s.style(ColorRed).Decompose()
	if fg != tcell.PaletteColor(1) {
		t.Errorf("Expected palette color 1 for red in 16 mode, got %v", fg)
	}
	fg, _, _ = s.style(ColorBrightWhite).Decompose()
	if fg != tcell.PaletteColor(15) {
		t.Errorf("Expected palette color 15 for bright white, got %v", fg)
	}

	s.mode = ColorModeNone
	if s.style(ColorRed) != tcell.StyleDefault {
		t.Error("Expected default style in none mode")
	}
}

func TestScreenStopKeyInterrupts(t *testing.T) {
	sim, term := newSimTerminal(t, 10, 5, ColorModeNone)

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	select {
	case <-term.Interrupts():
	case <-time.After(2 * time.Second):
		t.Fatal("Expected interrupt after Ctrl-C")
	}
}

func TestScreenOtherKeysIgnored(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		stop bool
	}{
		{"Escape", tcell.KeyEscape, 0, true},
		{"q", tcell.KeyRune, 'q', true},
		{"x", tcell.KeyRune, 'x', false},
		{"Enter", tcell.KeyEnter, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
			if got := isStopKey(ev); got != tt.stop {
				t.Errorf("Expected stop=%v, got %v", tt.stop, got)
			}
		})
	}
}

func TestScreenFiniIdempotent(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	term := NewScreenFrom(sim, ColorModeNone)
	term.Fini()
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	term.Fini()
	term.Fini()
}
