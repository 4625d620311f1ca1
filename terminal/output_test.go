package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func plainCells(rows ...string) ([]Cell, int, int) {
	width := len(rows[0])
	cells := make([]Cell, 0, width*len(rows))
	for _, row := range rows {
		for _, r := range row {
			cells = append(cells, Cell{Rune: r})
		}
	}
	return cells, width, len(rows)
}

func TestStreamHomeFrameHasNoTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	term := NewStream(&buf, StreamOptions{ColorMode: ColorModeNone, Redraw: RedrawHome})

	cells, w, h := plainCells(" * ", "***", " | ")
	if err := term.Flush(cells, w, h); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, string(csiHome)) {
		t.Fatalf("Expected frame to start with cursor home, got %q", out)
	}
	body := strings.TrimPrefix(out, string(csiHome))

	if strings.HasSuffix(body, "\n") {
		t.Errorf("Expected no line terminator after last row, got %q", body)
	}
	lines := strings.Split(body, "\n")
	if len(lines) != h {
		t.Fatalf("Expected %d rows, got %d", h, len(lines))
	}
	if diff := cmp.Diff([]string{" * ", "***", " | "}, lines); diff != "" {
		t.Errorf("Frame mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamInlineRedrawMovesUp(t *testing.T) {
	var buf bytes.Buffer
	term := NewStream(&buf, StreamOptions{ColorMode: ColorModeNone, Redraw: RedrawInline, LeftPad: 2})

	cells, w, h := plainCells("ab", "cd")
	if err := term.Flush(cells, w, h); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got, want := buf.String(), "  ab\n  cd\n"; got != want {
		t.Errorf("Expected first frame %q, got %q", want, got)
	}

	buf.Reset()
	if err := term.Flush(cells, w, h); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\x1b[2A") {
		t.Errorf("Expected cursor up 2 before redraw, got %q", buf.String())
	}
}

func TestStreamCoalescesForeground(t *testing.T) {
	var buf bytes.Buffer
	term := NewStream(&buf, StreamOptions{ColorMode: ColorMode16, Redraw: RedrawHome})

	cells := []Cell{
		{Rune: '|', Fg: ColorYellow},
		{Rune: '|', Fg: ColorYellow},
		{Rune: ' '},
		{Rune: '*', Fg: ColorRed},
	}
	if err := term.Flush(cells, 4, 1); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	want := "\x1b[H\x1b[33m|| \x1b[31m*\x1b[0m"
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestStreamColorModes(t *testing.T) {
	tests := []struct {
		name string
		mode ColorMode
		want string
	}{
		{"None", ColorModeNone, "*"},
		{"16", ColorMode16, "\x1b[93m*\x1b[0m"},
		{"256", ColorMode256, "\x1b[38;5;227m*\x1b[0m"},
		{"TrueColor", ColorModeTrueColor, "\x1b[38;2;245;245;67m*\x1b[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			term := NewStream(&buf, StreamOptions{ColorMode: tt.mode, Redraw: RedrawInline})
			if err := term.Flush([]Cell{{Rune: '*', Fg: ColorBrightYellow}}, 1, 1); err != nil {
				t.Fatalf("Flush failed: %v", err)
			}
			got := strings.TrimSuffix(buf.String(), "\n")
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStreamShortBuffer(t *testing.T) {
	var buf bytes.Buffer
	term := NewStream(&buf, StreamOptions{})
	if err := term.Flush(make([]Cell, 3), 2, 2); err != ErrShortBuffer {
		t.Errorf("Expected ErrShortBuffer, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing written, got %q", buf.String())
	}
}

func TestStreamLifecycle(t *testing.T) {
	var buf bytes.Buffer
	term := NewStream(&buf, StreamOptions{Redraw: RedrawHome, Clear: true})

	// Fini before Init is a no-op
	term.Fini()
	if buf.Len() != 0 {
		t.Fatalf("Expected no output from Fini before Init, got %q", buf.String())
	}

	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, string(csiCursorHide)) {
		t.Error("Expected Init to hide cursor")
	}
	if !strings.Contains(out, "\x1b[2J") {
		t.Error("Expected Init to clear screen")
	}

	term.Fini()
	term.Fini()
	if n := strings.Count(buf.String(), string(csiCursorShow)); n != 1 {
		t.Errorf("Expected exactly one cursor show, got %d", n)
	}
}

func TestStreamSizeFallback(t *testing.T) {
	term := NewStream(&bytes.Buffer{}, StreamOptions{})
	w, h := term.Size()
	if w != FallbackWidth || h != FallbackHeight {
		t.Errorf("Expected fallback %dx%d, got %dx%d", FallbackWidth, FallbackHeight, w, h)
	}
	if term.Resizes() != nil {
		t.Error("Expected nil resize channel for non-file output")
	}
}

func TestStreamSetLeftPad(t *testing.T) {
	var buf bytes.Buffer
	term := NewStream(&buf, StreamOptions{ColorMode: ColorModeNone, Redraw: RedrawInline, LeftPad: 1})

	padder, ok := term.(Padder)
	if !ok {
		t.Fatal("Expected stream backend to implement Padder")
	}
	padder.SetLeftPad(3)

	cells, w, h := plainCells("x")
	if err := term.Flush(cells, w, h); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got, want := buf.String(), "   x\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

type countingWriter struct {
	writes int
	bytes  int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	c.bytes += len(p)
	return len(p), nil
}

func TestStreamFlushIsOneWrite(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		redraw        RedrawMode
	}{
		{"80x24 home", 80, 24, RedrawHome},
		{"200x60 home", 200, 60, RedrawHome},
		{"300x80 inline", 300, 80, RedrawInline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := make([]Cell, tt.width*tt.height)
			for i := range cells {
				fg := ColorBrightWhite
				if i%2 == 1 {
					fg = ColorRed
				}
				cells[i] = Cell{Rune: '*', Fg: fg}
			}

			out := &countingWriter{}
			term := NewStream(out, StreamOptions{ColorMode: ColorModeTrueColor, Redraw: tt.redraw, LeftPad: 2})

			for frame := 1; frame <= 2; frame++ {
				if err := term.Flush(cells, tt.width, tt.height); err != nil {
					t.Fatalf("Flush failed: %v", err)
				}
				if out.writes != frame {
					t.Errorf("Expected %d writes after frame %d, got %d (%d bytes)", frame, frame, out.writes, out.bytes)
				}
			}
		})
	}
}
