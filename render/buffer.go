package render

import (
	"strings"

	"github.com/lixenwraith/evergreen/terminal"
)

// Frame is a row-major cell grid, reused between ticks
type Frame struct {
	Width  int
	Height int
	Cells  []terminal.Cell
}

// NewFrame creates a blank frame
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize adjusts frame dimensions, reallocates only if capacity insufficient
func (f *Frame) Resize(width, height int) {
	size := width * height
	if cap(f.Cells) < size {
		f.Cells = make([]terminal.Cell, size)
	} else {
		f.Cells = f.Cells[:size]
	}
	f.Width = width
	f.Height = height
	f.Clear()
}

// Clear blanks every cell using exponential copy
func (f *Frame) Clear() {
	if len(f.Cells) == 0 {
		return
	}
	f.Cells[0] = terminal.Cell{Rune: ' '}
	for filled := 1; filled < len(f.Cells); filled *= 2 {
		copy(f.Cells[filled:], f.Cells[:filled])
	}
}

// inBounds returns true if in frame bounds
func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// At returns the cell at column x, row y, blank when out of bounds
func (f *Frame) At(x, y int) terminal.Cell {
	if !f.inBounds(x, y) {
		return terminal.Cell{Rune: ' '}
	}
	return f.Cells[y*f.Width+x]
}

// Lines returns the frame glyphs as one uncolored string per row
func (f *Frame) Lines() []string {
	lines := make([]string, f.Height)
	var sb strings.Builder
	for y := 0; y < f.Height; y++ {
		sb.Reset()
		for _, c := range f.Cells[y*f.Width : (y+1)*f.Width] {
			if c.Rune == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(c.Rune)
		}
		lines[y] = sb.String()
	}
	return lines
}
