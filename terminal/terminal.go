package terminal

import (
	"errors"
	"io"
	"os"
)

// Fallback dimensions when the size query fails
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// ErrShortBuffer is returned by Flush when cells cannot cover width*height
var ErrShortBuffer = errors.New("terminal: cell buffer smaller than frame")

// Cell represents a single terminal cell
// Rune 0 renders as a space
type Cell struct {
	Rune rune
	Fg   Color
}

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// Terminal is the output surface the render loop drives
type Terminal interface {
	// Init hides the cursor and prepares the screen
	Init() error

	// Fini restores cursor visibility and terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Flush writes one full frame, cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int) error

	// Resizes delivers terminal size changes, nil if unsupported
	Resizes() <-chan ResizeEvent

	// Interrupts is closed when the backend itself observed a stop request, nil if unsupported
	Interrupts() <-chan struct{}
}

// Padder is implemented by backends that can indent every row
type Padder interface {
	SetLeftPad(n int)
}

// EmergencyReset writes the minimal restore sequence, used on crash paths
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
