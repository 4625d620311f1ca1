package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/lixenwraith/evergreen/constants"
)

// RedrawMode selects how a frame overwrites the previous one
type RedrawMode uint8

const (
	// RedrawHome moves the cursor to the top-left and separates rows with newlines,
	// the last row is never terminated
	RedrawHome RedrawMode = iota
	// RedrawInline terminates every row and moves the cursor up over the previous frame
	RedrawInline
)

// StreamOptions configures the ANSI stream backend
type StreamOptions struct {
	ColorMode ColorMode
	Redraw    RedrawMode
	// Clear wipes the screen on Init
	Clear bool
	// LeftPad is written as spaces before every row
	LeftPad int
}

// streamTerminal writes frames as a plain ANSI byte stream
type streamTerminal struct {
	out    io.Writer
	writer *bufio.Writer
	fd     int // -1 when out is not a file
	opts   StreamOptions

	resize *resizeHandler

	mu          sync.Mutex
	initialized bool
	finalized   bool

	// Redraw state
	drawn      bool
	lastHeight int

	// Style state for coalescing
	lastFg Color
	styled bool
}

// NewStream creates an ANSI stream terminal writing to out
func NewStream(out io.Writer, opts StreamOptions) Terminal {
	fd := -1
	if f, ok := out.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &streamTerminal{
		out:    out,
		writer: bufio.NewWriterSize(out, constants.OutputBufferSize),
		fd:     fd,
		opts:   opts,
	}
}

// Init hides the cursor and optionally clears the screen
func (s *streamTerminal) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	w := s.writer
	if s.opts.Redraw == RedrawHome {
		w.Write(csiAutoWrapOff)
	}
	if s.opts.Clear {
		w.Write(csiClear)
	}
	w.Write(csiCursorHide)
	if err := w.Flush(); err != nil {
		return err
	}

	if s.fd >= 0 && isTerminal(s.fd) {
		s.resize = newResizeHandler(s.fd)
		s.resize.start()
	}

	s.initialized = true
	return nil
}

// Fini shows the cursor again
func (s *streamTerminal) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}

	if s.resize != nil {
		s.resize.stop()
	}

	w := s.writer
	w.Write(csiSGR0)
	if s.opts.Redraw == RedrawHome {
		w.Write(csiAutoWrapOn)
	}
	w.Write(csiCursorShow)
	if s.opts.Redraw == RedrawHome {
		// Leave the shell prompt below the last frame row
		w.WriteByte('\n')
	}
	w.Flush()

	s.finalized = true
}

// Size returns the dimensions of the terminal behind out
func (s *streamTerminal) Size() (int, int) {
	if s.fd >= 0 {
		if w, h, ok := querySize(s.fd); ok {
			return w, h
		}
	}
	return FallbackWidth, FallbackHeight
}

// SetLeftPad changes the row margin from the next Flush on
func (s *streamTerminal) SetLeftPad(n int) {
	s.mu.Lock()
	s.opts.LeftPad = max(0, n)
	s.mu.Unlock()
}

func (s *streamTerminal) Resizes() <-chan ResizeEvent {
	if s.resize == nil {
		return nil
	}
	return s.resize.events()
}

func (s *streamTerminal) Interrupts() <-chan struct{} {
	return nil
}

// Flush writes the whole frame with a single buffered write
func (s *streamTerminal) Flush(cells []Cell, width, height int) error {
	if len(cells) < width*height {
		return ErrShortBuffer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The writer is empty between frames, grow it so the frame leaves in one write
	if need := frameBytes(width, height, s.opts.LeftPad); s.writer.Size() < need {
		s.writer = bufio.NewWriterSize(s.out, need)
	}
	w := s.writer

	switch s.opts.Redraw {
	case RedrawHome:
		w.Write(csiHome)
	case RedrawInline:
		if s.drawn {
			writeCursorUp(w, s.lastHeight)
		}
	}

	for y := 0; y < height; y++ {
		for i := 0; i < s.opts.LeftPad; i++ {
			w.WriteByte(' ')
		}

		row := cells[y*width : y*width+width]
		for _, c := range row {
			s.writeCell(w, c)
		}

		// Row boundaries are unstyled
		if s.styled {
			w.Write(csiSGR0)
			s.styled = false
		}

		if s.opts.Redraw == RedrawInline || y < height-1 {
			w.WriteByte('\n')
		}
	}

	s.drawn = true
	s.lastHeight = height

	return w.Flush()
}

// writeCell emits one cell, switching style only when the foreground changes
func (s *streamTerminal) writeCell(w *bufio.Writer, c Cell) {
	r := c.Rune
	if r == 0 {
		r = ' '
	}

	// Foreground has no effect on blanks
	if r != ' ' {
		if s.opts.ColorMode == ColorModeNone || c.Fg.IsDefault() {
			if s.styled {
				w.Write(csiSGR0)
				s.styled = false
			}
		} else if !s.styled || c.Fg != s.lastFg {
			writeFg(w, c.Fg, s.opts.ColorMode)
			s.lastFg = c.Fg
			s.styled = true
		}
	}

	if r < 0x80 {
		w.WriteByte(byte(r))
	} else {
		w.WriteRune(r)
	}
}
