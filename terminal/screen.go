package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/evergreen/constants"
)

// screenTerminal draws frames into a tcell.Screen
// The screen owns raw mode, so Ctrl-C arrives as a key event and is reported on Interrupts
type screenTerminal struct {
	screen tcell.Screen
	mode   ColorMode

	resizeCh    chan ResizeEvent
	interruptCh chan struct{}
	interrupt   sync.Once

	quitCh chan struct{}
	doneCh chan struct{}

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewScreen creates a tcell backed terminal for the controlling tty
func NewScreen(mode ColorMode) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewScreenFrom(screen, mode), nil
}

// NewScreenFrom wraps an existing screen, used with tcell.NewSimulationScreen in tests
func NewScreenFrom(screen tcell.Screen, mode ColorMode) Terminal {
	return &screenTerminal{
		screen:      screen,
		mode:        mode,
		resizeCh:    make(chan ResizeEvent, 1),
		interruptCh: make(chan struct{}),
		quitCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

func (s *screenTerminal) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	s.screen.SetStyle(tcell.StyleDefault)
	s.screen.HideCursor()
	s.screen.Clear()

	events := make(chan tcell.Event, constants.EventQueueSize)
	Go(func() { s.screen.ChannelEvents(events, s.quitCh) })
	Go(func() { s.pump(events) })

	s.initialized = true
	return nil
}

// pump translates tcell events until the event channel closes
func (s *screenTerminal) pump(events <-chan tcell.Event) {
	defer close(s.doneCh)

	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			select {
			case s.resizeCh <- ResizeEvent{Width: w, Height: h}:
			default:
				select {
				case <-s.resizeCh:
				default:
				}
				select {
				case s.resizeCh <- ResizeEvent{Width: w, Height: h}:
				default:
				}
			}
		case *tcell.EventKey:
			if isStopKey(ev) {
				s.interrupt.Do(func() { close(s.interruptCh) })
			}
		}
	}
}

func isStopKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Fini restores the terminal, tcell shows the cursor again on Fini
func (s *screenTerminal) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}

	close(s.quitCh)
	<-s.doneCh

	s.screen.Fini()
	s.finalized = true
}

func (s *screenTerminal) Size() (int, int) {
	return s.screen.Size()
}

func (s *screenTerminal) Resizes() <-chan ResizeEvent {
	return s.resizeCh
}

func (s *screenTerminal) Interrupts() <-chan struct{} {
	return s.interruptCh
}

// Flush copies cells into the screen back buffer and shows it
func (s *screenTerminal) Flush(cells []Cell, width, height int) error {
	if len(cells) < width*height {
		return ErrShortBuffer
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := cells[y*width+x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			s.screen.SetContent(x, y, r, nil, s.style(c.Fg))
		}
	}
	s.screen.Show()
	return nil
}

// style converts a Color to a tcell style for the configured mode
func (s *screenTerminal) style(c Color) tcell.Style {
	if s.mode == ColorModeNone || c.IsDefault() {
		return tcell.StyleDefault
	}
	switch s.mode {
	case ColorMode16:
		return tcell.StyleDefault.Foreground(tcell.PaletteColor(c.paletteIndex()))
	case ColorMode256:
		return tcell.StyleDefault.Foreground(tcell.PaletteColor(int(RGBTo256(c.RGB))))
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}
