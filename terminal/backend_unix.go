//go:build unix

package terminal

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// querySize returns terminal dimensions for fd
// Falls back to the stdin winsize when fd is redirected
func querySize(fd int) (int, int, bool) {
	if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
		return w, h, true
	}
	ws, err := unix.IoctlGetWinsize(unix.Stdin, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 0, 0, false
	}
	return int(ws.Col), int(ws.Row), true
}

func isTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// resizeHandler manages SIGWINCH signals
type resizeHandler struct {
	fd      int
	sigCh   chan os.Signal
	eventCh chan ResizeEvent
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// newResizeHandler creates a resize handler for the given fd
func newResizeHandler(fd int) *resizeHandler {
	return &resizeHandler{
		fd:      fd,
		sigCh:   make(chan os.Signal, 1),
		eventCh: make(chan ResizeEvent, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// start begins listening for SIGWINCH
func (r *resizeHandler) start() {
	signal.Notify(r.sigCh, unix.SIGWINCH)
	Go(r.watchLoop)
}

// stop stops the resize handler
func (r *resizeHandler) stop() {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh
}

// events returns the resize event channel
func (r *resizeHandler) events() <-chan ResizeEvent {
	return r.eventCh
}

// watchLoop monitors for resize signals
func (r *resizeHandler) watchLoop() {
	defer close(r.doneCh)

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			w, h, ok := querySize(r.fd)
			if !ok {
				continue
			}
			// Non-blocking send, latest size replaces an unconsumed one
			select {
			case r.eventCh <- ResizeEvent{Width: w, Height: h}:
			default:
				select {
				case <-r.eventCh:
				default:
				}
				select {
				case r.eventCh <- ResizeEvent{Width: w, Height: h}:
				default:
				}
			}
		}
	}
}
