//go:build !unix

package terminal

func querySize(fd int) (int, int, bool) {
	return 0, 0, false
}

func isTerminal(fd int) bool {
	return false
}

// resizeHandler is inert where SIGWINCH does not exist
type resizeHandler struct {
	eventCh chan ResizeEvent
}

func newResizeHandler(fd int) *resizeHandler {
	return &resizeHandler{eventCh: make(chan ResizeEvent)}
}

func (r *resizeHandler) start() {}

func (r *resizeHandler) stop() {}

func (r *resizeHandler) events() <-chan ResizeEvent {
	return r.eventCh
}
