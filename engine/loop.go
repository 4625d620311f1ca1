// Package engine drives the animation: tick, compose, flush, sleep.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/evergreen/render"
	"github.com/lixenwraith/evergreen/scene"
	"github.com/lixenwraith/evergreen/terminal"
	"go.uber.org/zap"
)

// State is the loop lifecycle
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

var stateNames = [...]string{"idle", "running", "stopped"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// StopReason records why Run returned
type StopReason uint8

const (
	StopNone StopReason = iota
	StopCanceled
	StopInterrupted
	StopMaxFrames
	StopError
)

var stopReasonNames = [...]string{"none", "canceled", "interrupted", "max_frames", "error"}

func (r StopReason) String() string {
	if int(r) < len(stopReasonNames) {
		return stopReasonNames[r]
	}
	return "unknown"
}

// Chimer rings once per call without blocking
type Chimer interface {
	Ring()
}

// Options tunes the loop
type Options struct {
	// Interval between frames, zero uses the scene mode's interval
	Interval time.Duration
	// MaxFrames stops the loop after that many frames, zero runs until stopped
	MaxFrames int
	// BellEvery rings Chimes on every Nth frame that shows a bright star
	BellEvery int
	Chimes    Chimer

	Logger *zap.Logger
	Clock  Clock
}

// Stats summarises a run
type Stats struct {
	Frames  int
	Resizes int
	Bells   int
	Reason  StopReason
	Elapsed time.Duration
}

// Loop owns the scene, the frame buffer and the blink phase
// Only the goroutine calling Run touches them
type Loop struct {
	term  terminal.Terminal
	scene *scene.Scene
	opts  Options
	log   *zap.Logger
	clock Clock

	frame *render.Frame
	blink render.Blink

	state    atomic.Int32
	finiOnce sync.Once

	stats Stats
}

// NewLoop wires a terminal and a scene
func NewLoop(term terminal.Terminal, sc *scene.Scene, opts Options) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = sc.Mode().Interval()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	w, h := sc.Size()
	return &Loop{
		term:  term,
		scene: sc,
		opts:  opts,
		log:   logger.Named("loop"),
		clock: clock,
		frame: render.NewFrame(w, h),
	}
}

// State returns the lifecycle state, safe from any goroutine
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Stats returns the run summary, valid after Run returns
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run animates until ctx is canceled, the backend reports an interrupt, or
// MaxFrames is reached. The terminal is restored exactly once on every path.
// A stop request is only observed between frames.
func (l *Loop) Run(ctx context.Context) error {
	if !l.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return fmt.Errorf("loop already %s", l.State())
	}

	if err := l.term.Init(); err != nil {
		l.state.Store(int32(StateStopped))
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer l.stop()

	start := l.clock.Now()
	w, h := l.scene.Size()
	l.log.Info("run started",
		zap.Stringer("mode", l.scene.Mode()),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("trees", len(l.scene.Layout().Trees)),
		zap.Duration("interval", l.opts.Interval),
	)

	timer := time.NewTimer(l.opts.Interval)
	timer.Stop()
	defer timer.Stop()

	var err error
	for {
		if l.opts.MaxFrames > 0 && l.stats.Frames >= l.opts.MaxFrames {
			l.stats.Reason = StopMaxFrames
			break
		}

		if err = l.tick(); err != nil {
			l.stats.Reason = StopError
			break
		}

		if reason := l.sleep(ctx, timer); reason != StopNone {
			l.stats.Reason = reason
			break
		}
	}

	l.stats.Elapsed = l.clock.Now().Sub(start)
	spawned, evicted := l.scene.Snow().Stats()
	l.log.Info("run stopped",
		zap.Stringer("reason", l.stats.Reason),
		zap.Int("frames", l.stats.Frames),
		zap.Int("resizes", l.stats.Resizes),
		zap.Int("bells", l.stats.Bells),
		zap.Int("flakes_spawned", spawned),
		zap.Int("flakes_evicted", evicted),
		zap.Duration("elapsed", l.stats.Elapsed),
		zap.Error(err),
	)
	return err
}

// tick advances, composes and flushes one frame
func (l *Loop) tick() error {
	l.scene.Step()
	l.scene.Compose(l.frame, l.blink)

	if err := l.term.Flush(l.frame.Cells, l.frame.Width, l.frame.Height); err != nil {
		return fmt.Errorf("flushing frame %d: %w", l.stats.Frames, err)
	}

	if l.blink == render.Bright && l.opts.Chimes != nil && l.opts.BellEvery > 0 &&
		l.stats.Frames%l.opts.BellEvery == 0 {
		l.opts.Chimes.Ring()
		l.stats.Bells++
	}

	l.blink = l.blink.Toggle()
	l.stats.Frames++
	return nil
}

// sleep waits one interval, applying resizes as they arrive
// Returns the stop reason or StopNone when the next frame is due
func (l *Loop) sleep(ctx context.Context, timer *time.Timer) StopReason {
	timer.Reset(l.opts.Interval)

	for {
		select {
		case <-ctx.Done():
			return StopCanceled
		case <-l.term.Interrupts():
			return StopInterrupted
		case ev := <-l.term.Resizes():
			l.resize(ev)
		case <-timer.C:
			return StopNone
		}
	}
}

// resize re-lays the scene for the new terminal size
func (l *Loop) resize(ev terminal.ResizeEvent) {
	if err := l.scene.Resize(ev.Width, ev.Height); err != nil {
		l.log.Warn("resize ignored", zap.Int("width", ev.Width), zap.Int("height", ev.Height), zap.Error(err))
		return
	}
	if p, ok := l.term.(terminal.Padder); ok {
		p.SetLeftPad(l.scene.LeftPad())
	}
	l.stats.Resizes++

	w, h := l.scene.Size()
	l.frame.Resize(w, h)
	l.log.Debug("resized",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("trees", len(l.scene.Layout().Trees)),
	)
}

// stop restores the terminal once
func (l *Loop) stop() {
	l.finiOnce.Do(func() {
		l.state.Store(int32(StateStopped))
		l.term.Fini()
	})
}
