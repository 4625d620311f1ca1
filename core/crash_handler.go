// Package core holds process-wide crash handling.
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/evergreen/terminal"
)

var (
	crashMu       sync.Mutex
	crashTerminal terminal.Terminal

	// Replaced in tests
	crashOut  io.Writer = os.Stderr
	resetOut  io.Writer = os.Stdout
	crashExit           = os.Exit
)

// SetCrashTerminal registers the active terminal so a crash restores it through Fini
// Pass nil once the terminal has been finalized
func SetCrashTerminal(t terminal.Terminal) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashMu.Unlock()

	// Restore terminal to sane state immediately
	if t != nil {
		t.Fini()
	} else {
		terminal.EmergencyReset(resetOut)
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	crashExit(1)
}

// Install routes panics from terminal backend goroutines through HandleCrash
func Install() {
	terminal.SetCrashHandler(HandleCrash)
}
