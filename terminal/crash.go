package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu      sync.Mutex
	crashHandler func(any)
)

// SetCrashHandler installs the handler that receives panics from backend goroutines
// Pass nil to restore the built-in reset and exit
func SetCrashHandler(fn func(any)) {
	crashMu.Lock()
	crashHandler = fn
	crashMu.Unlock()
}

// Go runs fn in a new goroutine, a panic is routed to the crash handler
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handleCrash(r)
			}
		}()
		fn()
	}()
}

func handleCrash(r any) {
	crashMu.Lock()
	h := crashHandler
	crashMu.Unlock()

	if h != nil {
		h(r)
		return
	}

	EmergencyReset(os.Stdout)
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mBACKEND CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
