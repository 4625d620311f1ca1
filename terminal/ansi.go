package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments
var (
	csi     = []byte("\x1b[")
	csiSGR0 = []byte("\x1b[0m")
	csiHome = []byte("\x1b[H")
	// Clear then home, cursor position after 2J is terminal dependent
	csiClear = []byte("\x1b[2J\x1b[H")

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// DECAWM: Auto-Wrap Mode
	// ?7l keeps the cursor at the right edge instead of wrapping, so a full last row cannot scroll
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	csiFg256 = []byte("\x1b[38;5;") // followed by N m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B m
)

const (
	// maxCellBytes is the longest cell encoding, a truecolor foreground plus a 4-byte rune
	maxCellBytes = len("\x1b[38;2;255;255;255m") + 4
	// maxCursorBytes covers csiHome and a cursor-up with any row count
	maxCursorBytes = 24
)

// frameBytes is an upper bound on the encoded size of one frame
func frameBytes(width, height, leftPad int) int {
	row := leftPad + width*maxCellBytes + len(csiSGR0) + 1
	return maxCursorBytes + height*row
}

// writeInt writes a non-negative integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorUp moves the cursor up n rows, column unchanged
func writeCursorUp(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('A')
}

// writeFg emits the foreground sequence for c in the given mode
// Caller guarantees mode != ColorModeNone and !c.IsDefault()
func writeFg(w *bufio.Writer, c Color, mode ColorMode) {
	switch mode {
	case ColorMode16:
		w.Write(csi)
		writeInt(w, int(c.ANSI))
		w.WriteByte('m')
	case ColorMode256:
		w.Write(csiFg256)
		writeInt(w, int(RGBTo256(c.RGB)))
		w.WriteByte('m')
	default:
		w.Write(csiFgRGB)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		w.WriteByte('m')
	}
}
