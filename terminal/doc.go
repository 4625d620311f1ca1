// Package terminal is the terminal control boundary for the animation.
//
// Two backends implement Terminal:
//   - Stream: direct ANSI output on an io.Writer, one buffered write per frame.
//     Home mode repositions the cursor to the top-left and never emits a line
//     terminator after the last row, so a full-screen frame cannot scroll.
//     Inline mode redraws in place by moving the cursor up over the previous frame.
//   - Screen: a tcell.Screen owning raw mode and the alternate screen.
//
// Colors are carried as Color values and downgraded per ColorMode on output.
package terminal
