package render

import (
	"github.com/lixenwraith/evergreen/terminal"
)

// Palette assigns colors to glyph classes
type Palette struct {
	// Lights are drawn uniformly for every foliage cell on every frame
	Lights []terminal.Color

	StarBright terminal.Color
	StarDim    terminal.Color
	Trunk      terminal.Color
	Snow       terminal.Color

	// PlainStar draws the star as an ordinary light, ignoring the blink phase
	PlainStar bool
}

// DefaultPalette is the classic six-bulb string with a yellow star
func DefaultPalette() Palette {
	return Palette{
		Lights: []terminal.Color{
			terminal.ColorRed,
			terminal.ColorGreen,
			terminal.ColorYellow,
			terminal.ColorBlue,
			terminal.ColorMagenta,
			terminal.ColorCyan,
		},
		StarBright: terminal.ColorBrightYellow,
		StarDim:    terminal.ColorBrightWhite,
		Trunk:      terminal.ColorYellow,
		Snow:       terminal.ColorBrightWhite,
	}
}

// Star returns the star color for a blink phase
func (p Palette) Star(b Blink) terminal.Color {
	if b == Bright {
		return p.StarBright
	}
	return p.StarDim
}

// Blink is the star's two-state oscillator, the zero value is Bright
type Blink uint8

const (
	Bright Blink = iota
	Dim
)

func (b Blink) String() string {
	if b == Bright {
		return "bright"
	}
	return "dim"
}

// Toggle returns the opposite phase
func (b Blink) Toggle() Blink {
	if b == Bright {
		return Dim
	}
	return Bright
}
