package terminal

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeNone      ColorMode = iota // plain glyphs, no SGR
	ColorMode16                         // basic ANSI codes 30-37 / 90-97
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

var colorModeNames = map[ColorMode]string{
	ColorModeNone:      "none",
	ColorMode16:        "16",
	ColorMode256:       "256",
	ColorModeTrueColor: "truecolor",
}

func (m ColorMode) String() string {
	if s, ok := colorModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseColorMode maps a flag value to a ColorMode
// "auto" is not a mode and is resolved by the caller
func ParseColorMode(s string) (ColorMode, bool) {
	switch strings.ToLower(s) {
	case "none", "off", "mono":
		return ColorModeNone, true
	case "16", "ansi":
		return ColorMode16, true
	case "256":
		return ColorMode256, true
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, true
	}
	return ColorModeNone, false
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Color pairs a 24-bit value with the basic ANSI foreground code closest to it
// The zero Color is the terminal default foreground
type Color struct {
	RGB
	ANSI uint8 // SGR foreground code, 30-37 or 90-97
}

// IsDefault reports whether c leaves the terminal foreground untouched
func (c Color) IsDefault() bool {
	return c == Color{}
}

// Named colors, RGB values follow the common xterm-like palette
var (
	ColorDefault      = Color{}
	ColorRed          = Color{RGB{205, 49, 49}, 31}
	ColorGreen        = Color{RGB{13, 188, 121}, 32}
	ColorYellow       = Color{RGB{229, 229, 16}, 33}
	ColorBlue         = Color{RGB{36, 114, 200}, 34}
	ColorMagenta      = Color{RGB{188, 63, 188}, 35}
	ColorCyan         = Color{RGB{17, 168, 205}, 36}
	ColorBrightYellow = Color{RGB{245, 245, 67}, 93}
	ColorBrightWhite  = Color{RGB{255, 255, 255}, 97}
)

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubeIndex maps 0-255 to the nearest cube level 0-5
func cubeIndex(v uint8) uint8 {
	best := 0
	bestDist := abs(int(v) - int(cubeValues[0]))
	for j := 1; j < 6; j++ {
		if d := abs(int(v) - int(cubeValues[j])); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return uint8(best)
}

// RGBTo256 converts RGB to the nearest xterm-256 palette index
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B
	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)

	// Grayscale ramp 232-255 covers luminance 8..238 in steps of 10
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))
	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := 232 + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}
		if grayIdx < 232 {
			grayIdx = 232
		}
		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)
		cubeDist := abs(int(r)-int(cubeValues[cr])) +
			abs(int(g)-int(cubeValues[cg])) +
			abs(int(b)-int(cubeValues[cb]))
		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cr + 6*cg + cb
}

// paletteIndex maps the basic ANSI code to the 0-15 palette slot
func (c Color) paletteIndex() int {
	switch {
	case c.ANSI >= 30 && c.ANSI <= 37:
		return int(c.ANSI - 30)
	case c.ANSI >= 90 && c.ANSI <= 97:
		return int(c.ANSI-90) + 8
	}
	return int(RGBTo256(c.RGB))
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorModeNone
	}

	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "dumb":
		return ColorModeNone
	case strings.Contains(term, "truecolor"),
		strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return ColorModeTrueColor
	case strings.Contains(term, "256"):
		return ColorMode256
	}

	return ColorMode16
}
