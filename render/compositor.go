// Package render composes trees, lights and snow into terminal cells.
package render

import (
	"math/rand/v2"

	"github.com/lixenwraith/evergreen/glyph"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/terminal"
)

// Compositor resolves each grid cell to a glyph and color
// Light colors carry no state between frames, every foliage cell is redrawn at random
type Compositor struct {
	palette Palette
	rng     *rand.Rand
}

// NewCompositor creates a compositor drawing light colors from rng
func NewCompositor(palette Palette, rng *rand.Rand) *Compositor {
	return &Compositor{
		palette: palette,
		rng:     rng,
	}
}

// Palette returns the compositor palette
func (c *Compositor) Palette() Palette {
	return c.palette
}

// Cell resolves one grid position
// snow is a row-major occupancy grid of the layout's dimensions, nil for no snow
func (c *Compositor) Cell(row, col int, lay *layout.Layout, snow []bool, blink Blink) terminal.Cell {
	if tree, lr, lc, ok := lay.TreeAt(row, col); ok {
		switch r := tree.Mask.At(lr, lc); r {
		case glyph.Transparent:
			// Fall through to sky
		case glyph.Foliage:
			if lr == 0 && !c.palette.PlainStar {
				return terminal.Cell{Rune: r, Fg: c.palette.Star(blink)}
			}
			return terminal.Cell{Rune: r, Fg: c.light()}
		case glyph.Trunk:
			return terminal.Cell{Rune: r, Fg: c.palette.Trunk}
		default:
			return terminal.Cell{Rune: r}
		}
	}

	if i := row*lay.Width + col; i < len(snow) && snow[i] {
		return terminal.Cell{Rune: glyph.Snow, Fg: c.palette.Snow}
	}
	return terminal.Cell{Rune: ' '}
}

// light draws a bulb color
func (c *Compositor) light() terminal.Color {
	if len(c.palette.Lights) == 0 {
		return terminal.ColorDefault
	}
	return c.palette.Lights[c.rng.IntN(len(c.palette.Lights))]
}

// Compose fills f in row-major order, f is resized to the layout when needed
func (c *Compositor) Compose(f *Frame, lay *layout.Layout, snow []bool, blink Blink) {
	if f.Width != lay.Width || f.Height != lay.Height {
		f.Resize(lay.Width, lay.Height)
	}

	for y := 0; y < f.Height; y++ {
		row := f.Cells[y*f.Width : (y+1)*f.Width]
		for x := range row {
			row[x] = c.Cell(y, x, lay, snow, blink)
		}
	}
}
