// Package layout places tree masks side by side along the bottom of the screen.
package layout

import (
	"errors"
	"math/rand/v2"

	"github.com/lixenwraith/evergreen/glyph"
)

// DefaultSpacing is the column gap between neighbouring trees
const DefaultSpacing = 4

// ErrInvalidSize rejects grids without at least one row and column
var ErrInvalidSize = errors.New("layout: terminal width and height must be at least 1")

// PlacedTree is a mask at a horizontal offset
type PlacedTree struct {
	X    int
	Mask glyph.Mask
}

// Height returns the tree's row count
func (t PlacedTree) Height() int {
	return t.Mask.Height()
}

// Options tunes a layout pass
type Options struct {
	// Spacing between trees in columns, negative values use DefaultSpacing
	Spacing int
	// MaxTrees caps the slot count, 0 means as many as fit
	MaxTrees int
	// Fixed forces every slot to Variant instead of a random draw
	Fixed   bool
	Variant glyph.Variant
}

// Layout is the arrangement of trees for one grid size
type Layout struct {
	Width      int
	Height     int
	BandHeight int
	BandTop    int
	Trees      []PlacedTree
}

// Compute fits as many trees as possible across width, centers them and
// bottom-aligns them in a shared band. Variants are drawn from rng per slot.
func Compute(width, height int, lib glyph.Library, opts Options, rng *rand.Rand) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, ErrInvalidSize
	}

	spacing := opts.Spacing
	if spacing < 0 {
		spacing = DefaultSpacing
	}
	gw := lib.Width()

	count := max(1, (width+spacing)/(gw+spacing))
	if opts.MaxTrees > 0 {
		count = min(count, opts.MaxTrees)
	}

	totalWidth := count*gw + (count-1)*spacing
	leftMargin := max(0, (width-totalWidth)/2)

	lay := Layout{
		Width:  width,
		Height: height,
		Trees:  make([]PlacedTree, count),
	}
	for i := range lay.Trees {
		mask := lib.Get(opts.Variant)
		if !opts.Fixed {
			mask = lib.Pick(rng)
		}
		lay.Trees[i] = PlacedTree{
			X:    leftMargin + i*(gw+spacing),
			Mask: mask,
		}
		lay.BandHeight = max(lay.BandHeight, mask.Height())
	}

	if height >= lay.BandHeight {
		lay.BandTop = height - lay.BandHeight
	}

	return lay, nil
}

// TreeAt finds the tree covering a grid cell.
// ok is false outside every tree's columns or bottom-aligned rows.
// The returned glyph may still be transparent.
func (l *Layout) TreeAt(row, col int) (tree *PlacedTree, localRow, localCol int, ok bool) {
	if row >= l.Height || row < l.BandTop || row >= l.BandTop+l.BandHeight {
		return nil, 0, 0, false
	}
	bandRow := row - l.BandTop

	for i := range l.Trees {
		t := &l.Trees[i]
		w := t.Mask.Width()
		if col < t.X || col >= t.X+w {
			continue
		}

		h := t.Height()
		lr := bandRow - (l.BandHeight - h)
		if lr < 0 || lr >= h {
			continue
		}
		return t, lr, col - t.X, true
	}
	return nil, 0, 0, false
}
