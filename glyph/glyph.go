// Package glyph holds the evergreen tree masks.
//
// Every mask shares the base width. Row 0 is the star row and the last two
// rows are trunk rows; variants only select or repeat rows of the base.
package glyph

import (
	"math/rand/v2"
)

// Glyph runes with special meaning in a mask
const (
	Foliage     = '*'
	Trunk       = '|'
	Transparent = ' '
	Snow        = '.'
)

// Base is the medium evergreen, 10 rows by 18 columns
var Base = Mask{
	Variant: Medium,
	Rows: []string{
		"        *         ",
		"       ***        ",
		"      *****       ",
		"     *******      ",
		"    *********     ",
		"   ***********    ",
		"  *************   ",
		" ***************  ",
		"       |||        ",
		"       |||        ",
	},
}

// Variant names a tree size
type Variant uint8

const (
	Small Variant = iota
	Medium
	Large
)

var variantNames = [...]string{"small", "medium", "large"}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// Row selections applied to Base
var (
	smallRows = []int{0, 2, 4, 6, 8, 9}
	largeRows = []int{0, 1, 2, 3, 3, 4, 4, 5, 6, 7, 8, 9}
)

// Mask is a fixed grid of glyph rows, spaces are transparent
type Mask struct {
	Variant Variant
	Rows    []string
}

// Height returns the number of rows
func (m Mask) Height() int {
	return len(m.Rows)
}

// Width returns the column count shared by all rows
func (m Mask) Width() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// At returns the glyph at local row and column, Transparent when out of range
func (m Mask) At(row, col int) rune {
	if row < 0 || row >= len(m.Rows) || col < 0 || col >= len(m.Rows[row]) {
		return Transparent
	}
	return rune(m.Rows[row][col])
}

// Derive builds a mask from base rows picked by index, duplicates allowed
func Derive(base Mask, rows []int, v Variant) Mask {
	out := make([]string, len(rows))
	for i, idx := range rows {
		out[i] = base.Rows[idx]
	}
	return Mask{Variant: v, Rows: out}
}

// Library holds every variant derived from one base template
type Library struct {
	width    int
	variants [3]Mask
}

// NewLibrary derives small, medium and large from Base
func NewLibrary() Library {
	base := Base
	return Library{
		width: base.Width(),
		variants: [3]Mask{
			Small:  Derive(base, smallRows, Small),
			Medium: Derive(base, identityRows(base.Height()), Medium),
			Large:  Derive(base, largeRows, Large),
		},
	}
}

func identityRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// Width returns the column count shared by all variants
func (l Library) Width() int {
	return l.width
}

// Get returns the mask for a variant
func (l Library) Get(v Variant) Mask {
	return l.variants[v]
}

// Pick draws a variant uniformly
func (l Library) Pick(rng *rand.Rand) Mask {
	return l.variants[rng.IntN(len(l.variants))]
}
