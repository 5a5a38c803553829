// Package glyph compresses the 16x16 pixel canvas into a 16x8 grid of
// terminal cells. Each cell covers two vertically stacked pixels and is
// drawn with a half-block or full-block character.
package glyph

import (
	"strings"

	"github.com/rook-computer/termclock/internal/clock"
)

// Grid dimensions in cells. Columns map 1:1 to canvas x, rows 2:1 to canvas y.
const (
	Columns = clock.CanvasWidth
	Rows    = clock.CanvasHeight / 2
)

// Cell is the content of one grid position.
//
// The values form a lattice: Space < Upper, Lower < Full. Merging only moves
// a cell upwards, so Full is saturated.
type Cell uint8

const (
	Space Cell = iota
	Upper
	Lower
	Full
)

// Runes used to draw each cell.
const (
	SpaceRune     = ' '
	UpperHalfRune = '▀'
	LowerHalfRune = '▄'
	FullBlockRune = '█'
)

// Rune returns the character that draws c.
func (c Cell) Rune() rune {
	switch c {
	case Upper:
		return UpperHalfRune
	case Lower:
		return LowerHalfRune
	case Full:
		return FullBlockRune
	default:
		return SpaceRune
	}
}

// Merge adds one half to c.
func Merge(c Cell, upper bool) Cell {
	switch {
	case c == Space && upper:
		return Upper
	case c == Space:
		return Lower
	case c == Upper && !upper, c == Lower && upper:
		return Full
	default:
		return c
	}
}

// Grid is indexed [column][row].
type Grid [Columns][Rows]Cell

// Compose builds a fresh grid from pixels. Visiting order does not matter and
// repeated pixels have no effect. Pixels outside the canvas are skipped.
func Compose(pixels []clock.Pixel) Grid {
	var g Grid
	for _, p := range pixels {
		g.Add(p)
	}
	return g
}

// Add merges a single pixel into g.
func (g *Grid) Add(p clock.Pixel) {
	if !p.In() {
		return
	}
	row := p.Y / 2
	g[p.X][row] = Merge(g[p.X][row], p.Y%2 == 0)
}

// At returns the cell at col, row.
func (g *Grid) At(col, row int) Cell {
	return g[col][row]
}

// Row renders one grid row as a string of runes, left to right.
func (g *Grid) Row(row int) string {
	var b strings.Builder
	for col := 0; col < Columns; col++ {
		b.WriteRune(g[col][row].Rune())
	}
	return b.String()
}

// String renders all rows separated by newlines.
func (g *Grid) String() string {
	rows := make([]string, Rows)
	for row := range rows {
		rows[row] = g.Row(row)
	}
	return strings.Join(rows, "\n")
}
