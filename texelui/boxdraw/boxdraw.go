// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/boxdraw/boxdraw.go
// Summary: Merges independently drawn border segments into box-drawing glyphs.
// Usage: Frames and separators OR their segments into a per-cell descriptor;
// the descriptor is resolved to a glyph once, when the frame ends.

package boxdraw

// Segment is one of the four half-lines leaving the centre of a cell.
type Segment uint8

const (
	North Segment = iota
	East
	South
	West
)

// Weight is the stroke weight of a segment.
type Weight uint8

const (
	None Weight = iota
	Thin
	Thick
	conflict
)

// Placeholder is drawn for descriptors that have no box-drawing glyph.
const Placeholder = '╳'

// Cell packs four 2-bit weights: North in bits 0-1, East 2-3, South 4-5, West 6-7.
type Cell uint8

func shift(s Segment) uint { return uint(s&3) * 2 }

// Set ORs weight w into the field of segment s.
func (c Cell) Set(s Segment, w Weight) Cell {
	return c | Cell(w&3)<<shift(s)
}

// Weight returns the accumulated weight of segment s.
func (c Cell) Weight(s Segment) Weight {
	return Weight(c>>shift(s)) & 3
}

// Glyph resolves the descriptor to a box-drawing rune.
func (c Cell) Glyph() rune {
	return table[c]
}

// Empty reports whether no segment is set.
func (c Cell) Empty() bool { return c == 0 }

// Horizontal returns a cell crossed by a full horizontal line.
func Horizontal(w Weight) Cell { return Cell(0).Set(East, w).Set(West, w) }

// Vertical returns a cell crossed by a full vertical line.
func Vertical(w Weight) Cell { return Cell(0).Set(North, w).Set(South, w) }

func desc(n, e, s, w Weight) Cell {
	return Cell(0).Set(North, n).Set(East, e).Set(South, s).Set(West, w)
}

// glyphs lists every representable descriptor as (north, east, south, west).
var glyphs = []struct {
	n, e, s, w Weight
	r          rune
}{
	{0, 0, 0, 0, ' '},
	{0, 1, 0, 1, '─'}, {0, 2, 0, 2, '━'}, {1, 0, 1, 0, '│'}, {2, 0, 2, 0, '┃'},
	{0, 1, 1, 0, '┌'}, {0, 2, 1, 0, '┍'}, {0, 1, 2, 0, '┎'}, {0, 2, 2, 0, '┏'},
	{0, 0, 1, 1, '┐'}, {0, 0, 1, 2, '┑'}, {0, 0, 2, 1, '┒'}, {0, 0, 2, 2, '┓'},
	{1, 1, 0, 0, '└'}, {1, 2, 0, 0, '┕'}, {2, 1, 0, 0, '┖'}, {2, 2, 0, 0, '┗'},
	{1, 0, 0, 1, '┘'}, {1, 0, 0, 2, '┙'}, {2, 0, 0, 1, '┚'}, {2, 0, 0, 2, '┛'},
	{1, 1, 1, 0, '├'}, {1, 2, 1, 0, '┝'}, {2, 1, 1, 0, '┞'}, {1, 1, 2, 0, '┟'},
	{2, 1, 2, 0, '┠'}, {2, 2, 1, 0, '┡'}, {1, 2, 2, 0, '┢'}, {2, 2, 2, 0, '┣'},
	{1, 0, 1, 1, '┤'}, {1, 0, 1, 2, '┥'}, {2, 0, 1, 1, '┦'}, {1, 0, 2, 1, '┧'},
	{2, 0, 2, 1, '┨'}, {2, 0, 1, 2, '┩'}, {1, 0, 2, 2, '┪'}, {2, 0, 2, 2, '┫'},
	{0, 1, 1, 1, '┬'}, {0, 1, 1, 2, '┭'}, {0, 2, 1, 1, '┮'}, {0, 2, 1, 2, '┯'},
	{0, 1, 2, 1, '┰'}, {0, 1, 2, 2, '┱'}, {0, 2, 2, 1, '┲'}, {0, 2, 2, 2, '┳'},
	{1, 1, 0, 1, '┴'}, {1, 1, 0, 2, '┵'}, {1, 2, 0, 1, '┶'}, {1, 2, 0, 2, '┷'},
	{2, 1, 0, 1, '┸'}, {2, 1, 0, 2, '┹'}, {2, 2, 0, 1, '┺'}, {2, 2, 0, 2, '┻'},
	{1, 1, 1, 1, '┼'}, {1, 1, 1, 2, '┽'}, {1, 2, 1, 1, '┾'}, {1, 2, 1, 2, '┿'},
	{2, 1, 1, 1, '╀'}, {1, 1, 2, 1, '╁'}, {2, 1, 2, 1, '╂'}, {2, 1, 1, 2, '╃'},
	{2, 2, 1, 1, '╄'}, {1, 1, 2, 2, '╅'}, {1, 2, 2, 1, '╆'}, {2, 2, 1, 2, '╇'},
	{1, 2, 2, 2, '╈'}, {2, 1, 2, 2, '╉'}, {2, 2, 2, 1, '╊'}, {2, 2, 2, 2, '╋'},
	{0, 0, 0, 1, '╴'}, {1, 0, 0, 0, '╵'}, {0, 1, 0, 0, '╶'}, {0, 0, 1, 0, '╷'},
	{0, 0, 0, 2, '╸'}, {2, 0, 0, 0, '╹'}, {0, 2, 0, 0, '╺'}, {0, 0, 2, 0, '╻'},
	{0, 2, 0, 1, '╼'}, {1, 0, 2, 0, '╽'}, {0, 1, 0, 2, '╾'}, {2, 0, 1, 0, '╿'},
}

var table [256]rune

func init() {
	for i := range table {
		table[i] = Placeholder
	}
	for _, g := range glyphs {
		table[desc(g.n, g.e, g.s, g.w)] = g.r
	}
}
