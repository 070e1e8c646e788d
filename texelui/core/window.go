// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/window.go
// Summary: Rectangular views onto the frame's cell grid.
// Usage: Layouts split windows and hand the parts to child widgets; windows
// are values and must not be kept past the draw call that received them.

package core

import (
	"github.com/framegrace/texeldbg/texelui/boxdraw"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

// Window addresses a rectangle of the shared grid. The zero Window is empty
// and ignores all writes.
type Window struct {
	frame *Frame
	x, y  int
	w, h  int
	attr  TextAttribute
}

// Width returns the number of columns.
func (w Window) Width() int { return w.w }

// Height returns the number of rows.
func (w Window) Height() int { return w.h }

// Size returns width and height.
func (w Window) Size() (int, int) { return w.w, w.h }

// Origin returns the absolute position of the top-left cell.
func (w Window) Origin() (int, int) { return w.x, w.y }

// Attribute returns the default attribute merged under every write.
func (w Window) Attribute() TextAttribute { return w.attr }

// WithAttribute returns a copy of w whose writes are layered over a.
func (w Window) WithAttribute(a TextAttribute) Window {
	w.attr = w.attr.Or(a)
	return w
}

// SplitH splits at column col into a left and a right window. col is
// clamped to [0, width].
func (w Window) SplitH(col int) (Window, Window) {
	col = clampInt(col, 0, w.w)
	left, right := w, w
	left.w = col
	right.x += col
	right.w = w.w - col
	return left, right
}

// SplitV splits at row into a top and a bottom window. row is clamped to
// [0, height].
func (w Window) SplitV(row int) (Window, Window) {
	row = clampInt(row, 0, w.h)
	top, bottom := w, w
	top.h = row
	bottom.y += row
	bottom.h = w.h - row
	return top, bottom
}

// Sub returns the part of w starting at (x, y) with the given size, clipped
// to w.
func (w Window) Sub(x, y, width, height int) Window {
	x0 := clampInt(x, 0, w.w)
	y0 := clampInt(y, 0, w.h)
	x1 := clampInt(x+width, x0, w.w)
	y1 := clampInt(y+height, y0, w.h)
	s := w
	s.x += x0
	s.y += y0
	s.w = x1 - x0
	s.h = y1 - y0
	return s
}

func (w Window) writable() bool {
	if w.frame == nil {
		return false
	}
	if w.frame.ended {
		w.frame.leaked++
		return false
	}
	return true
}

func (w Window) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.w && y < w.h
}

// Cell returns the cell at window position x, y.
func (w Window) Cell(x, y int) (Cell, bool) {
	if w.frame == nil || !w.contains(x, y) {
		return Cell{}, false
	}
	return w.frame.get(w.x+x, w.y+y), true
}

// SetCell writes c at (x, y). A wide cluster that would straddle the right
// edge is not written. It reports whether anything was written.
func (w Window) SetCell(x, y int, c grapheme.Cluster, attr TextAttribute) bool {
	if !w.contains(x, y) || !w.writable() {
		return false
	}
	width := c.Width()
	if width == 2 && x+1 >= w.w {
		return false
	}
	attr = w.attr.Or(attr)
	ax, ay := w.x+x, w.y+y
	w.breakWide(x, y)
	if width == 2 {
		w.breakWide(x+1, y)
	}
	w.frame.set(ax, ay, Cell{Cluster: c, Attr: attr})
	if width == 2 {
		w.frame.set(ax+1, ay, Cell{Cluster: grapheme.Empty(), Attr: attr})
	}
	return true
}

// breakWide blanks the other half of a wide glyph that overlaps (x, y).
func (w Window) breakWide(x, y int) {
	ax, ay := w.x+x, w.y+y
	bw := w.frame.buf.w
	cur := w.frame.get(ax, ay)
	switch {
	case cur.Cluster.IsEmpty() && ax > 0:
		left := w.frame.get(ax-1, ay)
		if left.Cluster.Width() == 2 {
			w.frame.set(ax-1, ay, Cell{Cluster: grapheme.Space(), Attr: left.Attr})
		}
	case cur.Cluster.Width() == 2 && ax+1 < bw:
		right := w.frame.get(ax+1, ay)
		w.frame.set(ax+1, ay, Cell{Cluster: grapheme.Space(), Attr: right.Attr})
	}
}

// Fill writes c into every cell of the window.
func (w Window) Fill(c grapheme.Cluster, attr TextAttribute) {
	step := c.Width()
	if step == 0 {
		c, step = grapheme.Space(), 1
	}
	for y := 0; y < w.h; y++ {
		for x := 0; x+step <= w.w; x += step {
			w.SetCell(x, y, c, attr)
		}
	}
}

// Clear fills the window with blanks.
func (w Window) Clear(attr TextAttribute) {
	w.Fill(grapheme.Space(), attr)
}

// DrawBoxSegment adds a box-drawing segment at (x, y). Segments landing on
// the same cell are merged into one glyph when the frame ends.
func (w Window) DrawBoxSegment(x, y int, seg boxdraw.Segment, wt boxdraw.Weight, attr TextAttribute) {
	if !w.contains(x, y) || !w.writable() {
		return
	}
	w.frame.addBox(w.x+x, w.y+y, seg, wt, w.attr.Or(attr))
}

// ScrollUp moves the window content up by n rows and blanks the rows
// uncovered at the bottom.
func (w Window) ScrollUp(n int, attr TextAttribute) {
	if n <= 0 || !w.writable() {
		return
	}
	if n > w.h {
		n = w.h
	}
	for y := 0; y < w.h-n; y++ {
		for x := 0; x < w.w; x++ {
			w.frame.set(w.x+x, w.y+y, w.frame.get(w.x+x, w.y+y+n))
		}
	}
	blank := Cell{Cluster: grapheme.Space(), Attr: w.attr.Or(attr)}
	for y := w.h - n; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			w.frame.set(w.x+x, w.y+y, blank)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
