// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/buffer.go
// Summary: Shared cell grid and the per-draw frame scope that hands out windows.
// Notes: Windows are addressing handles only. A window obtained during one
// frame stops writing once that frame has ended.

package core

import (
	"log"

	"github.com/framegrace/texeldbg/texelui/boxdraw"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

// Cell is one position of the output grid.
type Cell struct {
	Cluster grapheme.Cluster
	Attr    TextAttribute
}

type boxEntry struct {
	desc boxdraw.Cell
	attr TextAttribute
}

// Buffer owns the cell grid every window of a frame writes into.
type Buffer struct {
	w, h  int
	cells []Cell
	boxes map[int]boxEntry
	frame *Frame
}

// NewBuffer allocates a blank w×h grid.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Resize reallocates the grid. Content is discarded.
func (b *Buffer) Resize(w, h int) {
	w, h = clampNonNegative(w), clampNonNegative(h)
	b.w, b.h = w, h
	b.cells = make([]Cell, w*h)
	b.boxes = make(map[int]boxEntry)
	b.clear()
}

// Size returns the grid dimensions.
func (b *Buffer) Size() (int, int) { return b.w, b.h }

// Cell returns the cell at absolute position x, y.
func (b *Buffer) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return Cell{Cluster: grapheme.Space()}
	}
	return b.cells[y*b.w+x]
}

// Row returns the text of row y, skipping wide-glyph continuation cells.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.h {
		return ""
	}
	out := make([]byte, 0, b.w)
	for _, c := range b.cells[y*b.w : (y+1)*b.w] {
		out = append(out, c.Cluster.String()...)
	}
	return string(out)
}

func (b *Buffer) clear() {
	for i := range b.cells {
		b.cells[i] = Cell{Cluster: grapheme.Space()}
	}
	for k := range b.boxes {
		delete(b.boxes, k)
	}
}

// BeginFrame clears the grid and opens a new draw scope. A frame that is
// still open is ended first.
func (b *Buffer) BeginFrame() *Frame {
	if b.frame != nil && !b.frame.ended {
		log.Printf("[TEXELUI] BeginFrame: previous frame was not ended")
		b.frame.End()
	}
	b.clear()
	b.frame = &Frame{buf: b}
	return b.frame
}

// Frame scopes every window derived from its root to a single draw pass.
type Frame struct {
	buf    *Buffer
	ended  bool
	leaked int
}

// Root returns the window covering the whole buffer.
func (f *Frame) Root() Window {
	return Window{frame: f, w: f.buf.w, h: f.buf.h}
}

// End resolves accumulated box segments to glyphs and closes the scope.
func (f *Frame) End() {
	if f.ended {
		return
	}
	b := f.buf
	for idx, e := range b.boxes {
		b.cells[idx] = Cell{Cluster: grapheme.FromRune(e.desc.Glyph()), Attr: e.attr}
	}
	for k := range b.boxes {
		delete(b.boxes, k)
	}
	f.ended = true
	if f.leaked > 0 {
		log.Printf("[TEXELUI] frame ended with %d writes through stale windows", f.leaked)
	}
}

// Ended reports whether End has been called.
func (f *Frame) Ended() bool { return f.ended }

// Leaked returns how many writes arrived through windows after End.
func (f *Frame) Leaked() int { return f.leaked }

func (f *Frame) set(x, y int, c Cell) {
	b := f.buf
	idx := y*b.w + x
	delete(b.boxes, idx)
	b.cells[idx] = c
}

func (f *Frame) get(x, y int) Cell {
	return f.buf.cells[y*f.buf.w+x]
}

func (f *Frame) addBox(x, y int, seg boxdraw.Segment, wt boxdraw.Weight, attr TextAttribute) {
	idx := y*f.buf.w + x
	e := f.buf.boxes[idx]
	e.desc = e.desc.Set(seg, wt)
	e.attr = attr
	f.buf.boxes[idx] = e
}
