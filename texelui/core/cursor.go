// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/cursor.go
// Summary: Stateful writer that places grapheme clusters into a window.
// Usage: Created per draw call; wraps or truncates at the window edge and
// applies the active attribute to every cell it writes.

package core

import "github.com/framegrace/texeldbg/texelui/grapheme"

// WrapMode decides what happens when a write reaches the right edge.
type WrapMode int

const (
	// NoWrap drops everything past the right edge until the next line break.
	NoWrap WrapMode = iota
	// Wrap continues on a new line.
	Wrap
)

// WrapDirection decides where a new line goes.
type WrapDirection int

const (
	// Down moves to the next row.
	Down WrapDirection = iota
	// Up scrolls the window content up one row and stays on the current row.
	Up
)

const defaultTabWidth = 4

// Cursor writes text into a window.
type Cursor struct {
	win  Window
	x, y int
	attr TextAttribute

	Wrap      WrapMode
	Direction WrapDirection
	TabWidth  int
	// LineStart is the column new lines begin at.
	LineStart int
}

// NewCursor returns a non-wrapping cursor at the window origin.
func NewCursor(win Window) *Cursor {
	return &Cursor{win: win, TabWidth: defaultTabWidth}
}

// Window returns the window the cursor writes to.
func (c *Cursor) Window() Window { return c.win }

// Position returns the current column and row.
func (c *Cursor) Position() (int, int) { return c.x, c.y }

// MoveTo sets the position. Positions outside the window are allowed; writes
// there are clipped.
func (c *Cursor) MoveTo(x, y int) { c.x, c.y = x, y }

// Move shifts the position by dx, dy.
func (c *Cursor) Move(dx, dy int) { c.x += dx; c.y += dy }

// Attribute returns the active attribute.
func (c *Cursor) Attribute() TextAttribute { return c.attr }

// SetAttribute replaces the active attribute.
func (c *Cursor) SetAttribute(a TextAttribute) { c.attr = a }

// PushAttribute layers a over the active attribute and returns the function
// that restores the previous one. Use it with defer.
func (c *Cursor) PushAttribute(a TextAttribute) func() {
	prev := c.attr
	c.attr = prev.Or(a)
	return func() { c.attr = prev }
}

// WithAttribute runs fn with a layered over the active attribute. The
// previous attribute is restored however fn returns.
func (c *Cursor) WithAttribute(a TextAttribute, fn func()) {
	restore := c.PushAttribute(a)
	defer restore()
	fn()
}

// RemainingWidth returns the columns left on the current row.
func (c *Cursor) RemainingWidth() int {
	if c.x >= c.win.w {
		return 0
	}
	return c.win.w - c.x
}

// Write places each cluster of s at the cursor.
func (c *Cursor) Write(s string) {
	grapheme.Each(s, func(cl grapheme.Cluster) bool {
		c.writeCluster(cl)
		return true
	})
}

// Writeln writes s followed by a line break.
func (c *Cursor) Writeln(s string) {
	c.Write(s)
	c.NewLine()
}

// NewLine moves to the start of the next line in the wrap direction.
func (c *Cursor) NewLine() {
	c.x = c.LineStart
	if c.Direction == Up {
		c.win.ScrollUp(1, c.attr)
		return
	}
	c.y++
}

// Fill writes n copies of cl.
func (c *Cursor) Fill(cl grapheme.Cluster, n int) {
	for i := 0; i < n; i++ {
		c.writeCluster(cl)
	}
}

// FillToEnd repeats cl until the end of the current row.
func (c *Cursor) FillToEnd(cl grapheme.Cluster) {
	w := cl.Width()
	if w == 0 {
		return
	}
	for c.x+w <= c.win.w {
		c.writeCluster(cl)
	}
}

func (c *Cursor) writeCluster(cl grapheme.Cluster) {
	switch cl.String() {
	case "\n", "\r\n":
		c.NewLine()
		return
	case "\r":
		c.x = c.LineStart
		return
	case "\t":
		c.Fill(grapheme.Space(), tabSpaces(c.x, c.LineStart, c.TabWidth))
		return
	}
	width := cl.Width()
	if width == 0 {
		return
	}
	if c.Wrap == Wrap && wrapsAt(c.x, width, c.win.w, c.LineStart) {
		c.NewLine()
	}
	if c.y >= 0 && c.y < c.win.h && c.x >= 0 && c.x+width <= c.win.w {
		c.win.SetCell(c.x, c.y, cl, c.attr)
	}
	c.x += width
}

// tabSpaces returns how many spaces a tab written at column x expands to.
func tabSpaces(x, lineStart, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	return tabWidth - (x-lineStart)%tabWidth
}

// wrapsAt reports whether a cluster width columns wide written at x must
// start a new line first.
func wrapsAt(x, width, winWidth, lineStart int) bool {
	return x+width > winWidth && x > lineStart
}

// WrappedRows returns the number of rows a wrapping cursor at column 0 uses
// to write text into a window w columns wide. A tabWidth of zero or less
// means the default.
func WrappedRows(text string, w, tabWidth int) int {
	rows, x := 1, 0
	place := func(width int) {
		if width == 0 {
			return
		}
		if wrapsAt(x, width, w, 0) {
			rows++
			x = 0
		}
		x += width
	}
	grapheme.Each(text, func(cl grapheme.Cluster) bool {
		switch cl.String() {
		case "\n", "\r\n":
			rows++
			x = 0
		case "\r":
			x = 0
		case "\t":
			for n := tabSpaces(x, 0, tabWidth); n > 0; n-- {
				place(1)
			}
		default:
			place(cl.Width())
		}
		return true
	})
	return rows
}
