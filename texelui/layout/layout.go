// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/layout/layout.go
// Summary: Vertical and horizontal stacks of widgets with optional separators
// and a surrounding frame.
// Usage: A Layout is itself a Widget, so layouts nest freely.

package layout

import (
	"github.com/framegrace/texeldbg/texelui/boxdraw"
	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

// Direction is the stacking axis.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// SeparatorKind selects how the gap between two children is drawn.
type SeparatorKind int

const (
	SeparatorNone SeparatorKind = iota
	SeparatorGlyph
	SeparatorLine
)

// Separator describes the strip drawn between neighbouring children.
type Separator struct {
	Kind   SeparatorKind
	Glyph  grapheme.Cluster
	Weight boxdraw.Weight
	Attr   core.TextAttribute
}

// GlyphSeparator repeats c along the separator strip.
func GlyphSeparator(c grapheme.Cluster, attr core.TextAttribute) Separator {
	return Separator{Kind: SeparatorGlyph, Glyph: c, Attr: attr}
}

// LineSeparator draws a box-drawing rule that joins the layout frame.
func LineSeparator(w boxdraw.Weight, attr core.TextAttribute) Separator {
	return Separator{Kind: SeparatorLine, Weight: w, Attr: attr}
}

// Layout stacks children along one axis.
type Layout struct {
	dir       Direction
	sep       Separator
	frame     boxdraw.Weight
	frameAttr core.TextAttribute
	children  []core.Widget
	focus     int
}

// Option configures a Layout.
type Option func(*Layout)

// WithSeparator sets the separator drawn between children.
func WithSeparator(s Separator) Option {
	return func(l *Layout) { l.sep = s }
}

// WithFrame draws a box frame of weight w around the layout.
func WithFrame(w boxdraw.Weight, attr core.TextAttribute) Option {
	return func(l *Layout) {
		l.frame = w
		l.frameAttr = attr
	}
}

// New creates an empty layout stacking along dir.
func New(dir Direction, opts ...Option) *Layout {
	l := &Layout{dir: dir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewVertical stacks children top to bottom.
func NewVertical(opts ...Option) *Layout { return New(Vertical, opts...) }

// NewHorizontal stacks children left to right.
func NewHorizontal(opts ...Option) *Layout { return New(Horizontal, opts...) }

// Add appends a child and returns the layout for chaining.
func (l *Layout) Add(w core.Widget) *Layout {
	l.children = append(l.children, w)
	return l
}

// Children returns the child widgets in order.
func (l *Layout) Children() []core.Widget { return l.children }

// Focus returns the index of the focused child, or -1.
func (l *Layout) Focus() int { return l.focus }

// SetFocus marks child i as focused; -1 focuses none.
func (l *Layout) SetFocus(i int) {
	if i < -1 || i >= len(l.children) {
		return
	}
	l.focus = i
}

// FocusNext moves focus to the following child, wrapping around.
func (l *Layout) FocusNext() bool {
	if len(l.children) == 0 {
		return false
	}
	l.focus = (l.focus + 1) % len(l.children)
	return true
}

func (l *Layout) separatorSize() int {
	switch l.sep.Kind {
	case SeparatorLine:
		return 1
	case SeparatorGlyph:
		if l.dir == Horizontal {
			return max(l.sep.Glyph.Width(), 1)
		}
		return 1
	}
	return 0
}

func (l *Layout) frameSize() int {
	if l.frame == boxdraw.None {
		return 0
	}
	return 2
}

// Demand sums the children along the stacking axis, takes their maximum
// across it and adds separators and frame.
func (l *Layout) Demand() core.Demand2D {
	if len(l.children) == 0 {
		return core.Demand2D{}
	}
	var along, across core.Demand
	for i, c := range l.children {
		d := c.Demand()
		a, x := d.Height, d.Width
		if l.dir == Horizontal {
			a, x = d.Width, d.Height
		}
		if i == 0 {
			along, across = a, x
			continue
		}
		along = along.Add(a)
		across = across.MaxWith(x)
	}
	along = along.Add(core.Exact(l.separatorSize() * (len(l.children) - 1)))
	f := core.Exact(l.frameSize())
	along, across = along.Add(f), across.Add(f)
	if l.dir == Horizontal {
		return core.Demand2D{Width: along, Height: across}
	}
	return core.Demand2D{Width: across, Height: along}
}

// Draw distributes win among the children.
func (l *Layout) Draw(win core.Window, hints core.RenderingHints) {
	if len(l.children) == 0 {
		return
	}
	inner := win
	if l.frame != boxdraw.None {
		l.drawFrame(win)
		inner = win.Sub(1, 1, win.Width()-2, win.Height()-2)
	}

	total := inner.Height()
	if l.dir == Horizontal {
		total = inner.Width()
	}
	sepSize := l.separatorSize()
	seps := sepSize * (len(l.children) - 1)
	demands := make([]core.Demand, len(l.children))
	for i, c := range l.children {
		d := c.Demand()
		demands[i] = d.Height
		if l.dir == Horizontal {
			demands[i] = d.Width
		}
	}
	sizes := Distribute(demands, total-seps)

	offset := 0
	rest := inner
	for i, c := range l.children {
		var part core.Window
		part, rest = l.split(rest, sizes[i])
		c.Draw(part, hints.Child(i == l.focus))
		offset += sizes[i]
		if i == len(l.children)-1 || sepSize == 0 {
			continue
		}
		var strip core.Window
		strip, rest = l.split(rest, sepSize)
		l.drawSeparator(win, strip, offset)
		offset += sepSize
	}
}

func (l *Layout) split(w core.Window, n int) (core.Window, core.Window) {
	if l.dir == Horizontal {
		return w.SplitH(n)
	}
	return w.SplitV(n)
}

// drawSeparator paints the strip. offset is the strip position along the
// stacking axis relative to the inner area.
func (l *Layout) drawSeparator(outer, strip core.Window, offset int) {
	switch l.sep.Kind {
	case SeparatorGlyph:
		strip.Fill(l.sep.Glyph, l.sep.Attr)
	case SeparatorLine:
		if strip.Width() == 0 || strip.Height() == 0 {
			return
		}
		f := l.frameSize() / 2
		wt := l.sep.Weight
		if l.dir == Vertical {
			y := f + offset
			for x := 0; x < outer.Width(); x++ {
				if x < f || x >= outer.Width()-f {
					continue
				}
				outer.DrawBoxSegment(x, y, boxdraw.East, wt, l.sep.Attr)
				outer.DrawBoxSegment(x, y, boxdraw.West, wt, l.sep.Attr)
			}
			if f > 0 {
				outer.DrawBoxSegment(0, y, boxdraw.East, wt, l.sep.Attr)
				outer.DrawBoxSegment(outer.Width()-1, y, boxdraw.West, wt, l.sep.Attr)
			}
			return
		}
		x := f + offset
		for y := f; y < outer.Height()-f; y++ {
			outer.DrawBoxSegment(x, y, boxdraw.North, wt, l.sep.Attr)
			outer.DrawBoxSegment(x, y, boxdraw.South, wt, l.sep.Attr)
		}
		if f > 0 {
			outer.DrawBoxSegment(x, 0, boxdraw.South, wt, l.sep.Attr)
			outer.DrawBoxSegment(x, outer.Height()-1, boxdraw.North, wt, l.sep.Attr)
		}
	}
}

func (l *Layout) drawFrame(win core.Window) {
	w, h := win.Size()
	if w < 2 || h < 2 {
		return
	}
	wt, attr := l.frame, l.frameAttr
	for x := 0; x < w; x++ {
		for _, y := range []int{0, h - 1} {
			if x > 0 {
				win.DrawBoxSegment(x, y, boxdraw.West, wt, attr)
			}
			if x < w-1 {
				win.DrawBoxSegment(x, y, boxdraw.East, wt, attr)
			}
		}
	}
	for y := 0; y < h; y++ {
		for _, x := range []int{0, w - 1} {
			if y > 0 {
				win.DrawBoxSegment(x, y, boxdraw.North, wt, attr)
			}
			if y < h-1 {
				win.DrawBoxSegment(x, y, boxdraw.South, wt, attr)
			}
		}
	}
}
