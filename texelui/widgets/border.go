// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/border.go
// Summary: Box frame around a single child, with an optional title.

package widgets

import (
	"github.com/framegrace/texeldbg/texelui/boxdraw"
	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

// Border draws a frame around its window and renders Child inside. The
// frame goes through the buffer's box layer, so it joins neighbouring lines.
type Border struct {
	Weight boxdraw.Weight
	Attr   core.TextAttribute
	Title  string
	Child  core.Widget
}

func NewBorder(child core.Widget) *Border {
	return &Border{Weight: boxdraw.Thin, Child: child}
}

func (b *Border) Demand() core.Demand2D {
	frame := core.Demand2D{Width: core.Exact(2), Height: core.Exact(2)}
	if b.Child == nil {
		return frame
	}
	d := b.Child.Demand()
	return core.Demand2D{
		Width:  d.Width.Add(frame.Width),
		Height: d.Height.Add(frame.Height),
	}
}

// ClientWindow returns the part of win inside the frame.
func (b *Border) ClientWindow(win core.Window) core.Window {
	w, h := win.Size()
	if w < 2 || h < 2 {
		return win.Sub(0, 0, 0, 0)
	}
	return win.Sub(1, 1, w-2, h-2)
}

func (b *Border) Draw(win core.Window, hints core.RenderingHints) {
	w, h := win.Size()
	if w < 2 || h < 2 {
		return
	}
	for x := 0; x < w; x++ {
		if x > 0 {
			win.DrawBoxSegment(x, 0, boxdraw.West, b.Weight, b.Attr)
			win.DrawBoxSegment(x, h-1, boxdraw.West, b.Weight, b.Attr)
		}
		if x < w-1 {
			win.DrawBoxSegment(x, 0, boxdraw.East, b.Weight, b.Attr)
			win.DrawBoxSegment(x, h-1, boxdraw.East, b.Weight, b.Attr)
		}
	}
	for y := 0; y < h; y++ {
		if y > 0 {
			win.DrawBoxSegment(0, y, boxdraw.North, b.Weight, b.Attr)
			win.DrawBoxSegment(w-1, y, boxdraw.North, b.Weight, b.Attr)
		}
		if y < h-1 {
			win.DrawBoxSegment(0, y, boxdraw.South, b.Weight, b.Attr)
			win.DrawBoxSegment(w-1, y, boxdraw.South, b.Weight, b.Attr)
		}
	}
	if b.Title != "" && w > 4 {
		title := grapheme.Truncate(" "+b.Title+" ", w-4)
		c := core.NewCursor(win.Sub(2, 0, w-4, 1))
		c.SetAttribute(b.Attr)
		c.Write(title)
	}
	if b.Child != nil {
		b.Child.Draw(b.ClientWindow(win), hints)
	}
}
