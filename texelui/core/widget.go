// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/widget.go
// Summary: Widget contract, rendering hints and the capabilities behaviors act on.

package core

// Widget is the minimal contract for drawable UI elements: report the space
// wanted, then paint into whatever window was allocated.
type Widget interface {
	Demand() Demand2D
	Draw(win Window, hints RenderingHints)
}

// RenderingHints carries per-draw context from the root down.
type RenderingHints struct {
	Active bool
}

// ActiveHints is the hint set the renderer starts a frame with.
var ActiveHints = RenderingHints{Active: true}

// Child derives the hints for a child that is (or is not) the focused one.
func (h RenderingHints) Child(focused bool) RenderingHints {
	return RenderingHints{Active: h.Active && focused}
}

// Scrollable widgets move a view through content. Each method reports
// whether anything moved; false means the end was already reached.
type Scrollable interface {
	ScrollBackwards() bool
	ScrollForwards() bool
	ScrollToBeginning() bool
	ScrollToEnd() bool
}

// Editable widgets hold a single line of text and an insertion point.
type Editable interface {
	MoveLeft() bool
	MoveRight() bool
	MoveToStart() bool
	MoveToEnd() bool
	Insert(text string)
	DeleteForward() bool
	DeleteBackward() bool
	Clear() bool
}

// Navigable widgets have an active element that can be moved and toggled.
type Navigable interface {
	MoveUp() bool
	MoveDown() bool
	Toggle() bool
}

// WidgetFunc adapts a pair of functions to Widget.
type WidgetFunc struct {
	DemandFn func() Demand2D
	DrawFn   func(win Window, hints RenderingHints)
}

func (f WidgetFunc) Demand() Demand2D {
	if f.DemandFn == nil {
		return Demand2D{}
	}
	return f.DemandFn()
}

func (f WidgetFunc) Draw(win Window, hints RenderingHints) {
	if f.DrawFn != nil {
		f.DrawFn(win, hints)
	}
}
