// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Immutable vertical scroll position over content taller than its
// viewport.

package scroll

// State tracks which rows of the content are visible. Offset is the first
// visible content row. Methods return updated copies; Offset is always kept
// within [0, MaxOffset()].
type State struct {
	ContentHeight  int
	ViewportHeight int
	Offset         int
}

// NewState returns a state scrolled to the top.
func NewState(contentHeight, viewportHeight int) State {
	return State{ContentHeight: max(contentHeight, 0), ViewportHeight: max(viewportHeight, 0)}
}

// MaxOffset is the largest offset that still fills the viewport.
func (s State) MaxOffset() int {
	return max(s.ContentHeight-s.ViewportHeight, 0)
}

func (s State) clamp() State {
	s.Offset = min(max(s.Offset, 0), s.MaxOffset())
	return s
}

// WithContentHeight updates the content height, keeping the offset valid.
func (s State) WithContentHeight(h int) State {
	s.ContentHeight = max(h, 0)
	return s.clamp()
}

// WithViewportHeight updates the viewport height, keeping the offset valid.
func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = max(h, 0)
	return s.clamp()
}

// ScrollBy moves the offset by delta rows.
func (s State) ScrollBy(delta int) State {
	s.Offset += delta
	return s.clamp()
}

// ScrollTo makes row visible, moving as little as possible.
func (s State) ScrollTo(row int) State {
	switch {
	case row < s.Offset:
		s.Offset = row
	case row >= s.Offset+s.ViewportHeight:
		s.Offset = row - s.ViewportHeight + 1
	}
	return s.clamp()
}

// ScrollToCentered puts row in the middle of the viewport when possible.
func (s State) ScrollToCentered(row int) State {
	s.Offset = row - s.ViewportHeight/2
	return s.clamp()
}

// ScrollToTop shows the first row.
func (s State) ScrollToTop() State {
	s.Offset = 0
	return s
}

// ScrollToBottom shows the last row.
func (s State) ScrollToBottom() State {
	s.Offset = s.MaxOffset()
	return s
}

// IsRowVisible reports whether content row is inside the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

// CanScroll reports whether the content overflows the viewport.
func (s State) CanScroll() bool { return s.ContentHeight > s.ViewportHeight }

// CanScrollUp reports whether rows are hidden above the viewport.
func (s State) CanScrollUp() bool { return s.Offset > 0 }

// CanScrollDown reports whether rows are hidden below the viewport.
func (s State) CanScrollDown() bool { return s.Offset < s.MaxOffset() }
