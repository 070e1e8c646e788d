// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state_test.go
// Summary: Tests for scroll state clamping and indicator drawing.

package scroll

import (
	"testing"

	"github.com/framegrace/texeldbg/texelui/core"
)

func TestStateClamps(t *testing.T) {
	s := NewState(10, 4)
	if s.ScrollBy(-3).Offset != 0 {
		t.Error("offset went negative")
	}
	if got := s.ScrollBy(100).Offset; got != 6 {
		t.Errorf("ScrollBy(100) offset = %d, want 6", got)
	}
	s = s.ScrollToBottom().WithContentHeight(5)
	if s.Offset != 1 {
		t.Errorf("shrinking content left offset %d", s.Offset)
	}
	if NewState(3, 10).CanScroll() {
		t.Error("short content reported scrollable")
	}
}

func TestScrollToMinimalMove(t *testing.T) {
	s := NewState(20, 5)
	s = s.ScrollTo(7)
	if s.Offset != 3 || !s.IsRowVisible(7) {
		t.Errorf("ScrollTo(7) offset = %d", s.Offset)
	}
	if s.ScrollTo(5).Offset != 3 {
		t.Error("ScrollTo on a visible row moved")
	}
	if s.ScrollTo(1).Offset != 1 {
		t.Error("ScrollTo above did not align top")
	}
	if got := s.ScrollToCentered(10).Offset; got != 8 {
		t.Errorf("centered offset = %d, want 8", got)
	}
}

func TestDrawIndicators(t *testing.T) {
	buf := core.NewBuffer(3, 3)
	frame := buf.BeginFrame()
	state := NewState(10, 3).ScrollBy(2)
	DrawStateIndicators(frame.Root(), state, DefaultIndicatorConfig(core.Plain))
	frame.End()
	if buf.Row(0) != "  ▲" || buf.Row(2) != "  ▼" {
		t.Errorf("rows %q %q", buf.Row(0), buf.Row(2))
	}
}
