// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/widgets_test.go
// Summary: Shared helpers for widget rendering tests.

package widgets

import (
	"testing"

	"github.com/framegrace/texeldbg/texelui/core"
)

func render(w, h int, widget core.Widget, hints core.RenderingHints) *core.Buffer {
	buf := core.NewBuffer(w, h)
	frame := buf.BeginFrame()
	widget.Draw(frame.Root(), hints)
	frame.End()
	return buf
}

func expectRows(t *testing.T, buf *core.Buffer, want ...string) {
	t.Helper()
	for y, line := range want {
		if got := buf.Row(y); got != line {
			t.Errorf("row %d = %q, want %q", y, got, line)
		}
	}
}
