// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/label.go
// Summary: Static single-line text.

package widgets

import (
	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

// LineLabel draws one line of text, truncated at the window edge.
type LineLabel struct {
	Text string
	Attr core.TextAttribute
}

func NewLineLabel(text string) *LineLabel {
	return &LineLabel{Text: text}
}

func (l *LineLabel) Demand() core.Demand2D {
	return core.Demand2D{Width: core.Exact(grapheme.Width(l.Text)), Height: core.Exact(1)}
}

func (l *LineLabel) Draw(win core.Window, _ core.RenderingHints) {
	c := core.NewCursor(win)
	c.SetAttribute(l.Attr)
	c.Write(l.Text)
}
