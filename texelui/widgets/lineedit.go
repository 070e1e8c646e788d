// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/lineedit.go
// Summary: Single-line text editor addressed in grapheme clusters.
// Usage: Drive it through core.EditBehavior or call the Editable methods.

package widgets

import (
	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/grapheme"
)

// LineEdit holds one line of text and a caret between clusters. The caret
// ranges over 0..Count(text); position Count(text) is past the last cluster.
type LineEdit struct {
	text   string
	caret  int
	offset int // first visible cluster

	Attr      core.TextAttribute
	CaretAttr core.TextAttribute
}

// NewLineEdit returns an empty editor with an inverted caret.
func NewLineEdit() *LineEdit {
	return &LineEdit{CaretAttr: core.WithFlags(core.Invert)}
}

// Text returns the current content.
func (e *LineEdit) Text() string { return e.text }

// Caret returns the caret position in clusters.
func (e *LineEdit) Caret() int { return e.caret }

// SetText replaces the content and moves the caret to the end.
func (e *LineEdit) SetText(s string) {
	e.text = s
	e.caret = grapheme.Count(s)
}

// SetCaret moves the caret, clamped to the text.
func (e *LineEdit) SetCaret(pos int) {
	e.caret = min(max(pos, 0), grapheme.Count(e.text))
}

func (e *LineEdit) MoveLeft() bool {
	if e.caret == 0 {
		return false
	}
	e.caret--
	return true
}

func (e *LineEdit) MoveRight() bool {
	if e.caret >= grapheme.Count(e.text) {
		return false
	}
	e.caret++
	return true
}

func (e *LineEdit) MoveToStart() bool {
	moved := e.caret != 0
	e.caret = 0
	return moved
}

func (e *LineEdit) MoveToEnd() bool {
	end := grapheme.Count(e.text)
	moved := e.caret != end
	e.caret = end
	return moved
}

// Insert places s at the caret and moves the caret past it. The caret
// lands on the cluster boundary after the insertion even when s merges with
// its neighbours into fewer clusters.
func (e *LineEdit) Insert(s string) {
	if s == "" {
		return
	}
	at := grapheme.ByteOffset(e.text, e.caret)
	e.text = e.text[:at] + s + e.text[at:]
	e.caret = grapheme.Count(e.text[:at+len(s)])
}

func (e *LineEdit) DeleteForward() bool {
	text, ok := grapheme.Remove(e.text, e.caret)
	e.text = text
	return ok
}

func (e *LineEdit) DeleteBackward() bool {
	if e.caret == 0 {
		return false
	}
	text, ok := grapheme.Remove(e.text, e.caret-1)
	if ok {
		e.text = text
		e.caret--
	}
	return ok
}

func (e *LineEdit) Clear() bool {
	if e.text == "" {
		return false
	}
	e.text = ""
	e.caret = 0
	e.offset = 0
	return true
}

// Demand asks for the text plus one caret cell, on a single row.
func (e *LineEdit) Demand() core.Demand2D {
	return core.Demand2D{
		Width:  core.AtLeast(grapheme.Width(e.text) + 1),
		Height: core.Exact(1),
	}
}

// Draw renders the visible part of the text, scrolled so the caret fits.
// The caret is only shown when the editor is active.
func (e *LineEdit) Draw(win core.Window, hints core.RenderingHints) {
	w := win.Width()
	if w <= 0 || win.Height() <= 0 {
		return
	}
	clusters := grapheme.Split(e.text)
	e.ensureVisible(clusters, w)

	x := 0
	for i := e.offset; i < len(clusters) && x < w; i++ {
		c := clusters[i]
		attr := e.Attr
		if hints.Active && i == e.caret {
			attr = attr.Or(e.CaretAttr)
		}
		if x+c.Width() > w {
			break
		}
		win.SetCell(x, 0, c, attr)
		x += c.Width()
	}
	if hints.Active && e.caret >= len(clusters) && x < w {
		win.SetCell(x, 0, grapheme.Space(), e.Attr.Or(e.CaretAttr))
	}
}

func (e *LineEdit) ensureVisible(clusters []grapheme.Cluster, w int) {
	e.caret = min(e.caret, len(clusters))
	if e.caret < e.offset {
		e.offset = e.caret
	}
	caretWidth := 1
	if e.caret < len(clusters) {
		caretWidth = max(clusters[e.caret].Width(), 1)
	}
	for e.offset < e.caret && spanWidth(clusters[e.offset:e.caret])+caretWidth > w {
		e.offset++
	}
}

func spanWidth(cs []grapheme.Cluster) int {
	n := 0
	for _, c := range cs {
		n += c.Width()
	}
	return n
}
