// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/lineedit_test.go
// Summary: Tests for cluster-based editing and caret rendering.

package widgets

import (
	"testing"

	"github.com/framegrace/texeldbg/texelui/core"
)

func TestLineEditInsertAdvancesCaret(t *testing.T) {
	e := NewLineEdit()
	parts := []string{"a", "e\u0301", "\U0001F600", "b"}
	want := ""
	for _, p := range parts {
		e.Insert(p)
		want += p
	}
	if e.Caret() != len(parts) || e.Text() != want {
		t.Errorf("caret %d text %q, want %d %q", e.Caret(), e.Text(), len(parts), want)
	}
}

func TestLineEditCombiningInsert(t *testing.T) {
	e := NewLineEdit()
	e.Insert("e")
	e.Insert("\u0301")
	if e.Caret() != 1 || e.Text() != "e\u0301" {
		t.Errorf("caret %d text %q", e.Caret(), e.Text())
	}
}

func TestLineEditDeletion(t *testing.T) {
	e := NewLineEdit()
	if e.DeleteBackward() {
		t.Error("DeleteBackward at 0 reported success")
	}
	e.SetText("ab\u00e7d")
	e.MoveLeft()
	e.MoveLeft()
	if !e.DeleteBackward() || e.Text() != "a\u00e7d" || e.Caret() != 1 {
		t.Fatalf("after DeleteBackward: %q caret %d", e.Text(), e.Caret())
	}
	if !e.DeleteForward() || e.Text() != "ad" {
		t.Fatalf("after DeleteForward: %q", e.Text())
	}
	e.MoveToEnd()
	if e.DeleteForward() {
		t.Error("DeleteForward at end reported success")
	}
	if e.MoveRight() {
		t.Error("MoveRight past end reported success")
	}
	if !e.Clear() || e.Caret() != 0 {
		t.Error("Clear did not reset")
	}
}

func TestLineEditDrawCaret(t *testing.T) {
	e := NewLineEdit()
	e.SetText("abc")
	buf := render(5, 1, e, core.ActiveHints)
	expectRows(t, buf, "abc  ")
	if buf.Cell(3, 0).Attr.Flags&core.Invert == 0 {
		t.Error("caret cell at end of text is not inverted")
	}
	if buf.Cell(2, 0).Attr.Flags&core.Invert != 0 {
		t.Error("text cell inverted")
	}

	e.MoveLeft()
	buf = render(5, 1, e, core.RenderingHints{})
	if buf.Cell(2, 0).Attr.Flags&core.Invert != 0 {
		t.Error("inactive editor drew a caret")
	}
}

func TestLineEditScrollsToCaret(t *testing.T) {
	e := NewLineEdit()
	e.SetText("abcdef")
	expectRows(t, render(3, 1, e, core.ActiveHints), "ef ")
	e.MoveToStart()
	expectRows(t, render(3, 1, e, core.ActiveHints), "abc")
}
