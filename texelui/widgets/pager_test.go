// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/pager_test.go
// Summary: Tests for source loading, highlighting and navigation.

package widgets

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldbg/texelui/core"
)

const goSource = "package main\n\nfunc main() {}\n"

func TestPagerLoadsAndHighlights(t *testing.T) {
	p := NewPager()
	if err := p.SetSource("main.go", []byte(goSource)); err != nil {
		t.Fatalf("SetSource: %v", err)
	}
	if p.Language() != "Go" {
		t.Errorf("Language = %q", p.Language())
	}
	if p.NumLines() != 3 {
		t.Fatalf("NumLines = %d, want 3", p.NumLines())
	}
	buf := render(30, 3, p, core.ActiveHints)
	if row := buf.Row(0); !strings.HasPrefix(row, " ▶1 package main") {
		t.Errorf("row 0 = %q", row)
	}
	if row := buf.Row(2); !strings.HasPrefix(row, "  3 func main() {}") {
		t.Errorf("row 2 = %q", row)
	}
	if buf.Cell(4, 0).Attr.FG == tcell.ColorDefault {
		t.Error("keyword was not coloured")
	}
}

func TestPagerNavigationAndMarks(t *testing.T) {
	p := NewPager()
	p.SetSource("notes.txt", []byte("a\nb\nc"))
	if p.NumLines() != 3 {
		t.Fatalf("NumLines = %d", p.NumLines())
	}
	if p.MoveUp() {
		t.Error("MoveUp at top moved")
	}
	p.MoveDown()
	p.Toggle()
	p.MoveDown()
	if p.MoveDown() {
		t.Error("MoveDown at bottom moved")
	}
	if marks := p.Marks(); len(marks) != 1 || marks[0] != 1 {
		t.Errorf("Marks = %v", marks)
	}
	buf := render(10, 3, p, core.ActiveHints)
	if !strings.HasPrefix(buf.Row(1), "● 2 b") || !strings.HasPrefix(buf.Row(2), " ▶3 c") {
		t.Errorf("rows %q %q", buf.Row(1), buf.Row(2))
	}
	if !p.ScrollToBeginning() || p.CurrentLine() != 0 {
		t.Error("ScrollToBeginning failed")
	}
}

func TestPagerScrollsToCurrentLine(t *testing.T) {
	p := NewPager()
	p.LineNumbers = false
	p.SetSource("n.txt", []byte("0\n1\n2\n3\n4\n5\n6\n7\n8\n9\n"))
	p.SetCurrentLine(8)
	buf := render(6, 3, p, core.ActiveHints)
	if !strings.HasPrefix(buf.Row(2), " ▶8") {
		t.Errorf("current line not visible: %q %q %q", buf.Row(0), buf.Row(1), buf.Row(2))
	}
}
