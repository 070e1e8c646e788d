// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/linestorage/memory_test.go
// Summary: Tests for the in-memory storage and the line view.

package linestorage

import (
	"fmt"
	"strings"
	"testing"
)

func TestMemoryLineCountFollowsNewlines(t *testing.T) {
	for k := 0; k < 5; k++ {
		m := NewMemory()
		fmt.Fprint(m, strings.Repeat("x\n", k))
		if m.NumLines() != k+1 {
			t.Errorf("%d newlines produced %d lines", k, m.NumLines())
		}
		if _, ok, err := m.ViewLine(k + 1); ok || err != nil {
			t.Errorf("line %d should be absent, got ok=%v err=%v", k+1, ok, err)
		}
	}
}

func TestMemoryWritesAcrossChunks(t *testing.T) {
	m := NewMemory()
	m.WriteString("hel")
	m.WriteString("lo\nwor")
	m.Write([]byte("ld\n\n!"))
	want := []string{"hello", "world", "", "!"}
	if m.NumLines() != len(want) {
		t.Fatalf("NumLines = %d, want %d", m.NumLines(), len(want))
	}
	for i, w := range want {
		got, ok, _ := m.ViewLine(i)
		if !ok || got != w {
			t.Errorf("line %d = %q (%v), want %q", i, got, ok, w)
		}
	}
	if m.ActiveLine() != "!" {
		t.Errorf("ActiveLine = %q", m.ActiveLine())
	}
	m.Clear()
	if m.NumLines() != 1 || m.ActiveLine() != "" {
		t.Errorf("after Clear: %d lines, active %q", m.NumLines(), m.ActiveLine())
	}
}

func TestViewBothEnds(t *testing.T) {
	m := NewMemory()
	m.WriteString("a\nb\nc\nd")
	v := View(m, 0, 4)
	first, _ := v.Next()
	last, _ := v.Prev()
	if first.Text != "a" || last.Text != "d" || last.Index != 3 {
		t.Fatalf("first %+v last %+v", first, last)
	}
	var mid []string
	for {
		l, ok := v.Prev()
		if !ok {
			break
		}
		mid = append(mid, l.Text)
	}
	if strings.Join(mid, "") != "cb" {
		t.Errorf("middle reversed = %q", mid)
	}
	if _, ok := v.Next(); ok {
		t.Error("view should be exhausted")
	}
}

func TestViewPastEnd(t *testing.T) {
	m := NewMemory()
	m.WriteString("a\nb")
	v := View(m, 1, 100)
	l, ok := v.Prev()
	if !ok || l.Index != 1 || l.Text != "b" {
		t.Fatalf("Prev = %+v %v", l, ok)
	}
	if _, ok := v.Prev(); ok {
		t.Error("view should stop at lo")
	}

	v = View(m, 0, 100)
	n := 0
	for {
		if _, ok := v.Next(); !ok {
			break
		}
		n++
	}
	if n != 2 || v.Err() != nil {
		t.Errorf("forward walk yielded %d lines, err %v", n, v.Err())
	}
}
