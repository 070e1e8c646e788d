// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/jsonview/viewer_test.go
// Summary: Tests for parsing, navigation, toggling and replacement.

package jsonview

import (
	"errors"
	"strings"
	"testing"

	"github.com/framegrace/texeldbg/texelui/core"
)

const sample = `{"b": 1, "a": [true, null, "x"], "c": {}}`

func TestParseKeepsOrder(t *testing.T) {
	root := MustParse(sample)
	if root.Kind != Object || len(root.Children) != 3 {
		t.Fatalf("root %v with %d children", root.Kind, len(root.Children))
	}
	var keys []string
	for _, c := range root.Children {
		keys = append(keys, c.Key)
	}
	if strings.Join(keys, ",") != "b,a,c" {
		t.Errorf("keys %v", keys)
	}
	arr := root.Children[1]
	kinds := []Kind{Bool, Null, String}
	for i, c := range arr.Children {
		if c.Kind != kinds[i] {
			t.Errorf("a[%d] kind %v, want %v", i, c.Kind, kinds[i])
		}
	}
	if arr.Children[2].Summary() != `"x"` {
		t.Errorf("string summary %s", arr.Children[2].Summary())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "{", "["} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) = %v, want ErrInvalid", in, err)
		}
	}
}

func TestNavigateAndToggle(t *testing.T) {
	v := New(MustParse(sample))
	if v.MoveUp() {
		t.Error("MoveUp at root moved")
	}
	v.MoveDown()
	v.MoveDown()
	if v.ActiveKeyPath() != ".a" {
		t.Fatalf("active %q", v.ActiveKeyPath())
	}
	if !v.Toggle() || !v.IsExpanded(v.Active()) {
		t.Fatal("Toggle did not expand .a")
	}
	v.MoveDown()
	if v.ActiveKeyPath() != ".a[0]" {
		t.Fatalf("active %q", v.ActiveKeyPath())
	}
	if v.Toggle() {
		t.Error("Toggle on a scalar reported success")
	}
	v.MoveDown()
	v.MoveDown()
	v.MoveDown()
	if v.ActiveKeyPath() != ".c" {
		t.Fatalf("active %q", v.ActiveKeyPath())
	}
	if v.MoveDown() {
		t.Error("MoveDown past last element moved")
	}
	v.MoveUp()
	if v.ActiveKeyPath() != ".a[2]" {
		t.Errorf("MoveUp went to %q", v.ActiveKeyPath())
	}
}

func TestReplaceKeepsLongestPrefix(t *testing.T) {
	v := New(MustParse(sample))
	v.SetActive(Path{1})
	v.Toggle()
	if !v.SetActive(Path{1, 2}) {
		t.Fatal("SetActive on visible element failed")
	}

	v.Replace(MustParse(`{"a": [1], "z": 2}`))
	if got := v.Active(); len(got) != 1 || got[0] != 0 {
		t.Errorf("active %v, want [0]", got)
	}
	if !v.IsExpanded(v.Active()) {
		t.Error("expansion of .a was lost")
	}

	v.SetActive(Path{0, 0})
	v.Replace(MustParse(`{"q": 1, "a": [7, 8]}`))
	if v.ActiveKeyPath() != ".a[0]" || v.ActiveNode().Raw != "7" {
		t.Errorf("active %q", v.ActiveKeyPath())
	}
}

func TestReplaceStopsAtCollapsedAncestor(t *testing.T) {
	v := New(MustParse(sample))
	v.SetActive(Path{1})
	v.Toggle()
	v.SetActive(Path{1, 1})
	delete(v.expanded, ".a")
	v.Replace(MustParse(sample))
	if v.ActiveKeyPath() != ".a" {
		t.Errorf("active %q, want .a", v.ActiveKeyPath())
	}
}

func TestReplaceFallsBackToRoot(t *testing.T) {
	v := New(MustParse(sample))
	v.MoveDown()
	if err := v.ReplaceJSON([]byte("5")); err != nil {
		t.Fatal(err)
	}
	if len(v.Active()) != 0 || v.ActiveNode().Kind != Number {
		t.Errorf("active %v", v.Active())
	}
	if err := v.ReplaceJSON([]byte("{")); err == nil {
		t.Error("invalid JSON accepted")
	}
}

func TestDraw(t *testing.T) {
	v := New(MustParse(`{"k": "v", "n": [1, 2]}`))
	buf := core.NewBuffer(20, 3)
	frame := buf.BeginFrame()
	v.Draw(frame.Root(), core.ActiveHints)
	frame.End()
	want := []string{"▾ {", `  k: "v"`, "  ▸ n: […] 2"}
	for y, w := range want {
		if got := strings.TrimRight(buf.Row(y), " "); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if buf.Cell(0, 0).Attr.Flags&core.Invert == 0 {
		t.Error("active root row not highlighted")
	}
}
