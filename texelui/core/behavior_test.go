// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/behavior_test.go
// Summary: Tests for behavior chaining and the stock behaviors.

package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type fakeScroll struct {
	back, fwd int
	atEnd     bool
}

func (f *fakeScroll) ScrollBackwards() bool   { f.back++; return true }
func (f *fakeScroll) ScrollForwards() bool    { f.fwd++; return !f.atEnd }
func (f *fakeScroll) ScrollToBeginning() bool { return true }
func (f *fakeScroll) ScrollToEnd() bool       { return true }

type fakeEdit struct {
	text string
	ops  []string
}

func (f *fakeEdit) MoveLeft() bool       { f.ops = append(f.ops, "left"); return true }
func (f *fakeEdit) MoveRight() bool      { f.ops = append(f.ops, "right"); return true }
func (f *fakeEdit) MoveToStart() bool    { f.ops = append(f.ops, "start"); return true }
func (f *fakeEdit) MoveToEnd() bool      { f.ops = append(f.ops, "end"); return true }
func (f *fakeEdit) Insert(s string)      { f.text += s }
func (f *fakeEdit) DeleteForward() bool  { f.ops = append(f.ops, "del"); return true }
func (f *fakeEdit) DeleteBackward() bool { f.ops = append(f.ops, "bs"); return true }
func (f *fakeEdit) Clear() bool          { f.text = ""; return true }

func key(k tcell.Key) Input {
	return Input{Event: tcell.NewEventKey(k, 0, tcell.ModNone)}
}

func runeKey(r rune) Input {
	return Input{Event: tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)}
}

func TestChainStopsAtFirstConsumer(t *testing.T) {
	cleared := false
	edit := &fakeEdit{}
	clearAction := KeyAction{Keys: []Key{KeyCode(tcell.KeyCtrlC)}, Action: func() { cleared = true }}

	if _, passed := Chain(Input{Event: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)}, clearAction, EditBehavior{Target: edit}); passed {
		t.Fatal("ctrl-c should be consumed")
	}
	if !cleared {
		t.Error("clear action not run")
	}

	if _, passed := Chain(runeKey('x'), clearAction, EditBehavior{Target: edit}); passed {
		t.Fatal("rune should be consumed by the edit behavior")
	}
	if edit.text != "x" {
		t.Errorf("edit text = %q", edit.text)
	}
}

func TestChainPassesThroughUnchanged(t *testing.T) {
	in := key(tcell.KeyF5)
	out, passed := Chain(in, EditBehavior{Target: &fakeEdit{}}, DefaultScrollBehavior(&fakeScroll{}))
	if !passed {
		t.Fatal("F5 should pass through")
	}
	if out.Event != in.Event {
		t.Error("passed-through input must be the original event")
	}
}

func TestScrollBehaviorReportsEnd(t *testing.T) {
	s := &fakeScroll{atEnd: true}
	beeps := 0
	b := DefaultScrollBehavior(s)
	b.OnEnd = func() { beeps++ }
	if _, passed := Chain(key(tcell.KeyDown), b); passed {
		t.Fatal("down should be consumed")
	}
	if s.fwd != 1 || beeps != 1 {
		t.Errorf("fwd=%d beeps=%d", s.fwd, beeps)
	}
	Chain(key(tcell.KeyUp), b)
	if s.back != 1 || beeps != 1 {
		t.Errorf("back=%d beeps=%d", s.back, beeps)
	}
}

func TestEditBehaviorPaste(t *testing.T) {
	edit := &fakeEdit{}
	if _, passed := Chain(Input{Event: NewPasteEvent("pasted text")}, EditBehavior{Target: edit}); passed {
		t.Fatal("paste should be consumed")
	}
	if edit.text != "pasted text" {
		t.Errorf("text = %q", edit.text)
	}
	Chain(key(tcell.KeyBackspace2), EditBehavior{Target: edit})
	Chain(key(tcell.KeyLeft), EditBehavior{Target: edit})
	if len(edit.ops) != 2 || edit.ops[0] != "bs" || edit.ops[1] != "left" {
		t.Errorf("ops = %v", edit.ops)
	}
}

func TestKeyMatchesRuneWithModifier(t *testing.T) {
	k := Key{Code: tcell.KeyRune, Rune: 'f', Mod: tcell.ModAlt}
	if !k.Matches(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt)) {
		t.Error("alt-f should match")
	}
	if k.Matches(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)) {
		t.Error("plain f should not match alt-f")
	}
}
