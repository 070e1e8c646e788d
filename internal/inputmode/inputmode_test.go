// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/inputmode/inputmode_test.go
// Summary: Tests for mode transitions and double-escape timing.

package inputmode

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func esc() tcell.Event { return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone) }

func key(r rune) tcell.Event { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestEscapeEntersPagerFromAnyMode(t *testing.T) {
	for _, m := range []Mode{Console, InferiorTerminal, ValueTable} {
		s, fwd := Step(New(m, 0), t0, esc())
		if s.Mode != Pager || s.Previous != m || fwd != nil {
			t.Errorf("from %v: mode %v previous %v forwarded %v", m, s.Mode, s.Previous, fwd)
		}
	}
}

func TestDoubleEscapeReturnsWithEscape(t *testing.T) {
	s, _ := Step(New(InferiorTerminal, 200*time.Millisecond), t0, esc())
	s, fwd := Step(s, t0.Add(150*time.Millisecond), esc())
	if s.Mode != InferiorTerminal {
		t.Fatalf("mode %v, want terminal", s.Mode)
	}
	k, ok := fwd.(*tcell.EventKey)
	if !ok || k.Key() != tcell.KeyEscape {
		t.Fatalf("forwarded %v, want Esc", fwd)
	}
}

func TestSlowSecondEscapeStaysInPager(t *testing.T) {
	s, _ := Step(New(Console, 200*time.Millisecond), t0, esc())
	s, fwd := Step(s, t0.Add(time.Second), esc())
	if s.Mode != Pager || fwd != nil {
		t.Errorf("mode %v forwarded %v", s.Mode, fwd)
	}
}

func TestPagerSelectsMode(t *testing.T) {
	cases := map[rune]Mode{'i': Console, 't': InferiorTerminal, 'v': ValueTable}
	for r, want := range cases {
		s, _ := Step(New(Console, 0), t0, esc())
		s, fwd := Step(s, t0.Add(time.Second), key(r))
		if s.Mode != want || fwd != nil {
			t.Errorf("%q: mode %v forwarded %v", r, s.Mode, fwd)
		}
	}
}

func TestPagerForwardsOtherKeys(t *testing.T) {
	s, _ := Step(New(Console, 0), t0, esc())
	s, fwd := Step(s, t0.Add(10*time.Millisecond), key('j'))
	if s.Mode != Pager || fwd == nil {
		t.Fatalf("mode %v forwarded %v", s.Mode, fwd)
	}
	// Any event in between disarms the double escape.
	s, fwd = Step(s, t0.Add(20*time.Millisecond), esc())
	if s.Mode != Pager || fwd != nil {
		t.Errorf("disarmed escape: mode %v forwarded %v", s.Mode, fwd)
	}
}

func TestNonPagerModesForward(t *testing.T) {
	ev := key('x')
	s, fwd := Step(State{}, t0, ev)
	if s.Mode != Console || fwd != ev {
		t.Errorf("console: mode %v forwarded %v", s.Mode, fwd)
	}
}
