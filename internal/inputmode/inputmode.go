// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/inputmode/inputmode.go
// Summary: Modal input dispatch for the debugger console.
// Usage: Feed every terminal event through Step and route the forwarded
// event to the widget owning the resulting mode.
//
// Esc from any mode enters Pager mode and remembers where it came from. A
// second Esc within Threshold of the first goes back to that mode and hands
// it a literal Esc, so programs in the inferior terminal still receive one.
// In Pager mode single keys select the next mode.

package inputmode

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Mode names the widget group that receives input.
type Mode int

const (
	Console Mode = iota
	InferiorTerminal
	Pager
	ValueTable
)

func (m Mode) String() string {
	switch m {
	case Console:
		return "console"
	case InferiorTerminal:
		return "terminal"
	case Pager:
		return "pager"
	case ValueTable:
		return "values"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// DefaultThreshold is the double-escape window used when none is set.
const DefaultThreshold = 300 * time.Millisecond

// State is the dispatcher state. The zero value is Console mode with the
// default threshold.
type State struct {
	Mode Mode
	// Previous is the mode Pager was entered from.
	Previous Mode
	// EscapeAt is when Pager was entered by Esc; zero when not armed.
	EscapeAt  time.Time
	Threshold time.Duration
}

// New starts in mode m.
func New(m Mode, threshold time.Duration) State {
	return State{Mode: m, Previous: m, Threshold: threshold}
}

func (s State) threshold() time.Duration {
	if s.Threshold <= 0 {
		return DefaultThreshold
	}
	return s.Threshold
}

func isEsc(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	return ok && k.Key() == tcell.KeyEscape
}

func escapeEvent() *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
}

// Step applies ev received at now. It returns the new state and the event
// to forward to the new mode, or nil when the event was consumed.
func Step(s State, now time.Time, ev tcell.Event) (State, tcell.Event) {
	if s.Mode != Pager {
		if isEsc(ev) {
			s.Previous = s.Mode
			s.Mode = Pager
			s.EscapeAt = now
			return s, nil
		}
		return s, ev
	}

	armed := !s.EscapeAt.IsZero() && now.Sub(s.EscapeAt) <= s.threshold()
	s.EscapeAt = time.Time{}
	if isEsc(ev) {
		if armed && s.Previous != Pager {
			s.Mode = s.Previous
			return s, escapeEvent()
		}
		return s, nil
	}

	if k, ok := ev.(*tcell.EventKey); ok && k.Key() == tcell.KeyRune && k.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		switch k.Rune() {
		case 'i':
			return s.enter(Console), nil
		case 't':
			return s.enter(InferiorTerminal), nil
		case 'v':
			return s.enter(ValueTable), nil
		}
	}
	return s, ev
}

func (s State) enter(m Mode) State {
	s.Mode = m
	s.Previous = m
	return s
}
