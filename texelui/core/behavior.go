// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/behavior.go
// Summary: Input events and composable input behaviors.
// Usage: Chain(in, b1, b2, ...) offers the event to each behavior in turn;
// the first behavior that consumes it ends the chain.

package core

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Input wraps one event delivered to the focused widget: a key press, a
// paste or a resize.
type Input struct {
	Event tcell.Event
}

// PasteEvent carries a complete bracketed paste.
type PasteEvent struct {
	Text string
	when time.Time
}

// NewPasteEvent builds a paste event stamped with the current time.
func NewPasteEvent(text string) *PasteEvent {
	return &PasteEvent{Text: text, when: time.Now()}
}

// When implements tcell.Event.
func (p *PasteEvent) When() time.Time { return p.when }

// Key returns the key event, if the input is one.
func (in Input) Key() (*tcell.EventKey, bool) {
	ev, ok := in.Event.(*tcell.EventKey)
	return ev, ok
}

// Behavior interprets an input. Consume returns true when the event was
// fully handled and must not be offered further.
type Behavior interface {
	Consume(in Input) bool
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(in Input) bool

func (f BehaviorFunc) Consume(in Input) bool { return f(in) }

// Chain offers in to each behavior in order. It returns the unchanged input
// and true when no behavior consumed it.
func Chain(in Input, behaviors ...Behavior) (Input, bool) {
	for _, b := range behaviors {
		if b != nil && b.Consume(in) {
			return Input{}, false
		}
	}
	return in, true
}

// Key describes a key press to match against.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// KeyCode matches a special key.
func KeyCode(k tcell.Key) Key { return Key{Code: k} }

// KeyRune matches a printable rune.
func KeyRune(r rune) Key { return Key{Code: tcell.KeyRune, Rune: r} }

// Matches reports whether ev is this key.
func (k Key) Matches(ev *tcell.EventKey) bool {
	if ev == nil || ev.Key() != k.Code {
		return false
	}
	if k.Code == tcell.KeyRune {
		return ev.Rune() == k.Rune && ev.Modifiers()&^tcell.ModShift == k.Mod
	}
	return k.Mod == 0 || ev.Modifiers() == k.Mod
}

func matchesAny(in Input, keys []Key) bool {
	ev, ok := in.Key()
	if !ok {
		return false
	}
	for _, k := range keys {
		if k.Matches(ev) {
			return true
		}
	}
	return false
}

// KeyAction runs Action when one of Keys is pressed.
type KeyAction struct {
	Keys   []Key
	Action func()
}

func (a KeyAction) Consume(in Input) bool {
	if !matchesAny(in, a.Keys) {
		return false
	}
	if a.Action != nil {
		a.Action()
	}
	return true
}

// ScrollBehavior maps keys to a Scrollable. A key that matches consumes the
// event even when the target could not move.
type ScrollBehavior struct {
	Target      Scrollable
	Backwards   []Key
	Forwards    []Key
	ToBeginning []Key
	ToEnd       []Key
	// OnEnd, when set, is called whenever the target could not move.
	OnEnd func()
}

// DefaultScrollBehavior binds arrow keys, page keys, Home and End.
func DefaultScrollBehavior(target Scrollable) ScrollBehavior {
	return ScrollBehavior{
		Target:      target,
		Backwards:   []Key{KeyCode(tcell.KeyUp), KeyCode(tcell.KeyPgUp)},
		Forwards:    []Key{KeyCode(tcell.KeyDown), KeyCode(tcell.KeyPgDn)},
		ToBeginning: []Key{KeyCode(tcell.KeyHome)},
		ToEnd:       []Key{KeyCode(tcell.KeyEnd)},
	}
}

func (b ScrollBehavior) Consume(in Input) bool {
	if b.Target == nil {
		return false
	}
	var moved bool
	switch {
	case matchesAny(in, b.Backwards):
		moved = b.Target.ScrollBackwards()
	case matchesAny(in, b.Forwards):
		moved = b.Target.ScrollForwards()
	case matchesAny(in, b.ToBeginning):
		moved = b.Target.ScrollToBeginning()
	case matchesAny(in, b.ToEnd):
		moved = b.Target.ScrollToEnd()
	default:
		return false
	}
	if !moved && b.OnEnd != nil {
		b.OnEnd()
	}
	return true
}

// EditBehavior maps editing keys and printable runes to an Editable.
type EditBehavior struct {
	Target Editable
}

func (b EditBehavior) Consume(in Input) bool {
	if b.Target == nil {
		return false
	}
	if p, ok := in.Event.(*PasteEvent); ok {
		b.Target.Insert(p.Text)
		return true
	}
	ev, ok := in.Key()
	if !ok {
		return false
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		b.Target.MoveLeft()
	case tcell.KeyRight:
		b.Target.MoveRight()
	case tcell.KeyHome, tcell.KeyCtrlA:
		b.Target.MoveToStart()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		b.Target.MoveToEnd()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		b.Target.DeleteBackward()
	case tcell.KeyDelete:
		b.Target.DeleteForward()
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		b.Target.Insert(string(ev.Rune()))
	default:
		return false
	}
	return true
}

// NavigateBehavior maps keys to a Navigable.
type NavigateBehavior struct {
	Target Navigable
	Up     []Key
	Down   []Key
	Toggle []Key
}

// DefaultNavigateBehavior binds arrows, j/k and Enter/space.
func DefaultNavigateBehavior(target Navigable) NavigateBehavior {
	return NavigateBehavior{
		Target: target,
		Up:     []Key{KeyCode(tcell.KeyUp), KeyRune('k')},
		Down:   []Key{KeyCode(tcell.KeyDown), KeyRune('j')},
		Toggle: []Key{KeyCode(tcell.KeyEnter), KeyRune(' ')},
	}
}

func (b NavigateBehavior) Consume(in Input) bool {
	if b.Target == nil {
		return false
	}
	switch {
	case matchesAny(in, b.Up):
		b.Target.MoveUp()
	case matchesAny(in, b.Down):
		b.Target.MoveDown()
	case matchesAny(in, b.Toggle):
		b.Target.Toggle()
	default:
		return false
	}
	return true
}
