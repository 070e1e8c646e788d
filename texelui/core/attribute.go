// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/attribute.go
// Summary: Optional-field text attributes and their merge rule.

package core

import "github.com/gdamore/tcell/v2"

// StyleFlags is an independent bitset of text emphasis flags.
type StyleFlags uint8

const (
	Bold StyleFlags = 1 << iota
	Italic
	Underline
	Invert
)

// String returns a human-readable representation of the flags.
func (f StyleFlags) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		flag StyleFlags
		name string
	}{{Bold, "bold"}, {Italic, "italic"}, {Underline, "underline"}, {Invert, "invert"}}
	out := ""
	for _, n := range names {
		if f&n.flag == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// TextAttribute is a partial style. tcell.ColorDefault in FG or BG means
// "inherit from context"; flags can only be added by an override.
type TextAttribute struct {
	FG    tcell.Color
	BG    tcell.Color
	Flags StyleFlags
}

// Plain is the attribute that inherits everything.
var Plain = TextAttribute{}

// Foreground returns an attribute that only sets the foreground colour.
func Foreground(c tcell.Color) TextAttribute { return TextAttribute{FG: c} }

// Background returns an attribute that only sets the background colour.
func Background(c tcell.Color) TextAttribute { return TextAttribute{BG: c} }

// WithFlags returns an attribute that only sets flags.
func WithFlags(f StyleFlags) TextAttribute { return TextAttribute{Flags: f} }

// Or layers override on top of a: set colours in override win, flags add up.
func (a TextAttribute) Or(override TextAttribute) TextAttribute {
	out := a
	if override.FG != tcell.ColorDefault {
		out.FG = override.FG
	}
	if override.BG != tcell.ColorDefault {
		out.BG = override.BG
	}
	out.Flags |= override.Flags
	return out
}

// Style converts the attribute to a tcell style for output.
func (a TextAttribute) Style() tcell.Style {
	st := tcell.StyleDefault.Foreground(a.FG).Background(a.BG)
	if a.Flags&Bold != 0 {
		st = st.Bold(true)
	}
	if a.Flags&Italic != 0 {
		st = st.Italic(true)
	}
	if a.Flags&Underline != 0 {
		st = st.Underline(true)
	}
	if a.Flags&Invert != 0 {
		st = st.Reverse(true)
	}
	return st
}
