// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/logviewer.go
// Summary: Bottom-anchored viewer over a line storage.
// Usage: Feed the storage elsewhere; the viewer follows new lines until the
// user scrolls back, and resumes following when scrolled past the newest line.

package widgets

import (
	"log"

	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/linestorage"
	"github.com/framegrace/texeldbg/texelui/scroll"
)

// LogViewer shows the lines of a storage ending at either the newest line
// (following) or a pinned line.
type LogViewer struct {
	storage linestorage.LineStorage
	// pinned is the bottom-most visible line while not following.
	pinned    int
	following bool
	height    int
	err       error

	Attr       core.TextAttribute
	Indicators scroll.IndicatorConfig
	// NoWrap truncates long lines instead of wrapping them.
	NoWrap bool
}

// NewLogViewer follows s.
func NewLogViewer(s linestorage.LineStorage) *LogViewer {
	return &LogViewer{
		storage:    s,
		following:  true,
		Indicators: scroll.DefaultIndicatorConfig(core.WithFlags(core.Bold)),
	}
}

// Storage returns the viewed storage.
func (v *LogViewer) Storage() linestorage.LineStorage { return v.storage }

// SetStorage switches to s and starts following it.
func (v *LogViewer) SetStorage(s linestorage.LineStorage) {
	v.storage = s
	v.following = true
	v.err = nil
}

// Position returns the pinned bottom line; ok is false while following.
func (v *LogViewer) Position() (line int, ok bool) {
	if v.following {
		return 0, false
	}
	return v.pinned, true
}

// Err returns the last storage error met while drawing.
func (v *LogViewer) Err() error { return v.err }

func (v *LogViewer) numLines() int {
	if v.storage == nil {
		return 0
	}
	return v.storage.NumLines()
}

// bottom is the index of the last line to draw, or -1 when empty.
func (v *LogViewer) bottom() int {
	n := v.numLines()
	if v.following {
		return n - 1
	}
	if v.pinned >= n {
		v.pinned = n - 1
	}
	return v.pinned
}

func (v *LogViewer) ScrollBackwards() bool {
	b := v.bottom()
	if b <= 0 {
		return false
	}
	v.pinned = b - 1
	v.following = false
	return true
}

func (v *LogViewer) ScrollForwards() bool {
	if v.following {
		return false
	}
	if v.pinned+1 < v.numLines() {
		v.pinned++
		return true
	}
	v.following = true
	return true
}

// ScrollToBeginning pins the view so that the first line is at the top.
func (v *LogViewer) ScrollToBeginning() bool {
	n := v.numLines()
	if n == 0 {
		return false
	}
	target := min(max(v.height, 1), n) - 1
	if !v.following && v.pinned == target {
		return false
	}
	v.pinned = target
	v.following = false
	return true
}

func (v *LogViewer) ScrollToEnd() bool {
	if v.following {
		return false
	}
	v.following = true
	return true
}

func (v *LogViewer) Demand() core.Demand2D {
	return core.Demand2D{Width: core.AtLeast(1), Height: core.AtLeast(1)}
}

// Draw writes the visible lines oldest first into the bottom row with an
// upward cursor, so that earlier rows scroll out of the top of the window.
func (v *LogViewer) Draw(win core.Window, hints core.RenderingHints) {
	w, h := win.Size()
	v.height = h
	if w <= 0 || h <= 0 || v.storage == nil {
		return
	}
	bottom := v.bottom()
	if bottom < 0 {
		return
	}

	var lines []string
	rows := 0
	view := linestorage.View(v.storage, 0, bottom+1)
	for rows < h {
		l, ok := view.Prev()
		if !ok {
			break
		}
		lines = append(lines, l.Text)
		rows += v.rowsFor(l.Text, w)
	}
	if err := view.Err(); err != nil {
		if v.err == nil {
			log.Printf("[LOGVIEWER] storage read failed: %v", err)
		}
		v.err = err
	} else {
		v.err = nil
	}
	hiddenAbove := view.Remaining() > 0 || rows > h

	c := core.NewCursor(win)
	c.Direction = core.Up
	if !v.NoWrap {
		c.Wrap = core.Wrap
	}
	c.SetAttribute(v.Attr)
	c.MoveTo(0, h-1)
	for i := len(lines) - 1; i >= 0; i-- {
		c.Write(lines[i])
		if i > 0 {
			c.NewLine()
		}
	}

	down := !v.following && bottom < v.numLines()-1
	scroll.DrawIndicators(win, hiddenAbove, down, v.Indicators)
}

// rowsFor counts the rows text occupies at width w.
func (v *LogViewer) rowsFor(text string, w int) int {
	if v.NoWrap {
		return 1
	}
	return core.WrappedRows(text, w, 0)
}
