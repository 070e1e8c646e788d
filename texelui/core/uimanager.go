// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/uimanager.go
// Summary: Owns the frame buffer, runs one demand/draw pass per redraw and
// flushes the result to a tcell screen.
// Notes: Render and Flush must be called from the single UI goroutine; only
// the refresh notifier is safe to poke from producers.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// UIManager renders a widget tree into its buffer.
type UIManager struct {
	W, H int
	buf  *Buffer
	base TextAttribute

	notifyMu sync.Mutex
	notifier chan<- bool

	lastDemand Demand2D
}

// NewUIManager creates a manager with an empty buffer.
func NewUIManager() *UIManager {
	return &UIManager{buf: NewBuffer(0, 0)}
}

// SetBaseAttribute sets the attribute every frame starts from.
func (u *UIManager) SetBaseAttribute(a TextAttribute) { u.base = a }

// SetRefreshNotifier installs the channel that RequestRefresh signals.
func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.notifyMu.Lock()
	defer u.notifyMu.Unlock()
	u.notifier = ch
}

// RequestRefresh asks the owner loop for a redraw without blocking.
// Safe to call from any goroutine.
func (u *UIManager) RequestRefresh() {
	u.notifyMu.Lock()
	ch := u.notifier
	u.notifyMu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

// Resize sets the terminal size used for the next frame.
func (u *UIManager) Resize(w, h int) {
	w, h = clampNonNegative(w), clampNonNegative(h)
	u.W, u.H = w, h
	u.buf.Resize(w, h)
}

// Buffer exposes the frame buffer of the last render.
func (u *UIManager) Buffer() *Buffer { return u.buf }

// LastDemand returns the root demand computed by the last Render.
func (u *UIManager) LastDemand() Demand2D { return u.lastDemand }

// Render asks root for its demand, then draws it into a full-size window.
func (u *UIManager) Render(root Widget) *Buffer {
	frame := u.buf.BeginFrame()
	defer frame.End()
	if root == nil {
		return u.buf
	}
	u.lastDemand = root.Demand()
	win := frame.Root().WithAttribute(u.base)
	win.Clear(Plain)
	root.Draw(win, ActiveHints)
	return u.buf
}

// Flush copies the buffer to screen and shows it.
func (u *UIManager) Flush(screen tcell.Screen) {
	w, h := u.buf.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := u.buf.Cell(x, y)
			if cell.Cluster.IsEmpty() {
				continue
			}
			mainc, combc := cell.Cluster.Runes()
			screen.SetContent(x, y, mainc, combc, cell.Attr.Style())
		}
	}
	screen.Show()
}
