// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sigwinch/sigwinch.go
// Summary: Process-wide terminal resize notifications.
// Usage: Install once at startup and hand the channel to the UI loop; only
// one handler may exist at a time.

package sigwinch

import (
	"errors"
	"sync"

	"golang.org/x/term"
)

// Size is a terminal size in cells.
type Size struct {
	Cols int
	Rows int
}

var (
	// ErrAlreadyInstalled is returned by a second Install.
	ErrAlreadyInstalled = errors.New("sigwinch: handler already installed")
	// ErrUnsupported is returned on platforms without SIGWINCH.
	ErrUnsupported = errors.New("sigwinch: not supported on this platform")
)

var (
	mu        sync.Mutex
	installed *handler

	// getSize is swapped in tests.
	getSize = term.GetSize
)

type handler struct {
	fd     int
	events chan Size
	stop   chan struct{}
	done   chan struct{}
}

// Install starts watching resizes of the terminal on fd. The returned
// channel holds at most one pending size; a newer size replaces an unread
// one.
func Install(fd int) (<-chan Size, error) {
	mu.Lock()
	defer mu.Unlock()
	if installed != nil {
		return nil, ErrAlreadyInstalled
	}
	h := &handler{
		fd:     fd,
		events: make(chan Size, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if err := h.start(); err != nil {
		return nil, err
	}
	installed = h
	return h.events, nil
}

// Uninstall stops the active handler, if any. Its channel is closed.
func Uninstall() {
	mu.Lock()
	h := installed
	installed = nil
	mu.Unlock()
	if h == nil {
		return
	}
	h.halt()
	close(h.stop)
	<-h.done
	close(h.events)
}

// Current reads the size of the terminal on fd.
func Current(fd int) (Size, error) {
	w, h, err := getSize(fd)
	if err != nil {
		return Size{}, err
	}
	return Size{Cols: w, Rows: h}, nil
}

func (h *handler) publish() {
	s, err := Current(h.fd)
	if err != nil || s.Cols <= 0 || s.Rows <= 0 {
		return
	}
	select {
	case h.events <- s:
	default:
		select {
		case <-h.events:
		default:
		}
		h.events <- s
	}
}
