// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/console/terminal.go
// Summary: Inferior process wiring: startup, output pump, key forwarding.

package console

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldbg/internal/devshell"
	"github.com/framegrace/texeldbg/internal/ptybridge"
	"github.com/framegrace/texeldbg/texelui/core"
)

var errNoInferior = errors.New("no inferior process")

func (a *App) spawnShell(cols, rows int) (*ptybridge.Bridge, error) {
	fields := strings.Fields(a.settings.Shell)
	if len(fields) == 0 {
		return nil, nil
	}
	return ptybridge.Start(fields[0], fields[1:], cols, rows)
}

// Attach implements devshell.Attacher. It starts the inferior and the tail
// poller; both report back through p.
func (a *App) Attach(p devshell.Poster) {
	a.poster = p
	b, err := a.startInferior(a.termCols, a.termRows)
	switch {
	case err != nil:
		a.messagef("inferior: %v", err)
		log.Printf("[CONSOLE] Failed to start inferior %q: %v", a.settings.Shell, err)
	case b != nil:
		a.bridge = b
	}
	go a.pollTail()
}

// Run implements devshell.Background. It moves inferior output onto the
// event loop until Stop.
func (a *App) Run() error {
	var out <-chan []byte
	var exited <-chan struct{}
	if a.bridge != nil {
		out = a.bridge.Output()
		exited = a.bridge.Exited()
	}
	for {
		select {
		case chunk, ok := <-out:
			if !ok {
				out = nil
				continue
			}
			a.post(func() { a.writeTerminal(chunk) })
		case <-exited:
			exited = nil
			err := a.bridge.Err()
			a.post(func() {
				a.termExited = true
				if err != nil {
					a.messagef("inferior exited: %v", err)
				} else {
					a.message("inferior exited")
				}
			})
		case <-a.stop:
			return nil
		}
	}
}

// Stop implements devshell.Background.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
		if a.bridge != nil {
			if err := a.bridge.Close(); err != nil {
				log.Printf("[CONSOLE] Failed to close inferior: %v", err)
			}
		}
		a.stopTail()
		if a.index != nil {
			if err := a.index.Close(); err != nil {
				log.Printf("[CONSOLE] Failed to close search index: %v", err)
			}
		}
	})
}

func (a *App) pollTail() {
	interval := a.settings.TailPoll
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if a.tailing.Load() {
				a.post(a.refreshTail)
			}
		case <-a.stop:
			return
		}
	}
}

// writeTerminal appends inferior output and indexes the lines it completed.
func (a *App) writeTerminal(chunk []byte) {
	a.sink.Write(chunk)
	for a.termIndexed < a.termLines.NumLines()-1 {
		text, _, _ := a.termLines.ViewLine(a.termIndexed)
		a.indexLine(text, false)
		a.termIndexed++
	}
}

func (a *App) writeInferior(s string) error {
	if a.bridge == nil {
		return errNoInferior
	}
	if _, err := a.bridge.Write([]byte(s)); err != nil {
		return fmt.Errorf("write to inferior: %w", err)
	}
	return nil
}

func (a *App) resizeTerminal(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.termCols, a.termRows = w, h
	if a.bridge == nil {
		return
	}
	if err := a.bridge.Resize(w, h); err != nil {
		log.Printf("[CONSOLE] Failed to resize inferior: %v", err)
	}
}

// forwardToInferior writes keys and pastes to the inferior as the bytes a
// terminal would send.
func (a *App) forwardToInferior(in core.Input) bool {
	if a.bridge == nil {
		return false
	}
	var data []byte
	switch ev := in.Event.(type) {
	case *core.PasteEvent:
		data = []byte(ev.Text)
	case *tcell.EventKey:
		data = keyBytes(ev)
	}
	if len(data) == 0 {
		return false
	}
	if err := a.writeInferior(string(data)); err != nil {
		log.Printf("[CONSOLE] %v", err)
	}
	return true
}

var cursorKeys = map[tcell.Key]string{
	tcell.KeyUp:     "\x1b[A",
	tcell.KeyDown:   "\x1b[B",
	tcell.KeyRight:  "\x1b[C",
	tcell.KeyLeft:   "\x1b[D",
	tcell.KeyHome:   "\x1b[H",
	tcell.KeyEnd:    "\x1b[F",
	tcell.KeyDelete: "\x1b[3~",
}

func keyBytes(ev *tcell.EventKey) []byte {
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		buf := make([]byte, 0, utf8.UTFMax+1)
		if ev.Modifiers()&tcell.ModAlt != 0 {
			buf = append(buf, 0x1b)
		}
		return utf8.AppendRune(buf, ev.Rune())
	case k == tcell.KeyEnter:
		return []byte{'\r'}
	case k == tcell.KeyBackspace2:
		return []byte{0x7f}
	case k < 0x20:
		// Control keys share their code with the byte they send.
		return []byte{byte(k)}
	}
	if seq, ok := cursorKeys[k]; ok {
		return []byte(seq)
	}
	return nil
}
