// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/sigwinch/sigwinch_unix.go
// Summary: SIGWINCH wiring for unix platforms.

//go:build unix

package sigwinch

import (
	"os"
	"os/signal"
	"syscall"
)

var signals = make(chan os.Signal, 1)

func (h *handler) start() error {
	signal.Notify(signals, syscall.SIGWINCH)
	go h.loop()
	return nil
}

func (h *handler) halt() {
	signal.Stop(signals)
}

func (h *handler) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.stop:
			return
		case <-signals:
			h.publish()
		}
	}
}
