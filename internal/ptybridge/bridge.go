// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ptybridge/bridge.go
// Summary: Runs the inferior process on a pseudo-terminal.
// Usage: Start the process, drain Output on the UI goroutine into a Sink,
// forward typed bytes with Write and window sizes with Resize.

package ptybridge

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// ErrClosed is returned by Write and Resize after Close.
var ErrClosed = errors.New("ptybridge: closed")

// Bridge owns a process and the master side of its terminal.
type Bridge struct {
	cmd    *exec.Cmd
	pty    *os.File
	output chan []byte
	stop   chan struct{}
	exited chan struct{}

	mu      sync.Mutex
	closed  bool
	waitErr error
}

// Start runs name with args on a new terminal of the given size. The
// process sees TERM=dumb because output is shown as plain lines.
func Start(name string, args []string, cols, rows int) (*Bridge, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), "TERM=dumb")
	ptmx, err := pty.StartWithSize(cmd, winsize(cols, rows))
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	b := &Bridge{
		cmd:    cmd,
		pty:    ptmx,
		output: make(chan []byte, 64),
		stop:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go b.readLoop()
	go b.wait()
	log.Printf("[PTY] started %s (pid %d)", name, cmd.Process.Pid)
	return b, nil
}

func winsize(cols, rows int) *pty.Winsize {
	return &pty.Winsize{Cols: uint16(max(cols, 1)), Rows: uint16(max(rows, 1))}
}

// Output delivers chunks in the order they were read. It is closed when the
// terminal reaches end of file or the bridge is closed.
func (b *Bridge) Output() <-chan []byte { return b.output }

// Exited is closed once the process has been reaped.
func (b *Bridge) Exited() <-chan struct{} { return b.exited }

// Err returns the process exit error after Exited is closed.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.waitErr
}

func (b *Bridge) readLoop() {
	defer close(b.output)
	buf := make([]byte, 4096)
	for {
		n, err := b.pty.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case b.output <- chunk:
			case <-b.stop:
				return
			}
		}
		if err != nil {
			// Linux reports EIO on the master once the child side is gone.
			if !errors.Is(err, io.EOF) && !errors.Is(err, syscall.EIO) && !errors.Is(err, os.ErrClosed) {
				log.Printf("[PTY] read failed: %v", err)
			}
			return
		}
	}
}

func (b *Bridge) wait() {
	err := b.cmd.Wait()
	b.mu.Lock()
	b.waitErr = err
	b.mu.Unlock()
	close(b.exited)
}

// Write sends input bytes to the process.
func (b *Bridge) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrClosed
	}
	n, err := b.pty.Write(p)
	if err != nil {
		return n, fmt.Errorf("write to pty: %w", err)
	}
	return n, nil
}

// Resize changes the terminal size seen by the process.
func (b *Bridge) Resize(cols, rows int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if err := pty.Setsize(b.pty, winsize(cols, rows)); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	return nil
}

// Close terminates the process and releases the terminal. It waits for the
// process to be reaped.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.stop)
	b.mu.Unlock()

	select {
	case <-b.exited:
	default:
		if b.cmd.Process != nil {
			b.cmd.Process.Signal(syscall.SIGTERM)
		}
	}
	err := b.pty.Close()
	<-b.exited
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("close pty: %w", err)
	}
	return nil
}
