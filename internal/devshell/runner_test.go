// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner_test.go
// Summary: Exercises devshell runner behaviour to ensure the standalone harness remains reliable.
// Usage: Executed during `go test` to guard against regressions.

package devshell_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldbg/internal/devshell"
	"github.com/framegrace/texeldbg/internal/sigwinch"
	"github.com/framegrace/texeldbg/texelui/core"
)

type stubApp struct {
	mu           sync.Mutex
	renderCount  int
	resizes      [][2]int
	keys         []*tcell.EventKey
	pastes       []string
	posted       int
	poster       devshell.Poster
	stopCalled   bool
	stopCh       chan struct{}
	runStarted   chan struct{}
	runCompleted chan struct{}
	runErr       error
}

func newStubApp() *stubApp {
	return &stubApp{
		stopCh:       make(chan struct{}),
		runStarted:   make(chan struct{}),
		runCompleted: make(chan struct{}),
	}
}

func (a *stubApp) Run() error {
	close(a.runStarted)
	<-a.stopCh
	close(a.runCompleted)
	return a.runErr
}

func (a *stubApp) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopCalled {
		return
	}
	a.stopCalled = true
	close(a.stopCh)
}

func (a *stubApp) Attach(p devshell.Poster) { a.poster = p }

func (a *stubApp) Resize(cols, rows int) {
	a.mu.Lock()
	a.resizes = append(a.resizes, [2]int{cols, rows})
	a.mu.Unlock()
}

func (a *stubApp) Root() core.Widget {
	return core.WidgetFunc{
		DrawFn: func(win core.Window, _ core.RenderingHints) {
			a.mu.Lock()
			a.renderCount++
			a.mu.Unlock()
			core.NewCursor(win).Write("X")
		},
	}
}

func (a *stubApp) HandleEvent(ev tcell.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch tev := ev.(type) {
	case *tcell.EventKey:
		a.keys = append(a.keys, tev)
		return tev.Key() == tcell.KeyRune && tev.Rune() == 'q'
	case *core.PasteEvent:
		a.pastes = append(a.pastes, tev.Text)
	}
	return false
}

func (a *stubApp) waitRunStarted(t *testing.T) {
	t.Helper()
	select {
	case <-a.runStarted:
	case <-time.After(time.Second):
		t.Fatal("app.Run was not invoked")
	}
}

func (a *stubApp) waitRunCompleted(t *testing.T) {
	t.Helper()
	select {
	case <-a.runCompleted:
	case <-time.After(time.Second):
		t.Fatal("app was not stopped")
	}
}

func (a *stubApp) renderCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderCount
}

func (a *stubApp) lastResize() (int, int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.resizes) == 0 {
		return 0, 0, false
	}
	last := a.resizes[len(a.resizes)-1]
	return last[0], last[1], true
}

func (a *stubApp) recordedKeys() []*tcell.EventKey {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*tcell.EventKey, len(a.keys))
	copy(out, a.keys)
	return out
}

func (a *stubApp) recordedPastes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.pastes...)
}

func (a *stubApp) postedCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.posted
}

func useSimulationScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	devshell.SetScreenFactory(func() (tcell.Screen, error) {
		return screen, nil
	})
	t.Cleanup(func() { devshell.SetScreenFactory(nil) })
	return screen
}

func TestRunHandlesInputRefreshAndShutdown(t *testing.T) {
	screen := useSimulationScreen(t)

	app := newStubApp()
	builder := func(args []string) (devshell.App, error) {
		if len(args) != 1 || args[0] != "demo" {
			return nil, errors.New("unexpected args")
		}
		return app, nil
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- devshell.Run(builder, []string{"demo"})
	}()

	app.waitRunStarted(t)

	// Initial draw should have rendered at least once.
	if calls := app.renderCalls(); calls == 0 {
		t.Fatalf("expected initial render, got %d", calls)
	}

	// Trigger a refresh and expect another render.
	app.poster.RequestRefresh()
	waitFor(func() bool { return app.renderCalls() > 1 }, 500*time.Millisecond, t, "render after refresh")

	// Posted work runs on the loop and is followed by a draw.
	before := app.renderCalls()
	app.poster.Post(func() {
		app.mu.Lock()
		app.posted++
		app.mu.Unlock()
	})
	waitFor(func() bool { return app.postedCount() == 1 && app.renderCalls() > before }, 500*time.Millisecond, t, "posted work")

	// Send key event and verify it reaches the app.
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	waitFor(func() bool {
		keys := app.recordedKeys()
		return len(keys) > 0 && keys[0].Rune() == 'x'
	}, 500*time.Millisecond, t, "key press to be handled")

	// Send resize and confirm app receives new size.
	screen.PostEvent(tcell.NewEventResize(50, 12))
	waitFor(func() bool {
		w, h, ok := app.lastResize()
		return ok && w == 50 && h == 12
	}, 500*time.Millisecond, t, "resize event to be handled")

	// Ctrl-C belongs to the app.
	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))
	waitFor(func() bool { return len(app.recordedKeys()) == 2 }, 500*time.Millisecond, t, "Ctrl-C to reach the app")

	// The app asks to quit.
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not exit when the app quit")
	}

	app.waitRunCompleted(t)
	if !app.stopCalled {
		t.Fatal("app.Stop was not invoked")
	}
}

func TestRunCollectsPaste(t *testing.T) {
	screen := useSimulationScreen(t)
	app := newStubApp()

	errCh := make(chan error, 1)
	go func() {
		errCh <- devshell.Run(func([]string) (devshell.App, error) { return app, nil }, nil)
	}()
	app.waitRunStarted(t)

	screen.PostEvent(tcell.NewEventPaste(true))
	for _, r := range "ab" {
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, r, 0))
	}
	screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'c', 0))
	screen.PostEvent(tcell.NewEventPaste(false))

	waitFor(func() bool {
		p := app.recordedPastes()
		return len(p) == 1 && p[0] == "ab\nc"
	}, 500*time.Millisecond, t, "paste to be delivered")
	if keys := app.recordedKeys(); len(keys) != 0 {
		t.Fatalf("pasted keys leaked as key events: %d", len(keys))
	}

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("run did not exit")
	}
}

func TestRunForwardsResizeSignals(t *testing.T) {
	screen := useSimulationScreen(t)
	app := newStubApp()
	sizes := make(chan sigwinch.Size, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- devshell.Run(func([]string) (devshell.App, error) { return app, nil }, nil,
			devshell.WithResizeSignals(sizes))
	}()
	app.waitRunStarted(t)

	sizes <- sigwinch.Size{Cols: 33, Rows: 7}
	waitFor(func() bool {
		w, h, ok := app.lastResize()
		return ok && w == 33 && h == 7
	}, 500*time.Millisecond, t, "signal resize to be handled")

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("run did not exit")
	}
}

func TestRunReturnsBackgroundErrorWithoutInput(t *testing.T) {
	useSimulationScreen(t)
	app := newStubApp()
	app.runErr = errors.New("inferior lost")

	errCh := make(chan error, 1)
	go func() {
		errCh <- devshell.Run(func([]string) (devshell.App, error) { return app, nil }, nil)
	}()
	app.waitRunStarted(t)

	// No terminal event follows; the runner must notice on its own.
	app.Stop()
	select {
	case err := <-errCh:
		if !errors.Is(err, app.runErr) {
			t.Fatalf("expected background error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after the background task failed")
	}
}

func TestRunReturnsBuilderError(t *testing.T) {
	useSimulationScreen(t)
	want := errors.New("boom")
	err := devshell.Run(func([]string) (devshell.App, error) { return nil, want }, nil)
	if !errors.Is(err, want) {
		t.Fatalf("expected builder error, got %v", err)
	}
}

func TestRunAppUnknownReturnsError(t *testing.T) {
	if err := devshell.RunApp("does-not-exist", nil); err == nil {
		t.Fatal("expected error for unknown app")
	}
}

func TestRegisterAndNames(t *testing.T) {
	devshell.Register("zz-test", func([]string) (devshell.App, error) { return newStubApp(), nil })
	names := devshell.Names()
	found := false
	for _, n := range names {
		if n == "zz-test" {
			found = true
		}
	}
	if !found {
		t.Fatalf("registered app missing from %v", names)
	}
}

func waitFor(cond func() bool, timeout time.Duration, t *testing.T, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}
