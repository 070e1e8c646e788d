// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs a widget-tree app inside a local tcell screen.
// Usage: cmd/texeldbg registers its apps and calls RunApp; tests swap the
// screen for a simulation screen via SetScreenFactory.
// Notes: All app callbacks run on the event loop goroutine. Producers hand
// work to it through Poster.Post.

package devshell

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldbg/internal/sigwinch"
	"github.com/framegrace/texeldbg/texelui/core"
)

// App is a program driven by the runner.
type App interface {
	// Root returns the widget tree drawn each frame.
	Root() core.Widget
	// HandleEvent processes one input event and reports whether the app
	// wants to quit.
	HandleEvent(ev tcell.Event) bool
	// Resize is called with the screen size before the first frame and on
	// every resize.
	Resize(cols, rows int)
}

// Poster lets background goroutines reach the event loop.
type Poster interface {
	// Post queues fn to run on the event loop, followed by a redraw.
	Post(fn func())
	// RequestRefresh asks for a redraw.
	RequestRefresh()
}

// Attacher is implemented by apps that produce work off the event loop.
type Attacher interface {
	Attach(p Poster)
}

// Background is implemented by apps with their own goroutine. Run's error
// ends the runner; Stop is called on exit.
type Background interface {
	Run() error
	Stop()
}

// Builder constructs an App, optionally using CLI args.
type Builder func(args []string) (App, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Builder{}
)

// Register makes builder available to RunApp under name.
func Register(name string, builder Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = builder
}

// Names lists registered apps in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Option configures Run.
type Option func(*options)

type options struct {
	resizes <-chan sigwinch.Size
	base    core.TextAttribute
}

// WithResizeSignals feeds sizes from ch into the loop as resize events, for
// terminals where the screen does not report them itself.
func WithResizeSignals(ch <-chan sigwinch.Size) Option {
	return func(o *options) { o.resizes = ch }
}

// WithBaseAttribute sets the attribute every frame starts from.
func WithBaseAttribute(a core.TextAttribute) Option {
	return func(o *options) { o.base = a }
}

type poster struct {
	screen tcell.Screen
	ui     *core.UIManager
}

func (p poster) Post(fn func()) {
	if err := p.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		log.Printf("[DEVSHELL] Dropped posted work: %v", err)
	}
}

func (p poster) RequestRefresh() { p.ui.RequestRefresh() }

// Run executes the provided builder inside a local tcell screen.
func Run(builder Builder, args []string, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	app, err := builder(args)
	if err != nil {
		return err
	}

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnablePaste()

	ui := core.NewUIManager()
	ui.SetBaseAttribute(o.base)
	width, height := screen.Size()
	ui.Resize(width, height)
	app.Resize(width, height)

	refreshCh := make(chan bool, 1)
	ui.SetRefreshNotifier(refreshCh)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-refreshCh:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-done:
				return
			}
		}
	}()

	if o.resizes != nil {
		go func() {
			for {
				select {
				case s, ok := <-o.resizes:
					if !ok {
						return
					}
					screen.PostEvent(tcell.NewEventResize(s.Cols, s.Rows))
				case <-done:
					return
				}
			}
		}()
	}

	if a, ok := app.(Attacher); ok {
		a.Attach(poster{screen: screen, ui: ui})
	}

	draw := func() {
		ui.Render(app.Root())
		ui.Flush(screen)
	}
	draw()

	runErr := make(chan error, 1)
	if bg, ok := app.(Background); ok {
		go func() {
			runErr <- bg.Run()
			// Wake the loop; it may be blocked waiting for input.
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		}()
		defer bg.Stop()
	}

	var paste strings.Builder
	var inPaste bool

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
			if fn, ok := tev.Data().(func()); ok && fn != nil {
				fn()
			}
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			screen.Sync()
			ui.Resize(w, h)
			app.Resize(w, h)
			draw()
		case *tcell.EventPaste:
			if tev.Start() {
				inPaste = true
				paste.Reset()
			} else if tev.End() {
				inPaste = false
				if paste.Len() > 0 {
					if app.HandleEvent(core.NewPasteEvent(paste.String())) {
						return nil
					}
					draw()
				}
				paste.Reset()
			}
		case *tcell.EventKey:
			if inPaste {
				// Collect paste data; nothing is drawn until the paste ends.
				switch tev.Key() {
				case tcell.KeyRune:
					paste.WriteRune(tev.Rune())
				case tcell.KeyEnter, tcell.KeyLF:
					paste.WriteByte('\n')
				case tcell.KeyTab:
					paste.WriteByte('\t')
				}
				continue
			}
			if app.HandleEvent(tev) {
				return nil
			}
			draw()
		}
	}
}

// RunApp finds a registered builder by name and runs it.
func RunApp(name string, args []string, opts ...Option) error {
	registryMu.RLock()
	buildApp, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown app %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return Run(buildApp, args, opts...)
}
