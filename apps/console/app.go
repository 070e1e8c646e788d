// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/console/app.go
// Summary: Debugger console assembled from the texelui widgets.
// Usage: Built by cmd/texeldbg and driven by devshell. The source pager and
// value viewer share the top row, the inferior terminal sits in the middle
// and the console log with its prompt at the bottom.
// Notes: Every method except Run runs on the devshell event loop. Producer
// goroutines only hand closures to the loop through Poster.Post.

package console

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldbg/internal/devshell"
	"github.com/framegrace/texeldbg/internal/inputmode"
	"github.com/framegrace/texeldbg/internal/logindex"
	"github.com/framegrace/texeldbg/internal/ptybridge"
	"github.com/framegrace/texeldbg/texelui/boxdraw"
	"github.com/framegrace/texeldbg/texelui/core"
	"github.com/framegrace/texeldbg/texelui/grapheme"
	"github.com/framegrace/texeldbg/texelui/layout"
	"github.com/framegrace/texeldbg/texelui/linestorage"
	"github.com/framegrace/texeldbg/texelui/widgets"
	"github.com/framegrace/texeldbg/texelui/widgets/jsonview"
)

const (
	defaultTermCols = 80
	defaultTermRows = 24
	searchLimit     = 20
)

// Root layout children, in order.
const (
	rowTop = iota
	rowOutput
	rowConsole
	rowStatus
)

var (
	chromeAttr = core.Foreground(tcell.ColorGray)
	statusAttr = core.WithFlags(core.Invert)
)

// App is the debugger console.
type App struct {
	settings Settings
	now      func() time.Time

	mode inputmode.State
	quit bool

	pager  *widgets.Pager
	values *jsonview.Viewer
	output *widgets.LogViewer
	log    *widgets.LogViewer
	prompt *widgets.PromptLine
	status *widgets.LineLabel

	root   *layout.Layout
	top    *layout.Layout
	bottom *layout.Layout

	consoleLines *linestorage.MemoryLineStorage
	termLines    *linestorage.MemoryLineStorage
	sink         *ptybridge.Sink
	termIndexed  int

	bridge     *ptybridge.Bridge
	termExited bool
	termCols   int
	termRows   int
	// startInferior is swapped in tests.
	startInferior func(cols, rows int) (*ptybridge.Bridge, error)

	tail     *linestorage.FileLineStorage
	tailName string
	tailing  atomic.Bool

	index *logindex.Index
	seq   int64

	poster   devshell.Poster
	stop     chan struct{}
	stopOnce sync.Once

	consoleKeys  []core.Behavior
	terminalKeys []core.Behavior
	pagerKeys    []core.Behavior
	valueKeys    []core.Behavior
}

// New builds a console from settings and loads the startup files.
func New(settings Settings) (*App, error) {
	index, err := logindex.Open(settings.searchPath())
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}

	a := &App{
		settings:     settings,
		now:          time.Now,
		mode:         inputmode.New(inputmode.Console, settings.EscapeThreshold),
		pager:        widgets.NewPager(),
		values:       jsonview.New(nil),
		consoleLines: linestorage.NewMemory(),
		termLines:    linestorage.NewMemory(),
		index:        index,
		termCols:     defaultTermCols,
		termRows:     defaultTermRows,
		stop:         make(chan struct{}),
	}
	a.startInferior = a.spawnShell
	a.sink = ptybridge.NewSink(a.termLines)
	a.output = widgets.NewLogViewer(a.termLines)
	a.log = widgets.NewLogViewer(a.consoleLines)
	a.prompt = widgets.NewPromptLine("> ")
	a.prompt.MaxHistory = settings.HistorySize
	a.prompt.Prompt.Attr = core.WithFlags(core.Bold)
	a.status = widgets.NewLineLabel("")
	if settings.PagerStyle != "" {
		a.pager.StyleName = settings.PagerStyle
	}

	a.buildLayout()
	a.buildBehaviors()
	a.applyFocus()

	if settings.Open != "" {
		if err := a.openSource(settings.Open); err != nil {
			index.Close()
			return nil, err
		}
	}
	if settings.Tail != "" {
		if err := a.startTail(settings.Tail); err != nil {
			index.Close()
			return nil, err
		}
	}
	a.message("texeldbg: Esc for the pager, i/t/v to pick a pane, Ctrl-Q quits; type help for commands")
	return a, nil
}

func separator(kind string, dir layout.Direction) layout.Separator {
	switch kind {
	case "none":
		return layout.Separator{}
	case "glyph":
		r := '─'
		if dir == layout.Horizontal {
			r = '│'
		}
		return layout.GlyphSeparator(grapheme.FromRune(r), chromeAttr)
	}
	return layout.LineSeparator(boxdraw.Thin, chromeAttr)
}

// sized overrides the height demand of a widget.
type sized struct {
	core.Widget
	height core.Demand
}

func (s sized) Demand() core.Demand2D {
	d := s.Widget.Demand()
	d.Height = s.height
	return d
}

// sizeTracker reports the window size a widget is drawn into when it changes.
type sizeTracker struct {
	core.Widget
	onSize func(w, h int)
	w, h   int
}

func (t *sizeTracker) Draw(win core.Window, hints core.RenderingHints) {
	if w, h := win.Size(); w != t.w || h != t.h {
		t.w, t.h = w, h
		t.onSize(w, h)
	}
	t.Widget.Draw(win, hints)
}

func (a *App) buildLayout() {
	sep := a.settings.Separator
	a.top = layout.NewHorizontal(layout.WithSeparator(separator(sep, layout.Horizontal))).
		Add(a.pager).
		Add(a.values)
	a.bottom = layout.NewVertical().
		Add(sized{Widget: a.log, height: core.AtLeast(max(a.settings.ConsoleLines, 1))}).
		Add(a.prompt)

	statusBar := core.WidgetFunc{
		DemandFn: func() core.Demand2D {
			return core.Demand2D{Width: core.AtLeast(1), Height: core.Exact(1)}
		},
		DrawFn: func(win core.Window, hints core.RenderingHints) {
			win.Fill(grapheme.Space(), statusAttr)
			a.status.Text = a.statusText()
			a.status.Draw(win.WithAttribute(statusAttr), hints)
		},
	}

	opts := []layout.Option{layout.WithSeparator(separator(sep, layout.Vertical))}
	if a.settings.Frame {
		opts = append(opts, layout.WithFrame(boxdraw.Thin, chromeAttr))
	}
	a.root = layout.NewVertical(opts...).
		Add(sized{Widget: a.top, height: core.AtLeast(max(a.settings.PagerLines, 1))}).
		Add(&sizeTracker{Widget: a.output, onSize: a.resizeTerminal}).
		Add(a.bottom).
		Add(statusBar)
}

func (a *App) buildBehaviors() {
	a.consoleKeys = []core.Behavior{
		core.KeyAction{Keys: []core.Key{core.KeyCode(tcell.KeyCtrlC)}, Action: func() { a.prompt.Clear() }},
		core.KeyAction{Keys: []core.Key{core.KeyCode(tcell.KeyEnter)}, Action: a.submit},
		core.BehaviorFunc(a.pasteLines),
		core.ScrollBehavior{
			Target:    a.prompt,
			Backwards: []core.Key{core.KeyCode(tcell.KeyUp)},
			Forwards:  []core.Key{core.KeyCode(tcell.KeyDown)},
		},
		core.ScrollBehavior{
			Target:      a.log,
			Backwards:   []core.Key{core.KeyCode(tcell.KeyPgUp)},
			Forwards:    []core.Key{core.KeyCode(tcell.KeyPgDn)},
			ToBeginning: []core.Key{{Code: tcell.KeyHome, Mod: tcell.ModCtrl}},
			ToEnd:       []core.Key{{Code: tcell.KeyEnd, Mod: tcell.ModCtrl}},
		},
		core.EditBehavior{Target: a.prompt},
	}
	a.terminalKeys = []core.Behavior{
		core.ScrollBehavior{
			Target:      a.output,
			Backwards:   []core.Key{{Code: tcell.KeyPgUp, Mod: tcell.ModShift}},
			Forwards:    []core.Key{{Code: tcell.KeyPgDn, Mod: tcell.ModShift}},
			ToBeginning: []core.Key{{Code: tcell.KeyHome, Mod: tcell.ModShift}},
			ToEnd:       []core.Key{{Code: tcell.KeyEnd, Mod: tcell.ModShift}},
		},
		core.BehaviorFunc(a.forwardToInferior),
	}
	a.pagerKeys = []core.Behavior{
		core.DefaultNavigateBehavior(a.pager),
		core.ScrollBehavior{
			Target:      a.pager,
			Backwards:   []core.Key{core.KeyCode(tcell.KeyPgUp)},
			Forwards:    []core.Key{core.KeyCode(tcell.KeyPgDn)},
			ToBeginning: []core.Key{core.KeyCode(tcell.KeyHome), core.KeyRune('g')},
			ToEnd:       []core.Key{core.KeyCode(tcell.KeyEnd), core.KeyRune('G')},
		},
	}
	a.valueKeys = []core.Behavior{
		core.DefaultNavigateBehavior(a.values),
	}
}

// applyFocus marks the widgets of the current mode as focused so that only
// they draw as active.
func (a *App) applyFocus() {
	switch a.mode.Mode {
	case inputmode.Console:
		a.root.SetFocus(rowConsole)
		a.bottom.SetFocus(1)
	case inputmode.InferiorTerminal:
		a.root.SetFocus(rowOutput)
	case inputmode.Pager:
		a.root.SetFocus(rowTop)
		a.top.SetFocus(0)
	case inputmode.ValueTable:
		a.root.SetFocus(rowTop)
		a.top.SetFocus(1)
	}
}

// Root implements devshell.App.
func (a *App) Root() core.Widget { return a.root }

// Mode returns the current input mode.
func (a *App) Mode() inputmode.Mode { return a.mode.Mode }

// Resize implements devshell.App. Pane sizes follow from the layout on the
// next draw.
func (a *App) Resize(cols, rows int) {
	log.Printf("[CONSOLE] Screen resized to %dx%d", cols, rows)
}

// HandleEvent routes ev through the mode dispatcher and then through the
// behaviors of the resulting mode.
func (a *App) HandleEvent(ev tcell.Event) bool {
	if k, ok := ev.(*tcell.EventKey); ok && k.Key() == tcell.KeyCtrlQ {
		return true
	}
	var fwd tcell.Event
	a.mode, fwd = inputmode.Step(a.mode, a.now(), ev)
	a.applyFocus()
	if fwd == nil {
		return a.quit
	}

	in := core.Input{Event: fwd}
	switch a.mode.Mode {
	case inputmode.Console:
		core.Chain(in, a.consoleKeys...)
	case inputmode.InferiorTerminal:
		core.Chain(in, a.terminalKeys...)
	case inputmode.Pager:
		core.Chain(in, a.pagerKeys...)
	case inputmode.ValueTable:
		core.Chain(in, a.valueKeys...)
	}
	return a.quit
}

// pasteLines runs every complete line of a multi-line paste as a command
// and leaves the remainder in the prompt.
func (a *App) pasteLines(in core.Input) bool {
	p, ok := in.Event.(*core.PasteEvent)
	if !ok || !strings.Contains(p.Text, "\n") {
		return false
	}
	parts := strings.Split(p.Text, "\n")
	for _, part := range parts[:len(parts)-1] {
		a.prompt.Insert(part)
		a.submit()
	}
	a.prompt.Insert(parts[len(parts)-1])
	return true
}

func (a *App) submit() {
	line := a.prompt.FinishLine()
	a.log.ScrollToEnd()
	if strings.TrimSpace(line) == "" {
		if a.bridge != nil {
			a.writeInferior("\n")
		}
		return
	}
	// A search would otherwise always find itself.
	name, _, _ := strings.Cut(strings.TrimSpace(line), " ")
	a.println("> "+line, name != "search")
	a.execute(line)
}

func (a *App) statusText() string {
	var b strings.Builder
	fmt.Fprintf(&b, " [%s]", a.mode.Mode)
	if name := a.pager.Name(); name != "" {
		lang := a.pager.Language()
		if lang == "" {
			lang = "text"
		}
		fmt.Fprintf(&b, "  source: %s (%s) %d/%d", name, lang, a.pager.CurrentLine()+1, a.pager.NumLines())
	}
	if a.values.Root() != nil {
		fmt.Fprintf(&b, "  value: $%s", a.values.ActiveKeyPath())
	}
	switch {
	case a.tail != nil:
		fmt.Fprintf(&b, "  output: tail %s (%d lines)", a.tailName, a.tail.NumLines())
	case a.bridge == nil:
		b.WriteString("  output: no inferior")
	case a.termExited:
		b.WriteString("  output: inferior exited")
	default:
		b.WriteString("  output: inferior")
	}
	return b.String()
}

// message appends an app message to the console log without indexing it.
func (a *App) message(text string) { a.println(text, false) }

func (a *App) messagef(format string, args ...any) { a.message(fmt.Sprintf(format, args...)) }

// println appends text to the console log. Indexed lines become searchable.
func (a *App) println(text string, indexed bool) {
	if a.consoleLines.NumLines() > 1 || a.consoleLines.ActiveLine() != "" {
		a.consoleLines.WriteString("\n")
	}
	a.consoleLines.WriteString(text)
	if indexed {
		for _, l := range strings.Split(text, "\n") {
			a.indexLine(strings.TrimPrefix(l, "> "), true)
		}
	}
}

func (a *App) indexLine(text string, isCommand bool) {
	if a.index == nil || strings.TrimSpace(text) == "" {
		return
	}
	a.seq++
	if err := a.index.Add(a.seq, text, isCommand); err != nil {
		log.Printf("[CONSOLE] Failed to index line: %v", err)
	}
}

func (a *App) post(fn func()) {
	if a.poster == nil {
		fn()
		return
	}
	a.poster.Post(fn)
}
