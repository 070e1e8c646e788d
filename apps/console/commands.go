// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/console/commands.go
// Summary: Console commands. Lines that name no command go to the inferior.

package console

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/framegrace/texeldbg/config"
	"github.com/framegrace/texeldbg/texelui/linestorage"
)

var errMissingArgument = errors.New("missing argument")

type command struct {
	usage string
	help  string
	run   func(a *App, arg string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"open":   {usage: "open <file>", help: "show a source file in the pager", run: (*App).cmdOpen},
		"tail":   {usage: "tail [file]", help: "follow a file in the output pane; no file returns to the inferior", run: (*App).cmdTail},
		"json":   {usage: "json <value|@file>", help: "show a JSON value in the value viewer", run: (*App).cmdJSON},
		"search": {usage: "search <text>", help: "list indexed lines containing text, newest first", run: (*App).cmdSearch},
		"set":    {usage: "set [key [value]]", help: "show or change a console setting", run: (*App).cmdSet},
		"clear":  {usage: "clear", help: "empty the console log", run: (*App).cmdClear},
		"help":   {usage: "help", help: "list commands", run: (*App).cmdHelp},
		"quit":   {usage: "quit", help: "leave texeldbg", run: (*App).cmdQuit},
	}
}

// execute runs a console command, or writes the line to the inferior.
func (a *App) execute(line string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd, ok := commands[name]
	if !ok {
		if err := a.writeInferior(line + "\n"); err != nil {
			a.messagef("%v", err)
		}
		return
	}
	if err := cmd.run(a, strings.TrimSpace(arg)); err != nil {
		if errors.Is(err, errMissingArgument) {
			a.messagef("usage: %s", cmd.usage)
			return
		}
		a.messagef("%s: %v", name, err)
	}
}

func (a *App) cmdOpen(arg string) error {
	if arg == "" {
		return errMissingArgument
	}
	return a.openSource(arg)
}

func (a *App) openSource(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := a.pager.SetSource(path, data); err != nil {
		return err
	}
	lang := a.pager.Language()
	if lang == "" {
		lang = "plain text"
	}
	a.messagef("opened %s: %d lines of %s", path, a.pager.NumLines(), lang)
	return nil
}

func (a *App) cmdTail(arg string) error {
	if arg == "" || arg == "-" {
		if a.tail == nil {
			a.message("output already shows the inferior")
			return nil
		}
		a.stopTail()
		a.message("output shows the inferior")
		return nil
	}
	return a.startTail(arg)
}

func (a *App) startTail(path string) error {
	fs, err := linestorage.Open(path, linestorage.WithScanLimit(a.settings.ScanLimit))
	if err != nil {
		return err
	}
	// Lines are discovered lazily; index what is already there.
	if _, err := fs.Refresh(); err != nil {
		fs.Close()
		return err
	}
	a.stopTail()
	a.tail, a.tailName = fs, path
	a.tailing.Store(true)
	a.output.SetStorage(fs)
	a.messagef("tailing %s", path)
	return nil
}

func (a *App) stopTail() {
	if a.tail == nil {
		return
	}
	a.tailing.Store(false)
	if err := a.tail.Close(); err != nil {
		log.Printf("[CONSOLE] Failed to close %s: %v", a.tailName, err)
	}
	a.tail, a.tailName = nil, ""
	a.output.SetStorage(a.termLines)
}

// refreshTail picks up lines appended to the tailed file.
func (a *App) refreshTail() {
	if a.tail == nil {
		return
	}
	if _, err := a.tail.Refresh(); err != nil {
		log.Printf("[CONSOLE] Failed to refresh %s: %v", a.tailName, err)
	}
}

func (a *App) cmdJSON(arg string) error {
	if arg == "" {
		return errMissingArgument
	}
	data := []byte(arg)
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("read value: %w", err)
		}
	}
	if err := a.values.ReplaceJSON(data); err != nil {
		return err
	}
	a.messagef("value: %s", a.values.Root().Summary())
	return nil
}

func (a *App) cmdSearch(arg string) error {
	if arg == "" {
		return errMissingArgument
	}
	results, err := a.index.Search(arg, searchLimit)
	if err != nil {
		return err
	}
	switch len(results) {
	case 0:
		a.messagef("no lines contain %q", arg)
		return nil
	case 1:
		a.messagef("1 line contains %q:", arg)
	default:
		a.messagef("%d lines contain %q:", len(results), arg)
	}
	for _, r := range results {
		prefix := "  "
		if r.IsCommand {
			prefix = "  > "
		}
		a.message(prefix + r.Content)
	}
	return nil
}

// settingSections are searched in order for a key given to set.
var settingSections = []string{"console", "console.layout"}

func (a *App) cmdSet(arg string) error {
	st := a.settings.Store
	if st == nil {
		return errors.New("settings cannot be saved in this session")
	}
	cfg := st.App("console")
	key, value, hasValue := strings.Cut(arg, " ")
	if key == "" {
		for _, sec := range settingSections {
			for _, k := range cfg.Keys(sec) {
				v, _ := cfg.Lookup(sec, k)
				a.messagef("  %-20s %v", k, v)
			}
		}
		return nil
	}
	section := ""
	for _, sec := range settingSections {
		if _, ok := cfg.Lookup(sec, key); ok {
			section = sec
			break
		}
	}
	if section == "" {
		return fmt.Errorf("%w: %s", config.ErrUnknownKey, key)
	}
	if !hasValue {
		v, _ := cfg.Lookup(section, key)
		a.messagef("%s = %v", key, v)
		return nil
	}
	if err := st.UpdateApp("console", func(c config.Config) error {
		return c.SetFromString(section, key, value)
	}); err != nil {
		return err
	}
	cfg = st.App("console")
	v, _ := cfg.Lookup(section, key)
	switch key {
	case "history_size":
		a.settings.HistorySize = cfg.GetInt(section, key, a.settings.HistorySize)
		a.prompt.MaxHistory = a.settings.HistorySize
	case "escape_threshold_ms":
		a.settings.EscapeThreshold = cfg.GetMillis(section, key, a.settings.EscapeThreshold)
		a.mode.Threshold = a.settings.EscapeThreshold
	case "pager_style":
		a.settings.PagerStyle = cfg.GetString(section, key, a.settings.PagerStyle)
		a.pager.StyleName = a.settings.PagerStyle
		a.messagef("%s = %v; applies to the next open", key, v)
		return nil
	default:
		a.messagef("%s = %v; saved, takes effect at next start", key, v)
		return nil
	}
	a.messagef("%s = %v", key, v)
	return nil
}

func (a *App) cmdClear(string) error {
	a.consoleLines.Clear()
	a.log.ScrollToEnd()
	return nil
}

func (a *App) cmdHelp(string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands[name]
		a.messagef("  %-20s %s", c.usage, c.help)
	}
	a.message("  anything else is sent to the inferior")
	return nil
}

func (a *App) cmdQuit(string) error {
	a.quit = true
	return nil
}
