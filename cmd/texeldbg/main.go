// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeldbg/main.go
// Summary: texeldbg command line: runs the debugger console.
// Usage: texeldbg [--shell CMD] [--open FILE] [--tail FILE] [--log FILE]

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texeldbg/apps/console"
	"github.com/framegrace/texeldbg/config"
	"github.com/framegrace/texeldbg/internal/devshell"
	"github.com/framegrace/texeldbg/internal/logindex"
	"github.com/framegrace/texeldbg/internal/sigwinch"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	shell    string
	open     string
	tail     string
	logPath  string
	searchDB string
	noFrame  bool
}

var searchFlags struct {
	limit int
}

var rootCmd = &cobra.Command{
	Use:   "texeldbg",
	Short: "Terminal console for driving a debugger",
	Long: `texeldbg runs an inferior process on a pseudo-terminal next to a source
pager, a JSON value viewer and a command console with history and search.

Esc switches to the pager; from there i, t and v select the console, the
inferior terminal and the value viewer. Ctrl-Q quits.`,
	Version:      version,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runConsole,
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the persistent console index",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rootFlags.shell, "shell", "", "inferior command line (default from config)")
	f.StringVar(&rootFlags.open, "open", "", "source file to show in the pager")
	f.StringVar(&rootFlags.tail, "tail", "", "file to follow in the output pane")
	f.BoolVar(&rootFlags.noFrame, "no-frame", false, "draw without the outer frame")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logPath, "log", "", "write diagnostics to this file (default from config, else discarded)")
	pf.StringVar(&rootFlags.searchDB, "search-db", "", "search index database (default from config, else in memory)")

	searchCmd.Flags().IntVarP(&searchFlags.limit, "limit", "n", 20, "maximum number of lines")
	rootCmd.AddCommand(searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends the log package to the configured file. The terminal
// belongs to the UI, so without a file logs are dropped.
func setupLogging() (func(), error) {
	path := rootFlags.logPath
	if path == "" {
		path = config.System().GetString("", "log_file", "")
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[TEXELDBG] Starting %s", version)
	return func() { f.Close() }, nil
}

func consoleSettings(cmd *cobra.Command) console.Settings {
	settings := console.SettingsFromStore(config.Default())
	if cmd.Flags().Changed("shell") {
		settings.Shell = rootFlags.shell
	}
	if rootFlags.searchDB != "" {
		settings.SearchDB = rootFlags.searchDB
	}
	if rootFlags.noFrame {
		settings.Frame = false
	}
	settings.Open = rootFlags.open
	settings.Tail = rootFlags.tail
	return settings
}

func runConsole(cmd *cobra.Command, _ []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()
	if err := config.Err(); err != nil {
		log.Printf("[TEXELDBG] Config: %v", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("texeldbg needs an interactive terminal")
	}

	settings := consoleSettings(cmd)
	devshell.Register("console", func([]string) (devshell.App, error) {
		a, err := console.New(settings)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	var opts []devshell.Option
	sizes, err := sigwinch.Install(int(os.Stdout.Fd()))
	if err != nil {
		log.Printf("[TEXELDBG] Resize signals unavailable: %v", err)
	} else {
		defer sigwinch.Uninstall()
		opts = append(opts, devshell.WithResizeSignals(sizes))
	}
	return devshell.RunApp(config.System().GetString("", "defaultApp", "console"), nil, opts...)
}

func runSearch(cmd *cobra.Command, args []string) error {
	path := consoleSettings(cmd).SearchDB
	if path == "" {
		return errors.New("no search index configured; set console.search_db or pass --search-db")
	}
	idx, err := logindex.Open(path)
	if err != nil {
		return err
	}
	defer idx.Close()

	results, err := idx.Search(strings.Join(args, " "), searchFlags.limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range results {
		marker := " "
		if r.IsCommand {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %s %s\n", r.Timestamp.Format(time.DateTime), marker, r.Content)
	}
	return nil
}
