// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/console/settings.go
// Summary: Console settings resolved from the "console" config sections.

package console

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/framegrace/texeldbg/config"
	"github.com/framegrace/texeldbg/internal/inputmode"
	"github.com/framegrace/texeldbg/internal/logindex"
	"github.com/framegrace/texeldbg/texelui/widgets"
)

// Settings configures a console App.
type Settings struct {
	// Shell is the inferior command line; empty runs no inferior.
	Shell       string
	HistorySize int
	// Separator is one of "line", "glyph" or "none".
	Separator       string
	Frame           bool
	ScanLimit       int
	EscapeThreshold time.Duration
	// SearchDB is the search index path; empty keeps the index in memory.
	SearchDB   string
	PagerStyle string

	PagerLines   int
	ConsoleLines int
	TailPoll     time.Duration

	// Open and Tail name files loaded at startup.
	Open string
	Tail string

	// Store persists changes made with the set command; nil disables set.
	Store *config.Store
}

// DefaultSettings matches the embedded console defaults.
func DefaultSettings() Settings {
	return Settings{
		Shell:           "/bin/sh",
		HistorySize:     500,
		Separator:       "line",
		Frame:           true,
		EscapeThreshold: inputmode.DefaultThreshold,
		PagerStyle:      widgets.DefaultPagerStyle,
		PagerLines:      12,
		ConsoleLines:    6,
		TailPoll:        500 * time.Millisecond,
	}
}

// SettingsFromConfig reads the console sections of cfg over the defaults.
func SettingsFromConfig(cfg config.Config) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	s.Shell = cfg.GetString("console", "shell", s.Shell)
	s.HistorySize = cfg.GetInt("console", "history_size", s.HistorySize)
	s.Separator = strings.ToLower(cfg.GetString("console", "separator", s.Separator))
	s.Frame = cfg.GetBool("console", "frame", s.Frame)
	s.ScanLimit = cfg.GetInt("console", "scan_limit", s.ScanLimit)
	s.EscapeThreshold = cfg.GetMillis("console", "escape_threshold_ms", s.EscapeThreshold)
	s.SearchDB = cfg.GetString("console", "search_db", s.SearchDB)
	s.PagerStyle = cfg.GetString("console", "pager_style", s.PagerStyle)
	s.PagerLines = cfg.GetInt("console.layout", "pager_lines", s.PagerLines)
	s.ConsoleLines = cfg.GetInt("console.layout", "console_lines", s.ConsoleLines)
	s.TailPoll = cfg.GetMillis("console.layout", "tail_poll_ms", s.TailPoll)
	return s
}

// SettingsFromStore reads the console config of st and keeps st for set.
// A relative search_db is resolved against the store's data directory.
func SettingsFromStore(st *config.Store) Settings {
	s := SettingsFromConfig(st.App("console"))
	s.Store = st
	if s.SearchDB != "" && !filepath.IsAbs(s.SearchDB) {
		if dir := st.DataDir(); dir != "" {
			s.SearchDB = filepath.Join(dir, s.SearchDB)
		}
	}
	return s
}

func (s Settings) searchPath() string {
	if s.SearchDB == "" {
		return logindex.Memory
	}
	return s.SearchDB
}
