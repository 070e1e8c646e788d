// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp": "console",
		"log_file":   "",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "console":
		cfg.RegisterDefaults("console", Section{
			"shell":               "/bin/sh",
			"history_size":        500,
			"separator":           "line",
			"frame":               true,
			"scan_limit":          0,
			"escape_threshold_ms": 300,
			"search_db":           "",
			"pager_style":         "catppuccin-mocha",
		})
		cfg.RegisterDefaults("console.layout", Section{
			"pager_lines":   12,
			"console_lines": 6,
			"tail_poll_ms":  500,
		})
	}
}
