// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parses the default files embedded by package defaults.

package config

import (
	"encoding/json"
	"log"

	"github.com/framegrace/texeldbg/defaults"
)

func embeddedSystem() Config { return parseEmbedded(defaults.SystemConfig()) }

// embeddedApp returns nil for apps that ship no defaults file.
func embeddedApp(name string) Config { return parseEmbedded(defaults.AppConfig(name)) }

func parseEmbedded(data []byte, err error) Config {
	if err != nil {
		return nil
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Config: Embedded defaults are not valid JSON: %v", err)
		return nil
	}
	return cfg
}
