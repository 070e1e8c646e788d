// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/load.go
// Summary: Reads and writes configuration files.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// load reads the file at path. A missing or empty file is replaced by the
// embedded defaults and written back. A file that cannot be parsed is left
// alone and the defaults are used for this run. Keys known to the code but
// absent from the file are filled in memory only.
func (s *Store) load(path string, embedded Config, apply func(Config)) Config {
	cfg, err := readConfig(path)
	if err != nil {
		s.noteErr(fmt.Errorf("read %s: %w", path, err))
		cfg = nil
	}
	fresh := err == nil && len(cfg) == 0
	if len(cfg) == 0 {
		cfg = embedded.Clone()
		if cfg == nil {
			cfg = make(Config)
		}
	}
	apply(cfg)

	switch {
	case path == "":
	case fresh:
		if err := writeConfig(path, cfg); err != nil {
			s.noteErr(fmt.Errorf("write defaults to %s: %w", path, err))
		} else {
			log.Printf("Config: Wrote defaults to %s", path)
		}
	case err == nil:
		log.Printf("Config: Loaded %s", path)
	}
	return cfg
}

// readConfig returns nil without error when path is empty or missing.
func readConfig(path string) (Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Write then rename so a crash never leaves a truncated file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
