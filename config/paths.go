// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texeldbg configuration.

package config

import (
	"os"
	"path/filepath"
)

const systemConfigName = "texeldbg.json"

func userRoot() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "texeldbg"), nil
}

func (s *Store) systemPath() string {
	if s.root == "" {
		return ""
	}
	return filepath.Join(s.root, systemConfigName)
}

func (s *Store) appPath(name string) string {
	if s.root == "" {
		return ""
	}
	return filepath.Join(s.root, "apps", name, "config.json")
}

// DataDir returns the directory for state files such as the search index,
// or "" for a store without a root.
func (s *Store) DataDir() string {
	if s.root == "" {
		return ""
	}
	return filepath.Join(s.root, "data")
}
