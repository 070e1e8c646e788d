// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store: one system file plus one file per app.
// Usage: config.Default() is rooted at $UserConfigDir/texeldbg. Files that do
// not exist yet are written from the embedded defaults on first load.

package config

import (
	"fmt"
	"log"
	"sync"
)

// Config stores configuration sections as JSON-compatible data. Keys at the
// top level form the unnamed section "".
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// Store loads configuration files below a root directory and caches them.
// A store with an empty root never touches the disk.
type Store struct {
	root string

	mu     sync.Mutex
	system Config
	apps   map[string]Config
	err    error
}

// NewStore returns a store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root, apps: make(map[string]Config)}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the store rooted at the user configuration directory. When
// that directory cannot be determined the store works from defaults only.
func Default() *Store {
	defaultOnce.Do(func() {
		root, err := userRoot()
		defaultStore = NewStore(root)
		if err != nil {
			log.Printf("Config: No user config directory, using defaults: %v", err)
			defaultStore.err = err
		}
	})
	return defaultStore
}

// System returns the system configuration of the default store.
func System() Config { return Default().System() }

// App returns the configuration of a named app from the default store.
func App(name string) Config { return Default().App(name) }

// Err returns the first load error of the default store.
func Err() error { return Default().Err() }

// Root returns the directory the store reads from.
func (s *Store) Root() string { return s.root }

// Err returns the first error met while loading or saving.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) noteErr(err error) {
	log.Printf("Config: %v", err)
	if s.err == nil {
		s.err = err
	}
}

// System returns the system configuration (texeldbg.json).
func (s *Store) System() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.system == nil {
		s.system = s.load(s.systemPath(), embeddedSystem(), applySystemDefaults)
	}
	return s.system
}

// App returns the configuration of a named app (apps/<name>/config.json).
func (s *Store) App(name string) Config {
	if name == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appLocked(name)
}

func (s *Store) appLocked(name string) Config {
	if cfg, ok := s.apps[name]; ok {
		return cfg
	}
	cfg := s.load(s.appPath(name), embeddedApp(name), func(c Config) { applyAppDefaults(name, c) })
	s.apps[name] = cfg
	return cfg
}

// UpdateApp applies fn to a copy of the named app configuration and writes
// the result. The cached configuration is replaced only once the file has
// been written; an error from fn or from the write leaves it unchanged.
func (s *Store) UpdateApp(name string, fn func(Config) error) error {
	if name == "" {
		return fmt.Errorf("app name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.appLocked(name).Clone()
	if err := fn(next); err != nil {
		return err
	}
	if path := s.appPath(name); path != "" {
		if err := writeConfig(path, next); err != nil {
			return fmt.Errorf("save %s config: %w", name, err)
		}
		log.Printf("Config: Saved app %q config to %s", name, path)
	}
	s.apps[name] = next
	return nil
}
