// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access to configuration sections.
// Notes: Values decoded from JSON are float64, string, bool or nested maps.
// Values set in code may also be int.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownKey is returned when setting a key that has no value yet.
var ErrUnknownKey = errors.New("config: unknown key")

// Section returns the named section or nil if missing. The empty name is
// the top level of c.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	switch v := c[name].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults adds the keys of defaults that the section lacks,
// creating the section when needed.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil {
		return
	}
	sec := c.Section(name)
	if sec == nil {
		sec = make(Section, len(defaults))
		c[name] = sec
	}
	for k, v := range defaults {
		if _, ok := sec[k]; !ok {
			sec[k] = v
		}
	}
}

// Keys returns the keys of a section in sorted order.
func (c Config) Keys(name string) []string {
	sec := c.Section(name)
	keys := make([]string, 0, len(sec))
	for k := range sec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the raw value of key.
func (c Config) Lookup(section, key string) (interface{}, bool) {
	sec := c.Section(section)
	if sec == nil {
		return nil, false
	}
	v, ok := sec[key]
	return v, ok
}

// GetString returns a string value, or def when it is missing or not a
// string.
func (c Config) GetString(section, key, def string) string {
	if v, ok := c.Lookup(section, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetInt returns an integer value. Numeric strings are accepted.
func (c Config) GetInt(section, key string, def int) int {
	v, ok := c.Lookup(section, key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// GetBool returns a boolean value. Numbers are true when non-zero.
func (c Config) GetBool(section, key string, def bool) bool {
	v, ok := c.Lookup(section, key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return def
}

// GetMillis reads a whole number of milliseconds. Zero or less gives def.
func (c Config) GetMillis(section, key string, def time.Duration) time.Duration {
	if ms := c.GetInt(section, key, 0); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}

// Set stores value under key, creating the section when needed.
func (c Config) Set(section, key string, value interface{}) {
	c.RegisterDefaults(section, nil)
	c.Section(section)[key] = value
}

// SetFromString parses text as the type of the value already stored under
// key and replaces it.
func (c Config) SetFromString(section, key, text string) error {
	cur, ok := c.Lookup(section, key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	text = strings.TrimSpace(text)
	var v interface{}
	switch cur.(type) {
	case bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("%s wants true or false, got %q", key, text)
		}
		v = b
	case int, int64, float64, json.Number:
		n, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("%s wants a whole number, got %q", key, text)
		}
		v = n
	default:
		v = text
	}
	c.Section(section)[key] = v
	return nil
}

// Clone copies c and each of its sections.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		switch sec := v.(type) {
		case Section:
			out[k] = cloneSection(sec)
		case map[string]interface{}:
			out[k] = cloneSection(sec)
		default:
			out[k] = v
		}
	}
	return out
}

func cloneSection(sec map[string]interface{}) Section {
	out := make(Section, len(sec))
	for k, v := range sec {
		out[k] = v
	}
	return out
}
