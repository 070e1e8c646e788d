// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/linestorage/memory.go
// Summary: In-memory line storage fed by writes.

package linestorage

import "strings"

// MemoryLineStorage accumulates written text as lines. It always holds at
// least one line: the active line that the next write appends to.
type MemoryLineStorage struct {
	lines []string
}

// NewMemory returns a storage holding a single empty line.
func NewMemory() *MemoryLineStorage {
	return &MemoryLineStorage{lines: []string{""}}
}

// Write appends p, starting a new line at every '\n'.
func (m *MemoryLineStorage) Write(p []byte) (int, error) {
	m.WriteString(string(p))
	return len(p), nil
}

// WriteString is Write for strings.
func (m *MemoryLineStorage) WriteString(s string) (int, error) {
	if len(m.lines) == 0 {
		m.lines = []string{""}
	}
	parts := strings.Split(s, "\n")
	last := len(m.lines) - 1
	m.lines[last] += parts[0]
	m.lines = append(m.lines, parts[1:]...)
	return len(s), nil
}

// NumLines counts every line including the active one.
func (m *MemoryLineStorage) NumLines() int { return len(m.lines) }

// ViewLine returns line i.
func (m *MemoryLineStorage) ViewLine(i int) (string, bool, error) {
	if i < 0 || i >= len(m.lines) {
		return "", false, nil
	}
	return m.lines[i], true, nil
}

// ActiveLine returns the unterminated last line.
func (m *MemoryLineStorage) ActiveLine() string {
	if len(m.lines) == 0 {
		return ""
	}
	return m.lines[len(m.lines)-1]
}

// Clear drops all content, leaving one empty line.
func (m *MemoryLineStorage) Clear() {
	clear(m.lines)
	m.lines = append(m.lines[:0], "")
}
