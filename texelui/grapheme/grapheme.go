// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grapheme/grapheme.go
// Summary: Grapheme cluster values and cluster-indexed string helpers.
// Usage: Every cursor, editor and wrap computation works in clusters, never bytes.

package grapheme

import (
	"errors"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var (
	// ErrNoCluster is returned when building a Cluster from an empty string.
	ErrNoCluster = errors.New("grapheme: no cluster in input")
	// ErrMultipleClusters is returned when the input holds more than one cluster.
	ErrMultipleClusters = errors.New("grapheme: input holds more than one cluster")
)

// Cluster is one user-perceived character together with its display width.
type Cluster struct {
	text  string
	width int
}

var (
	space = Cluster{text: " ", width: 1}
	empty = Cluster{}
)

// Space returns the single blank cluster.
func Space() Cluster { return space }

// Empty returns the zero-width cluster used for the right half of wide glyphs.
func Empty() Cluster { return empty }

// FromString builds a Cluster from s, which must hold exactly one cluster.
func FromString(s string) (Cluster, error) {
	if s == "" {
		return Cluster{}, ErrNoCluster
	}
	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	if rest != "" {
		return Cluster{}, ErrMultipleClusters
	}
	return newCluster(first), nil
}

// MustFromString is FromString for literals known to be a single cluster.
func MustFromString(s string) Cluster {
	c, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromRune builds a Cluster from a single rune.
func FromRune(r rune) Cluster {
	return newCluster(string(r))
}

func newCluster(s string) Cluster {
	return Cluster{text: s, width: clusterWidth(s)}
}

func clusterWidth(s string) int {
	w := runewidth.StringWidth(s)
	if w < 0 {
		return 0
	}
	if w > 2 {
		return 2
	}
	return w
}

// String returns the UTF-8 bytes of the cluster.
func (c Cluster) String() string { return c.text }

// Width returns the display width in columns (0, 1 or 2).
func (c Cluster) Width() int { return c.width }

// IsEmpty reports whether c is the zero-width continuation cluster.
func (c Cluster) IsEmpty() bool { return c.text == "" }

// Runes splits the cluster into its base rune and combining runes.
func (c Cluster) Runes() (rune, []rune) {
	rs := []rune(c.text)
	if len(rs) == 0 {
		return ' ', nil
	}
	if len(rs) == 1 {
		return rs[0], nil
	}
	return rs[0], rs[1:]
}

// Split decomposes s into clusters.
func Split(s string) []Cluster {
	out := make([]Cluster, 0, len(s))
	Each(s, func(c Cluster) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Each calls fn for every cluster of s until fn returns false.
func Each(s string, fn func(Cluster) bool) {
	state := -1
	var c string
	for s != "" {
		c, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if !fn(newCluster(c)) {
			return
		}
	}
}

// Count returns the number of clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Width returns the summed display width of all clusters in s.
func Width(s string) int {
	total := 0
	Each(s, func(c Cluster) bool {
		total += c.width
		return true
	})
	return total
}

// ByteOffset returns the byte offset of cluster pos in s. Positions past the
// end map to len(s).
func ByteOffset(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	offset := 0
	state := -1
	var c string
	rest := s
	for i := 0; i < pos && rest != ""; i++ {
		c, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(c)
	}
	return offset
}

// Insert places text before cluster pos of s.
func Insert(s string, pos int, text string) string {
	at := ByteOffset(s, pos)
	return s[:at] + text + s[at:]
}

// Remove deletes cluster pos of s. It reports false when pos is out of range.
func Remove(s string, pos int) (string, bool) {
	if pos < 0 {
		return s, false
	}
	start := ByteOffset(s, pos)
	if start >= len(s) {
		return s, false
	}
	end := ByteOffset(s, pos+1)
	return s[:start] + s[end:], true
}

// Truncate returns the longest prefix of s whose display width fits in cols.
func Truncate(s string, cols int) string {
	used := 0
	end := 0
	Each(s, func(c Cluster) bool {
		if used+c.width > cols {
			return false
		}
		used += c.width
		end += len(c.text)
		return true
	})
	return s[:end]
}
