// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/linestorage/storage.go
// Summary: Line-addressable text sources consumed by scrollback widgets.
// Usage: Widgets read lines through ViewLine or walk a range with View.
// Notes: Storages are not synchronized; use them from the UI goroutine only.

package linestorage

// LineStorage is a sequence of text lines addressed by index. A missing line
// is reported with ok == false and a nil error: for growing sources it may
// appear later.
type LineStorage interface {
	// NumLines returns the number of lines currently known.
	NumLines() int
	// ViewLine returns line i without its trailing newline.
	ViewLine(i int) (text string, ok bool, err error)
}

// Line is one entry produced by a LineView.
type Line struct {
	Index int
	Text  string
}

// LineView walks the half-open range [lo, hi) of a storage from either end.
// Lines are fetched only when requested.
type LineView struct {
	storage     LineStorage
	front, back int
	err         error
}

// View returns a lazy view over lines lo through hi-1.
func View(s LineStorage, lo, hi int) *LineView {
	lo = max(lo, 0)
	hi = max(hi, lo)
	return &LineView{storage: s, front: lo, back: hi}
}

// Next returns the line at the front of the view and advances past it.
func (v *LineView) Next() (Line, bool) {
	if v.err != nil || v.front >= v.back {
		return Line{}, false
	}
	text, ok, err := v.storage.ViewLine(v.front)
	if err != nil {
		v.err = err
		return Line{}, false
	}
	if !ok {
		v.back = v.front
		return Line{}, false
	}
	l := Line{Index: v.front, Text: text}
	v.front++
	return l, true
}

// Prev returns the line at the back of the view and retreats past it. Indexes
// beyond the end of the storage are skipped.
func (v *LineView) Prev() (Line, bool) {
	for v.err == nil && v.front < v.back {
		idx := v.back - 1
		text, ok, err := v.storage.ViewLine(idx)
		if err != nil {
			v.err = err
			return Line{}, false
		}
		if !ok {
			v.back = min(idx, v.storage.NumLines())
			continue
		}
		v.back = idx
		return Line{Index: idx, Text: text}, true
	}
	return Line{}, false
}

// Remaining reports the size of the unvisited range. It is an upper bound
// when the range extends past the end of the storage.
func (v *LineView) Remaining() int { return v.back - v.front }

// Err returns the first I/O error met while walking.
func (v *LineView) Err() error { return v.err }
