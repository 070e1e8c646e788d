// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/linestorage/file.go
// Summary: Lazily indexed line storage over a seekable byte stream.
// Usage: Open a path or wrap an io.ReadSeeker; lines are discovered on demand.
//
// The index holds the start offset of every line found so far. It only grows:
// a miss seeks once to the last known offset and scans forward, recording new
// offsets until the requested line, the scan limit or end of stream. Reaching
// EOF early reports the line as absent; when the file grows a later call picks
// up where the scan stopped. Lines already indexed are read with ReadAt when
// the stream supports it, so revisiting them costs no seek. An unterminated
// last line is kept as last scanned until Refresh or a request past it scans
// again.

package linestorage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileLineStorage reads lines from a stream it never writes to.
type FileLineStorage struct {
	r      io.ReadSeeker
	ra     io.ReaderAt
	closer io.Closer

	// offsets[i] is the start of line i. The last entry starts the line
	// that has not been seen terminated yet.
	offsets []int64
	// partial is set when bytes follow the last offset without a newline;
	// partialText holds them as of the last scan.
	partial     bool
	partialText string

	scanLimit int
	pos       int64
	seeks     int
}

// Option configures a FileLineStorage.
type Option func(*FileLineStorage)

// WithScanLimit caps the number of lines discovered by a single call. Zero
// or less means unlimited.
func WithScanLimit(n int) Option {
	return func(f *FileLineStorage) { f.scanLimit = n }
}

// New wraps r. If r also implements io.ReaderAt indexed lines are read
// without seeking, and if it implements io.Closer Close closes it.
func New(r io.ReadSeeker, opts ...Option) *FileLineStorage {
	f := &FileLineStorage{r: r, offsets: []int64{0}, pos: -1}
	if ra, ok := r.(io.ReaderAt); ok {
		f.ra = ra
	}
	if c, ok := r.(io.Closer); ok {
		f.closer = c
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open opens path for reading.
func Open(path string, opts ...Option) (*FileLineStorage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open line storage: %w", err)
	}
	return New(file, opts...), nil
}

// Close releases the underlying stream when it is closable.
func (f *FileLineStorage) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Seeks returns the number of seek calls issued so far.
func (f *FileLineStorage) Seeks() int { return f.seeks }

// Indexed returns the number of line offsets recorded.
func (f *FileLineStorage) Indexed() int { return len(f.offsets) }

// NumLines returns the number of lines discovered so far. Call Refresh to
// discover more without asking for a specific line.
func (f *FileLineStorage) NumLines() int {
	n := len(f.offsets) - 1
	if f.partial {
		n++
	}
	return n
}

// Refresh scans forward from the last known offset, honouring the scan
// limit, and returns how many complete lines were newly found.
func (f *FileLineStorage) Refresh() (int, error) {
	before := len(f.offsets)
	if _, _, err := f.scan(-1); err != nil {
		return 0, err
	}
	return len(f.offsets) - before, nil
}

// ViewLine returns line i, scanning forward if it has not been indexed yet.
func (f *FileLineStorage) ViewLine(i int) (string, bool, error) {
	if i < 0 {
		return "", false, nil
	}
	if i < len(f.offsets)-1 {
		text, err := f.readIndexed(i)
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	}
	if f.partial && i == len(f.offsets)-1 {
		return f.partialText, true, nil
	}
	return f.scan(i)
}

func (f *FileLineStorage) readIndexed(i int) (string, error) {
	start, end := f.offsets[i], f.offsets[i+1]
	buf := make([]byte, end-start)
	if f.ra != nil {
		n, err := f.ra.ReadAt(buf, start)
		if n < len(buf) {
			if err == nil || errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return "", fmt.Errorf("read line %d at offset %d: %w", i, start, err)
		}
		return trimEOL(string(buf)), nil
	}
	if err := f.seek(start); err != nil {
		return "", fmt.Errorf("read line %d: %w", i, err)
	}
	if _, err := io.ReadFull(f.r, buf); err != nil {
		f.pos = -1
		return "", fmt.Errorf("read line %d at offset %d: %w", i, start, err)
	}
	f.pos = end
	return trimEOL(string(buf)), nil
}

func (f *FileLineStorage) seek(off int64) error {
	if f.pos == off {
		return nil
	}
	f.seeks++
	if _, err := f.r.Seek(off, io.SeekStart); err != nil {
		f.pos = -1
		return fmt.Errorf("seek to %d: %w", off, err)
	}
	f.pos = off
	return nil
}

// scan discovers lines from the last known offset. It stops once line
// target has been read (target < 0 means never), after scanLimit new lines,
// or at end of stream. The text of target is returned when reached.
func (f *FileLineStorage) scan(target int) (string, bool, error) {
	off := f.offsets[len(f.offsets)-1]
	if err := f.seek(off); err != nil {
		return "", false, fmt.Errorf("scan for line %d: %w", target, err)
	}
	// bufio reads ahead, so the stream position is unknown afterwards.
	f.pos = -1
	br := bufio.NewReader(f.r)
	found := 0
	for {
		idx := len(f.offsets) - 1
		line, err := br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", false, fmt.Errorf("scan line %d at offset %d: %w", idx, off, err)
			}
			f.partial = len(line) > 0
			f.partialText = trimEOL(line)
			if idx == target && f.partial {
				return f.partialText, true, nil
			}
			return "", false, nil
		}
		off += int64(len(line))
		f.offsets = append(f.offsets, off)
		f.partial, f.partialText = false, ""
		found++
		if idx == target {
			return trimEOL(line), true, nil
		}
		if f.scanLimit > 0 && found >= f.scanLimit {
			return "", false, nil
		}
	}
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
