// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/logindex/index_test.go
// Summary: Tests for the console line index.

package logindex

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openMemory(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(Memory)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func lines(results []Result) []int64 {
	out := make([]int64, len(results))
	for i, r := range results {
		out[i] = r.Line
	}
	return out
}

func TestSearchNewestFirst(t *testing.T) {
	idx := openMemory(t)
	for i, text := range []string{"break main.go:10", "continue", "breakpoint 1 hit", "print x"} {
		if err := idx.Add(int64(i), text, false); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		time.Sleep(time.Millisecond)
	}
	got, err := idx.Search("break", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if l := lines(got); len(l) != 2 || l[0] != 2 || l[1] != 0 {
		t.Fatalf("expected lines [2 0], got %v", l)
	}
}

func TestSearchEscapesWildcards(t *testing.T) {
	idx := openMemory(t)
	idx.Add(1, "100% done", false)
	idx.Add(2, "1000 done", false)
	idx.Add(3, "a_b", false)
	idx.Add(4, "axb", false)

	got, err := idx.Search("0%", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if l := lines(got); len(l) != 1 || l[0] != 1 {
		t.Fatalf("expected only line 1 for literal %%, got %v", l)
	}
	got, _ = idx.Search("a_b", 10)
	if l := lines(got); len(l) != 1 || l[0] != 3 {
		t.Fatalf("expected only line 3 for literal _, got %v", l)
	}
}

func TestSearchLimitAndCommands(t *testing.T) {
	idx := openMemory(t)
	for i := 0; i < 5; i++ {
		idx.Add(int64(i), "step", i == 4)
	}
	got, err := idx.Search("step", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	var cmd bool
	for _, r := range got {
		if r.Line == 4 {
			cmd = r.IsCommand
		}
	}
	if !cmd {
		t.Fatalf("expected line 4 to be marked as a command, got %+v", got)
	}
}

func TestEmptyInputs(t *testing.T) {
	idx := openMemory(t)
	if err := idx.Add(1, "", false); err != nil {
		t.Fatalf("add empty: %v", err)
	}
	got, err := idx.Search("", 10)
	if err != nil || got != nil {
		t.Fatalf("empty query: got %v, %v", got, err)
	}
}

func TestClear(t *testing.T) {
	idx := openMemory(t)
	idx.Add(1, "hello", true)
	if err := idx.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ := idx.Search("hello", 10)
	if len(got) != 0 {
		t.Fatalf("expected no results after clear, got %v", got)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "index.db")
	idx, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	idx.Add(7, "kept line", false)
	if err := idx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	idx, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx.Close()
	got, err := idx.Search("kept", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if l := lines(got); len(l) != 1 || l[0] != 7 {
		t.Fatalf("expected line 7 after reopen, got %v", l)
	}
}

func TestSessionsAppendToSharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	for _, text := range []string{"alpha-session-one", "beta-session-two"} {
		idx, err := Open(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		// Each session numbers its lines from one.
		if err := idx.Add(1, text, true); err != nil {
			t.Fatalf("add: %v", err)
		}
		if err := idx.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	idx, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx.Close()
	got, err := idx.Search("session", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].Content != "beta-session-two" || got[1].Content != "alpha-session-one" {
		t.Fatalf("expected both sessions newest first, got %+v", got)
	}
	if got[0].Line != 1 || got[1].Line != 1 {
		t.Fatalf("expected console line numbers to be kept, got %v", lines(got))
	}
}

func TestAddDuringCloseIsNotLost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				err := idx.Add(int64(i), fmt.Sprintf("worker %d line %d", w, i), false)
				if errors.Is(err, ErrClosed) {
					return
				}
				if err != nil {
					t.Errorf("add: %v", err)
					return
				}
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(w)
	}
	time.Sleep(time.Millisecond)
	if err := idx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	wg.Wait()

	idx, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx.Close()
	got, err := idx.Search("worker", 1000)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != accepted {
		t.Fatalf("accepted %d lines but %d were stored", accepted, len(got))
	}
}

func TestClosed(t *testing.T) {
	idx, err := Open(Memory)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := idx.Add(1, "x", false); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := idx.Search("x", 1); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from search, got %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike(`50%_a\b`); got != `50\%\_a\\b` {
		t.Fatalf("unexpected escape: %q", got)
	}
}
