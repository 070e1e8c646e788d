// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/logindex/index.go
// Summary: SQLite-backed substring search over console lines.
//
// Provides search over everything shown in the console with:
//   - Sync indexing for commands typed at the prompt
//   - Async batch indexing for process output
//   - Newest-first substring matches

package logindex

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Memory is the path of a private in-memory index.
const Memory = ":memory:"

// ErrClosed is returned after Close.
var ErrClosed = errors.New("logindex: closed")

// Result is one matching line.
type Result struct {
	Line      int64
	Timestamp time.Time
	Content   string
	IsCommand bool
}

// Config holds index settings.
type Config struct {
	// Path is the database file, or Memory.
	Path string
	// BatchSize is the number of queued lines written per transaction.
	BatchSize int
	// BatchTimeout is how long a partial batch may wait.
	BatchTimeout time.Duration
	// ChannelBuffer is the capacity of the output queue.
	ChannelBuffer int
}

// DefaultConfig returns the settings used by Open.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		BatchSize:     100,
		BatchTimeout:  2 * time.Second,
		ChannelBuffer: 1000,
	}
}

type entry struct {
	line      int64
	timestamp time.Time
	text      string
	isCommand bool
}

// Index stores lines with the console line number they were shown at. Rows
// get their own id, so sessions sharing a database append to it.
type Index struct {
	config Config
	db     *sql.DB

	batchCh chan entry
	flushCh chan chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu     sync.Mutex
	closed bool
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    line INTEGER NOT NULL,
    timestamp INTEGER NOT NULL,
    is_command INTEGER DEFAULT 0,
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lines_timestamp ON lines(timestamp);
`

// Open opens or creates the index at path.
func Open(path string) (*Index, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens an index with custom settings.
func OpenWithConfig(config Config) (*Index, error) {
	if config.BatchSize <= 0 {
		config.BatchSize = 1
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = time.Second
	}

	dsn := config.Path
	if config.Path != Memory {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn += "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkVersion(db); err != nil {
		db.Close()
		return nil, err
	}

	idx := &Index{
		config:  config,
		db:      db,
		batchCh: make(chan entry, max(config.ChannelBuffer, 1)),
		flushCh: make(chan chan struct{}),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go idx.batchIndexer()
	return idx, nil
}

func checkVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current == schemaVersion {
		return nil
	}
	if current > schemaVersion {
		return fmt.Errorf("index schema version %d is newer than supported %d", current, schemaVersion)
	}
	log.Printf("[LOGINDEX] Initialising schema version %d (found %d)", schemaVersion, current)
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to reset schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	return nil
}

func (x *Index) batchIndexer() {
	defer close(x.doneCh)

	batch := make([]entry, 0, x.config.BatchSize)
	timer := time.NewTimer(x.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := x.write(batch); err != nil {
			log.Printf("[LOGINDEX] Failed to write batch of %d: %v", len(batch), err)
		}
		batch = batch[:0]
	}
	drain := func() {
		for {
			select {
			case e := <-x.batchCh:
				batch = append(batch, e)
			default:
				return
			}
		}
	}

	for {
		select {
		case e := <-x.batchCh:
			batch = append(batch, e)
			if len(batch) >= x.config.BatchSize {
				flush()
				timer.Reset(x.config.BatchTimeout)
			}
		case <-timer.C:
			flush()
			timer.Reset(x.config.BatchTimeout)
		case done := <-x.flushCh:
			drain()
			flush()
			close(done)
		case <-x.stopCh:
			drain()
			flush()
			return
		}
	}
}

func (x *Index) write(batch []entry) error {
	tx, err := x.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO lines (line, timestamp, is_command, content) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, e := range batch {
		isCmd := 0
		if e.isCommand {
			isCmd = 1
		}
		if _, err := stmt.Exec(e.line, e.timestamp.UnixNano(), isCmd, e.text); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert line %d: %w", e.line, err)
		}
	}
	return tx.Commit()
}

// Add indexes text as console line number line. Commands are written
// immediately; output is queued and written in batches. Empty text is
// ignored.
func (x *Index) Add(line int64, text string, isCommand bool) error {
	if text == "" {
		return nil
	}
	// Held until the entry is queued or written so that Close cannot drain
	// the queue in between.
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return ErrClosed
	}
	e := entry{line: line, timestamp: time.Now(), text: text, isCommand: isCommand}
	if isCommand {
		return x.write([]entry{e})
	}
	select {
	case x.batchCh <- e:
		return nil
	default:
		// Queue full: write through rather than drop.
		return x.write([]entry{e})
	}
}

// Flush blocks until queued lines are written.
func (x *Index) Flush() error {
	x.mu.Lock()
	closed := x.closed
	x.mu.Unlock()
	if closed {
		return ErrClosed
	}
	done := make(chan struct{})
	select {
	case x.flushCh <- done:
		<-done
	case <-x.doneCh:
	}
	return nil
}

// EscapeLike quotes the LIKE wildcards in s using backslash as escape.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Search returns up to limit lines containing query, newest first. Queued
// lines are flushed first so that results are complete.
func (x *Index) Search(query string, limit int) ([]Result, error) {
	if query == "" {
		return nil, nil
	}
	if err := x.Flush(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := x.db.Query(
		`SELECT line, timestamp, is_command, content FROM lines
		 WHERE content LIKE ? ESCAPE '\'
		 ORDER BY timestamp DESC, id DESC LIMIT ?`,
		"%"+EscapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var ts int64
		var isCmd int
		if err := rows.Scan(&r.Line, &ts, &isCmd, &r.Content); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Timestamp = time.Unix(0, ts)
		r.IsCommand = isCmd == 1
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return out, nil
}

// Clear removes every indexed line.
func (x *Index) Clear() error {
	if err := x.Flush(); err != nil {
		return err
	}
	if _, err := x.db.Exec("DELETE FROM lines"); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	return nil
}

// Close writes pending lines and closes the database.
func (x *Index) Close() error {
	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return nil
	}
	x.closed = true
	x.mu.Unlock()

	close(x.stopCh)
	<-x.doneCh
	return x.db.Close()
}
