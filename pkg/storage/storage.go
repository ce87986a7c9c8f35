// Package storage keeps the operator vocabulary and the calculation history
// in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hazyhaar/wordcalc/pkg/dict"
	"github.com/hazyhaar/wordcalc/pkg/history"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS operators (
	locale     TEXT NOT NULL,
	position   INTEGER NOT NULL,
	phrase     TEXT NOT NULL,
	symbol     TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (locale, phrase)
);
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	input      TEXT NOT NULL,
	expression TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);`

// DB is a handle on the wordcalc database.
type DB struct {
	db      *sql.DB
	history *HistoryStore
}

// Open opens (or creates) the SQLite database at path and ensures the
// operators and history tables exist.
func Open(path string) (*DB, error) {
	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == MemoryPath {
		// Every connection to :memory: is a distinct database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	d := &DB{db: db}
	d.history = &HistoryStore{db: db}
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks the connection.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// History returns the SQLite-backed history log.
func (d *DB) History() *HistoryStore {
	return d.history
}

// SeedOperators inserts entries for locale in one transaction. Positions
// follow the slice order. Existing rows are left untouched (INSERT OR IGNORE)
// so that manual edits to the table survive restarts.
func (d *DB) SeedOperators(ctx context.Context, locale string, entries []dict.Entry) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO operators
		(locale, position, phrase, symbol, updated_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	inserted := 0
	for i, e := range entries {
		res, err := stmt.ExecContext(ctx, locale, i, e.Phrase, e.Symbol, now)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", e.Phrase, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

// SetOperator inserts or replaces a single phrase.
func (d *DB) SetOperator(ctx context.Context, locale, phrase, symbol string) error {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return fmt.Errorf("empty phrase")
	}
	_, err := d.db.ExecContext(ctx, `INSERT INTO operators (locale, position, phrase, symbol, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM operators WHERE locale = ?), ?, ?, ?)
		ON CONFLICT (locale, phrase) DO UPDATE SET symbol = excluded.symbol, updated_at = excluded.updated_at`,
		locale, locale, phrase, symbol, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set operator %q: %w", phrase, err)
	}
	return nil
}

// Operators returns the rows for locale in position order.
func (d *DB) Operators(ctx context.Context, locale string) ([]dict.Entry, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT phrase, symbol FROM operators WHERE locale = ? ORDER BY position, phrase`, locale)
	if err != nil {
		return nil, fmt.Errorf("list operators: %w", err)
	}
	defer rows.Close()

	var entries []dict.Entry
	for rows.Next() {
		var e dict.Entry
		if err := rows.Scan(&e.Phrase, &e.Symbol); err != nil {
			return nil, fmt.Errorf("scan operator: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HistoryStore implements history.Store on the history table.
type HistoryStore struct {
	db *sql.DB
	mu sync.Mutex // serializes writers
}

var _ history.Store = (*HistoryStore)(nil)

// Append inserts r.
func (h *HistoryStore) Append(ctx context.Context, r history.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO history (input, expression, outcome, created_at) VALUES (?, ?, ?, ?)`,
		r.Input, r.Expression, r.Outcome, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// List returns every record in insertion order.
func (h *HistoryStore) List(ctx context.Context) ([]history.Record, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT input, expression, outcome FROM history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	records := []history.Record{}
	for rows.Next() {
		var r history.Record
		if err := rows.Scan(&r.Input, &r.Expression, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Clear deletes every record.
func (h *HistoryStore) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
