// Package history persists a log of harness runs to SQLite so bring-up
// sessions can be reconstructed after the fact: which architecture
// string was built, with which toolchain, and whether it passed.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run kinds.
const (
	KindBuild    = "build"
	KindCoverage = "coverage"
	KindSelftest = "selftest"
)

// Record is one logged harness run.
type Record struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Arch      string `json:"arch"`
	ABI       string `json:"abi"`
	Toolchain string `json:"toolchain"`
	OK        bool   `json:"ok"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Log provides append and list access to the run log.
type Log struct {
	db *sql.DB
}

// Open creates or opens the run log database at the given path.
// Idempotent; the schema is applied on every open.
//
// SQLite is configured with WAL mode and a single-writer connection
// pool, matching the one-writer-at-a-time usage of the harness.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to run log: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying run log schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append writes one run record. A missing ID is filled with a fresh
// UUIDv7 so rows sort by creation time; the stored record is returned.
func (l *Log) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV7()).String()
	}

	err := l.db.QueryRowContext(ctx, `
		INSERT INTO runs (id, kind, arch, abi, toolchain, ok, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at
	`, rec.ID, rec.Kind, rec.Arch, rec.ABI, rec.Toolchain, rec.OK, rec.Detail).Scan(&rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("appending run record: %w", err)
	}
	return rec, nil
}

// List returns the most recent records, newest first. A non-positive
// limit returns everything.
func (l *Log) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, kind, arch, abi, toolchain, ok, detail, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing run records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Arch, &rec.ABI,
			&rec.Toolchain, &rec.OK, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing run records: %w", err)
	}
	return records, nil
}
