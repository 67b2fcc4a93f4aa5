// Package history keeps a local SQLite log of successful builds.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the state directory.
const FileName = "history.db"

// Build is one recorded packaging run.
type Build struct {
	ID          int64
	PackageUUID string
	Input       string
	Output      string
	Mode        string
	Files       int
	TotalSize   uint64
	Digest      string // BLAKE3 of game.data, hex
	CreatedAt   time.Time
}

// DB is an open history database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the history database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	h := &DB{db: db, path: path}
	if err := h.init(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *DB) init() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS builds (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			package_uuid TEXT    NOT NULL,
			input        TEXT    NOT NULL,
			output       TEXT    NOT NULL,
			mode         TEXT    NOT NULL,
			files        INTEGER NOT NULL,
			total_size   INTEGER NOT NULL,
			digest       TEXT    NOT NULL,
			created_at   INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS builds_created_at ON builds (created_at);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Record stores b and returns its row id. A zero CreatedAt is set to now.
func (h *DB) Record(ctx context.Context, b Build) (int64, error) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	res, err := h.db.ExecContext(ctx, `
		INSERT INTO builds (package_uuid, input, output, mode, files, total_size, digest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.PackageUUID, b.Input, b.Output, b.Mode, b.Files, int64(b.TotalSize), b.Digest, b.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert build: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to n builds, newest first.
func (h *DB) Recent(ctx context.Context, n int) ([]Build, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, package_uuid, input, output, mode, files, total_size, digest, created_at
		FROM builds ORDER BY created_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var (
			b       Build
			size    int64
			created int64
		)
		if err := rows.Scan(&b.ID, &b.PackageUUID, &b.Input, &b.Output, &b.Mode,
			&b.Files, &size, &b.Digest, &created); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		b.TotalSize = uint64(size)
		b.CreatedAt = time.Unix(0, created)
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

// Close closes the database.
func (h *DB) Close() error {
	return h.db.Close()
}

// Path returns the path to the database file.
func (h *DB) Path() string {
	return h.path
}
