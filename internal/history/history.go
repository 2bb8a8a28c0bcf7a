/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history keeps a small per-user SQLite log of completed
// generations: when, where to, how many pages, and the settings summary.
// It is purely informational; failures here never block a render.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "photogrid/internal/log"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// DBFileName is the history database inside the user config directory.
	DBFileName = "history.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking
	// changes and add migrations.
	schemaVersion = 1
)

// Entry is one recorded generation run.
type Entry struct {
	ID          int64
	CreatedAt   time.Time
	Mode        string // "single", "pages" or "document"
	Pages       int
	Images      int
	Destination string
	Paper       string // e.g. "8.27x11.69in landscape"
	Grid        string // e.g. "2x2" or "auto"
	DPI         int
}

// Store wraps the history database. Open one per process; it is safe for
// the serial access pattern the application uses.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open ensures the database exists under dir, applies pragmas and creates
// the schema if needed.
func Open(dir string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("history"), "open").With(slog.String("dir", dir))
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("history directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.Error("create history dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	path := filepath.Join(dir, DBFileName)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Embedded usage; a single connection avoids locking surprises.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}
	return &Store{db: db, log: applog.WithComponent("history")}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func ensureSchema(ctx context.Context, db *sql.DB) error {
	const createMeta = `CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	const createRuns = `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		mode TEXT NOT NULL,
		pages INTEGER NOT NULL,
		images INTEGER NOT NULL,
		destination TEXT NOT NULL,
		paper TEXT NOT NULL,
		grid TEXT NOT NULL,
		dpi INTEGER NOT NULL
	);`
	for _, stmt := range []string{createMeta, createRuns} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES('schema_version', ?)
		 ON CONFLICT(key) DO NOTHING;`, fmt.Sprint(schemaVersion))
	if err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// Record stores a completed run and returns its row id.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(created_at, mode, pages, images, destination, paper, grid, dpi)
		 VALUES(?,?,?,?,?,?,?,?);`,
		e.CreatedAt.UTC().Format(time.RFC3339), e.Mode, e.Pages, e.Images,
		e.Destination, e.Paper, e.Grid, e.DPI)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, mode, pages, images, destination, paper, grid, dpi
		 FROM runs ORDER BY id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &created, &e.Mode, &e.Pages, &e.Images,
			&e.Destination, &e.Paper, &e.Grid, &e.DPI); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep runs and returns the removed count.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?);`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
