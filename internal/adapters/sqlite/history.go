// Package sqlite records finished runs and their inventories in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"cattree/internal/application"
	"cattree/internal/domain"
	"cattree/internal/ports"
)

const schemaVersion = "1"

// History implements ports.RunStore using SQLite
type History struct {
	db     *sql.DB
	dbPath string
}

// Ensure History implements RunStore
var _ ports.RunStore = (*History)(nil)

// Open opens (creating if needed) the history database at dbPath.
// dbPath is used as given; callers expand ~ through config.ExpandPath.
func Open(dbPath string) (*History, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root_category TEXT NOT NULL,
			max_depth INTEGER NOT NULL,
			updated TEXT NOT NULL,
			total_categories INTEGER NOT NULL,
			failed_queries INTEGER NOT NULL DEFAULT 0,
			output_path TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS run_categories (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			level INTEGER NOT NULL,
			files INTEGER NOT NULL,
			incomplete INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root_category, id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}

	return &History{db: db, dbPath: dbPath}, nil
}

// checkSchemaVersion stamps a new database with schemaVersion and rejects
// one written by a different schema.
func checkSchemaVersion(db *sql.DB) error {
	var version string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
			return fmt.Errorf("failed to update metadata: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("history database schema version %s, expected %s", version, schemaVersion)
	}
	return nil
}

// Path returns the database location
func (h *History) Path() string {
	return h.dbPath
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// SaveRun stores inv and its summary in one transaction and returns the run ID.
// Root, depth, timestamp and counts are taken from inv.
func (h *History) SaveRun(ctx context.Context, inv *domain.Inventory, run domain.RunSummary) (int64, error) {
	tx, err := h.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	run.RootCategory = inv.RootCategory
	run.MaxDepth = inv.MaxDepth
	run.Updated = inv.Updated
	run.TotalCategories = inv.TotalCategories
	run.FailedQueries = inv.FailedQueries

	id, err := tx.InsertRun(run)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	if err := tx.InsertRecords(id, inv.Categories); err != nil {
		return 0, fmt.Errorf("insert categories: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first. An empty root lists all roots.
func (h *History) ListRuns(ctx context.Context, root string, limit int) ([]domain.RunSummary, error) {
	query := `
		SELECT id, root_category, max_depth, updated, total_categories,
		       failed_queries, output_path, duration_ms
		FROM runs`
	args := []any{}
	if root != "" {
		query += ` WHERE root_category = ?`
		args = append(args, domain.NormalizeName(root))
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadRun rebuilds the inventory recorded for run id
func (h *History) LoadRun(ctx context.Context, id int64) (*domain.Inventory, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT id, root_category, max_depth, updated, total_categories,
		       failed_queries, output_path, duration_ms
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, application.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT name, level, files, incomplete
		FROM run_categories WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.Record, 0, run.TotalCategories)
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(&r.Name, &r.Level, &r.Files, &r.Incomplete); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.Inventory{
		Updated:         run.Updated,
		RootCategory:    run.RootCategory,
		TotalCategories: len(records),
		MaxDepth:        run.MaxDepth,
		Categories:      records,
		FailedQueries:   run.FailedQueries,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (domain.RunSummary, error) {
	var run domain.RunSummary
	var durationMS int64
	err := s.Scan(&run.ID, &run.RootCategory, &run.MaxDepth, &run.Updated,
		&run.TotalCategories, &run.FailedQueries, &run.OutputPath, &durationMS)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, err
}
