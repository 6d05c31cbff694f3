package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"cattree/internal/domain"
)

// runTx writes one run inside a transaction
type runTx struct {
	tx *sql.Tx
}

func (h *History) begin(ctx context.Context) (*runTx, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &runTx{tx: tx}, nil
}

// InsertRun adds the run row and returns its ID
func (t *runTx) InsertRun(run domain.RunSummary) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO runs (root_category, max_depth, updated, total_categories,
		                  failed_queries, output_path, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.RootCategory, run.MaxDepth, run.Updated, run.TotalCategories,
		run.FailedQueries, run.OutputPath, run.Duration.Milliseconds())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertRecords stores the flattened records of run id in order
func (t *runTx) InsertRecords(id int64, records []domain.Record) error {
	stmt, err := t.tx.Prepare(`
		INSERT INTO run_categories (run_id, position, name, level, files, incomplete)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(id, i, r.Name, r.Level, r.Files, r.Incomplete); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *runTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *runTx) Rollback() error {
	return t.tx.Rollback()
}
