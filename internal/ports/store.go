package ports

import (
	"context"

	"cattree/internal/domain"
)

// RunStore keeps a history of finished runs.
// Runs are append-only; a stored run is never modified.
type RunStore interface {
	SaveRun(ctx context.Context, inv *domain.Inventory, run domain.RunSummary) (int64, error)
	ListRuns(ctx context.Context, root string, limit int) ([]domain.RunSummary, error)
	LoadRun(ctx context.Context, id int64) (*domain.Inventory, error)
	Close() error
}
