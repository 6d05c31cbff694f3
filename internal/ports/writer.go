package ports

import (
	"context"

	"cattree/internal/domain"
)

// ResultWriter persists a finished inventory
type ResultWriter interface {
	Write(ctx context.Context, inv *domain.Inventory) error

	// Location describes where the inventory is written (e.g. a file path)
	Location() string
}

// InventoryReader loads a previously written inventory
type InventoryReader interface {
	Read(ctx context.Context) (*domain.Inventory, error)
}
