package commands

import (
	"context"
	"fmt"

	"cattree/internal/application"
	"cattree/internal/domain"
	"cattree/internal/ports"
)

// LoadInventoryCommand reads a persisted inventory
type LoadInventoryCommand struct {
	reader ports.InventoryReader
}

// NewLoadInventoryCommand creates a new LoadInventoryCommand
func NewLoadInventoryCommand(reader ports.InventoryReader) *LoadInventoryCommand {
	return &LoadInventoryCommand{reader: reader}
}

// Execute runs the load command
func (c *LoadInventoryCommand) Execute(ctx context.Context) (*domain.Inventory, error) {
	return c.reader.Read(ctx)
}

// LoadRunCommand reads an inventory from the run history
type LoadRunCommand struct {
	store ports.RunStore
	RunID int64
}

// NewLoadRunCommand creates a new LoadRunCommand
func NewLoadRunCommand(store ports.RunStore, runID int64) *LoadRunCommand {
	return &LoadRunCommand{store: store, RunID: runID}
}

// Execute runs the load run command
func (c *LoadRunCommand) Execute(ctx context.Context) (*domain.Inventory, error) {
	if c.store == nil {
		return nil, application.ErrNoHistory
	}
	if c.RunID <= 0 {
		return nil, &application.ValidationError{
			Field:   "run",
			Message: fmt.Sprintf("invalid run ID: %d", c.RunID),
		}
	}
	return c.store.LoadRun(ctx, c.RunID)
}

// HistoryCommand lists recorded runs, newest first
type HistoryCommand struct {
	store ports.RunStore
	Root  string // empty lists every root
	Limit int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(store ports.RunStore, root string, limit int) *HistoryCommand {
	return &HistoryCommand{store: store, Root: root, Limit: limit}
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) ([]domain.RunSummary, error) {
	if c.store == nil {
		return nil, application.ErrNoHistory
	}
	limit := c.Limit
	if limit <= 0 {
		limit = 20
	}
	return c.store.ListRuns(ctx, c.Root, limit)
}

// SubtreeCommand selects a category and its descendants from an inventory
type SubtreeCommand struct {
	inv  *domain.Inventory
	Name string
}

// NewSubtreeCommand creates a new SubtreeCommand
func NewSubtreeCommand(inv *domain.Inventory, name string) *SubtreeCommand {
	return &SubtreeCommand{inv: inv, Name: name}
}

// Execute returns the records of the subtree, or ErrNotFound
func (c *SubtreeCommand) Execute(ctx context.Context) ([]domain.Record, error) {
	if err := application.ValidateRequired("category", c.Name); err != nil {
		return nil, err
	}
	records := c.inv.Subtree(domain.NormalizeName(c.Name))
	if records == nil {
		return nil, fmt.Errorf("category %q: %w", c.Name, application.ErrNotFound)
	}
	return records, nil
}
