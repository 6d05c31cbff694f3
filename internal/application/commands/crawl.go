package commands

import (
	"context"
	"fmt"
	"time"

	"cattree/internal/application"
	"cattree/internal/domain"
	"cattree/internal/log"
	"cattree/internal/ports"
)

// CrawlResult contains the result of a crawl
type CrawlResult struct {
	Inventory *domain.Inventory
	Stats     domain.BuildStats
	Failures  []*application.QueryError
	Location  string
	RunID     int64 // 0 when the run was not recorded
}

// CrawlCommand builds the category inventory of a root and persists it
type CrawlCommand struct {
	builder *application.TreeBuilder
	writer  ports.ResultWriter
	store   ports.RunStore // optional

	Root     string
	MaxDepth int
	Now      func() time.Time
}

// NewCrawlCommand creates a new CrawlCommand. store may be nil.
func NewCrawlCommand(
	source ports.CategorySource,
	writer ports.ResultWriter,
	store ports.RunStore,
	root string,
	maxDepth int,
	delay time.Duration,
) *CrawlCommand {
	return &CrawlCommand{
		builder:  application.NewTreeBuilder(source, maxDepth, delay),
		writer:   writer,
		store:    store,
		Root:     root,
		MaxDepth: maxDepth,
		Now:      time.Now,
	}
}

// Validate checks if the crawl can run
func (c *CrawlCommand) Validate() error {
	if err := application.ValidateRequired("root_category", c.Root); err != nil {
		return err
	}
	return application.ValidateMaxDepth("max_depth", c.MaxDepth)
}

// Execute builds, aggregates, flattens and writes the inventory.
// A failure to record the run in history is logged, not returned.
func (c *CrawlCommand) Execute(ctx context.Context) (*CrawlResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger := log.FromContext(ctx)

	c.builder.MaxDepth = c.MaxDepth
	built, err := c.builder.Build(ctx, c.Root)
	if err != nil {
		return nil, fmt.Errorf("build tree for %s: %w", c.Root, err)
	}

	logger.Info("calculating total file counts", "categories", domain.Count(built.Tree))
	totals := domain.Aggregate(built.Tree, built.DirectCounts)
	records := domain.Flatten(built.Tree, totals)

	inv := domain.NewInventory(built.Root, c.MaxDepth, records, c.Now())
	inv.FailedQueries = built.Stats.FailedQueries

	if err := c.writer.Write(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to write inventory: %w", err)
	}

	result := &CrawlResult{
		Inventory: inv,
		Stats:     built.Stats,
		Failures:  built.Failures,
		Location:  c.writer.Location(),
	}

	if c.store != nil {
		id, err := c.store.SaveRun(ctx, inv, domain.RunSummary{
			OutputPath: result.Location,
			Duration:   built.Stats.Duration,
		})
		if err != nil {
			logger.Warn("failed to record run", "err", err)
		} else {
			result.RunID = id
		}
	}

	return result, nil
}
