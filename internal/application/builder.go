package application

import (
	"context"
	"errors"
	"slices"
	"time"

	"cattree/internal/domain"
	"cattree/internal/log"
	"cattree/internal/ports"
)

// TreeBuilder expands a root category into a bounded-depth tree.
//
// Each category name is expanded at most once per Build. A name met again
// (a cycle, or a diamond in the underlying graph) is not attached a second
// time, so its files count only towards the first parent in traversal order.
type TreeBuilder struct {
	source   ports.CategorySource
	MaxDepth int
	Delay    time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// NewTreeBuilder creates a builder reading from source
func NewTreeBuilder(source ports.CategorySource, maxDepth int, delay time.Duration) *TreeBuilder {
	return &TreeBuilder{
		source:   source,
		MaxDepth: maxDepth,
		Delay:    delay,
		sleep:    sleepContext,
	}
}

// BuildResult is the raw outcome of one Build
type BuildResult struct {
	Root         string
	Tree         []*domain.CategoryNode
	DirectCounts map[string]int
	Incomplete   map[string]bool
	Failures     []*QueryError
	Stats        domain.BuildStats
}

// traversal is the state of one Build call and is never shared
type traversal struct {
	b       *TreeBuilder
	log     *log.Logger
	visited map[string]bool
	result  *BuildResult
}

// Build expands root. Source failures are logged, counted and turn into
// zero subcategories / zero files for that category; only cancellation of
// ctx aborts the build.
func (b *TreeBuilder) Build(ctx context.Context, root string) (*BuildResult, error) {
	if err := ValidateRequired("root_category", root); err != nil {
		return nil, err
	}
	if err := ValidateMaxDepth("max_depth", b.MaxDepth); err != nil {
		return nil, err
	}

	root = domain.NormalizeName(root)
	t := &traversal{
		b:       b,
		log:     log.FromContext(ctx),
		visited: make(map[string]bool),
		result: &BuildResult{
			Root:         root,
			DirectCounts: make(map[string]int),
			Incomplete:   make(map[string]bool),
		},
	}

	start := time.Now()
	tree, err := t.expand(ctx, root, 1)
	if err != nil {
		return nil, err
	}

	t.result.Tree = tree
	t.result.Stats.Duration = time.Since(start)
	return t.result, nil
}

// expand visits name and returns the nodes for its subcategories at level.
// It returns nil when name was already visited, lies beyond the depth bound
// or has no subcategories.
func (t *traversal) expand(ctx context.Context, name string, level int) ([]*domain.CategoryNode, error) {
	if t.visited[name] {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.visited[name] = true
	t.result.Stats.CategoriesVisited++
	t.log.Info("fetching", "category", name, "depth", level-1)

	files, err := t.b.source.FileCount(ctx, name)
	t.result.Stats.FileCountQueries++
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		t.fail(name, "file count", err)
		files = 0
	}
	t.result.DirectCounts[name] = files

	if err := t.b.pause(ctx); err != nil {
		return nil, err
	}

	// Frontier: the category is listed with its own files but not expanded
	if level > t.b.MaxDepth {
		return nil, nil
	}

	subcats, err := t.b.source.Subcategories(ctx, name)
	t.result.Stats.SubcatQueries++
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		t.fail(name, "subcategories", err)
		return nil, nil
	}

	subcats = normalizeNames(subcats)
	if len(subcats) == 0 {
		return nil, nil
	}

	nodes := make([]*domain.CategoryNode, 0, len(subcats))
	for _, sub := range subcats {
		if t.visited[sub] {
			t.log.Debug("already visited", "category", sub, "parent", name)
			continue
		}

		node := &domain.CategoryNode{Name: sub, Level: level}
		children, err := t.expand(ctx, sub, level+1)
		if err != nil {
			return nil, err
		}
		node.Children = children
		node.Incomplete = t.result.Incomplete[sub]
		nodes = append(nodes, node)
	}

	return nodes, nil
}

func (t *traversal) fail(name, op string, err error) {
	qerr := &QueryError{Category: name, Op: op, Err: err}
	t.log.Warn("query failed", "category", name, "op", op, "err", err)
	t.result.Failures = append(t.result.Failures, qerr)
	t.result.Incomplete[name] = true
	t.result.Stats.FailedQueries++
}

func (b *TreeBuilder) pause(ctx context.Context) error {
	if b.sleep == nil {
		return sleepContext(ctx, b.Delay)
	}
	return b.sleep(ctx, b.Delay)
}

// normalizeNames returns the names sorted ascending without blanks or duplicates
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = domain.NormalizeName(n); n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsCanceled reports whether err stems from context cancellation
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
