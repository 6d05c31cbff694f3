package domain

import "time"

// CategoryNode is one category discovered while expanding the root.
// A parent exclusively owns its children.
type CategoryNode struct {
	Name        string          // Title without the "Category:" prefix
	Level       int             // Root's direct children are level 1
	Children    []*CategoryNode // Sorted by Name, empty when not expanded
	DirectFiles int             // Files in exactly this category
	TotalFiles  int             // DirectFiles plus all descendants, set by Aggregate
	Incomplete  bool            // A source query for this category failed
}

// IsLeaf reports whether the node has no expanded children
func (n *CategoryNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Record is one line of the flattened inventory
type Record struct {
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Files      int    `json:"files"`
	Incomplete bool   `json:"incomplete,omitempty"`
}

// Inventory is the persisted result of one run.
// Field order matches the JSON artifact.
type Inventory struct {
	Updated         string   `json:"updated"`
	RootCategory    string   `json:"root_category"`
	TotalCategories int      `json:"total_categories"`
	MaxDepth        int      `json:"max_depth"`
	Categories      []Record `json:"categories"`
	FailedQueries   int      `json:"failed_queries,omitempty"`
}

// NewInventory assembles an inventory from flattened records
func NewInventory(root string, maxDepth int, records []Record, updated time.Time) *Inventory {
	if records == nil {
		records = []Record{}
	}
	return &Inventory{
		Updated:         FormatTimestamp(updated),
		RootCategory:    root,
		TotalCategories: len(records),
		MaxDepth:        maxDepth,
		Categories:      records,
	}
}

// TotalFiles returns the sum of the level 1 totals, i.e. every file under the root
// excluding the root's own files.
func (inv *Inventory) TotalFiles() int {
	total := 0
	for _, r := range inv.Categories {
		if r.Level == 1 {
			total += r.Files
		}
	}
	return total
}

// Find returns the position of the named record, or -1
func (inv *Inventory) Find(name string) int {
	for i, r := range inv.Categories {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Subtree returns the named record followed by all of its descendants
func (inv *Inventory) Subtree(name string) []Record {
	start := inv.Find(name)
	if start < 0 {
		return nil
	}
	level := inv.Categories[start].Level
	end := start + 1
	for end < len(inv.Categories) && inv.Categories[end].Level > level {
		end++
	}
	return inv.Categories[start:end]
}

// RunSummary describes a run recorded in the history store
type RunSummary struct {
	ID              int64
	RootCategory    string
	MaxDepth        int
	Updated         string
	TotalCategories int
	FailedQueries   int
	OutputPath      string
	Duration        time.Duration
}

// BuildStats holds counters from one tree build
type BuildStats struct {
	CategoriesVisited int
	SubcatQueries     int
	FileCountQueries  int
	FailedQueries     int
	Duration          time.Duration
}

// timestampLayout mirrors ISO-8601 with microseconds and a Z suffix
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTimestamp renders t in UTC for the inventory's updated field
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
