package commands

import (
	"context"

	"github.com/sahilm/fuzzy"

	"cattree/internal/domain"
)

// MinQueryLength is the shortest query that triggers a search
const MinQueryLength = 2

// SearchResult is a matching record with its rank
type SearchResult struct {
	domain.Record
	Position       int   // index in the inventory
	Score          int   // higher is better
	MatchedIndexes []int // byte offsets of matched characters in Name
}

// SearchCommand fuzzy-matches category names of an inventory
type SearchCommand struct {
	inv   *domain.Inventory
	Query string
	Limit int // 0 means no limit
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(inv *domain.Inventory, query string, limit int) *SearchCommand {
	return &SearchCommand{
		inv:   inv,
		Query: query,
		Limit: limit,
	}
}

// recordSource implements fuzzy.Source over inventory records
type recordSource []domain.Record

func (s recordSource) String(i int) string { return s[i].Name }
func (s recordSource) Len() int            { return len(s) }

// Execute runs the search command and returns results, best first
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len([]rune(c.Query)) < MinQueryLength {
		return nil, nil
	}

	matches := fuzzy.FindFrom(c.Query, recordSource(c.inv.Categories))
	if c.Limit > 0 && len(matches) > c.Limit {
		matches = matches[:c.Limit]
	}

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, SearchResult{
			Record:         c.inv.Categories[m.Index],
			Position:       m.Index,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return results, nil
}
