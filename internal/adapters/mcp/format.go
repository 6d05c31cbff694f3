package mcp

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"cattree/internal/domain"
)

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatTree(records []domain.Record, base int) (*mcp.CallToolResult, error) {
	if len(records) == 0 {
		return mcp.NewToolResultText("No categories."), nil
	}
	return mcp.NewToolResultText(renderTree(records, base)), nil
}

// renderTree indents records by level relative to base
func renderTree(records []domain.Record, base int) string {
	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(strings.Repeat("  ", r.Level-base-1))
		sb.WriteString(formatRecord(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatRecord(r domain.Record) string {
	s := fmt.Sprintf("%s (%d files)", r.Name, r.Files)
	if r.Incomplete {
		s += " [incomplete]"
	}
	return s
}

// topLevel returns the n level 1 records with the most files
func topLevel(records []domain.Record, n int) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if r.Level == 1 {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Record) int {
		return cmp.Compare(b.Files, a.Files)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
