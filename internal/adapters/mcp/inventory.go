package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cattree/internal/application/commands"
	"cattree/internal/domain"
	"cattree/internal/ports"
)

// RegisterInventoryTools adds the read-only inventory tools to the MCP server.
// reader is consulted on every call so a fresh crawl is picked up.
func RegisterInventoryTools(s *server.MCPServer, reader ports.InventoryReader) {
	s.AddTool(summaryTool(), summaryHandler(reader))
	s.AddTool(treeTool(), treeHandler(reader))
	s.AddTool(subtreeTool(), subtreeHandler(reader))
	s.AddTool(searchTool(), searchHandler(reader))
}

// --- summary ---

func summaryTool() mcp.Tool {
	return mcp.NewTool("summary",
		mcp.WithDescription("Summarize the category inventory: root category, crawl time, depth bound, number of categories and files, and the largest top-level categories."),
		mcp.WithNumber("top",
			mcp.Description("Number of top-level categories to list (default 10)"),
		),
	)
}

func summaryHandler(reader ports.InventoryReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv, err := commands.NewLoadInventoryCommand(reader).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		top := req.GetInt("top", 10)

		var sb strings.Builder
		fmt.Fprintf(&sb, "Root: %s\n", inv.RootCategory)
		fmt.Fprintf(&sb, "Updated: %s\n", inv.Updated)
		fmt.Fprintf(&sb, "Max depth: %d\n", inv.MaxDepth)
		fmt.Fprintf(&sb, "Categories: %d\n", inv.TotalCategories)
		fmt.Fprintf(&sb, "Files below root: %d\n", inv.TotalFiles())
		if inv.FailedQueries > 0 {
			fmt.Fprintf(&sb, "Failed queries: %d (affected categories are marked incomplete)\n", inv.FailedQueries)
		}

		largest := topLevel(inv.Categories, top)
		if len(largest) > 0 {
			sb.WriteString("\nLargest top-level categories:\n")
			for _, r := range largest {
				sb.WriteString("  " + formatRecord(r) + "\n")
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the category inventory as an indented tree with recursive file counts."),
		mcp.WithNumber("depth",
			mcp.Description("Deepest level to show (default: all levels)"),
		),
	)
}

func treeHandler(reader ports.InventoryReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv, err := commands.NewLoadInventoryCommand(reader).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		depth := req.GetInt("depth", 0)

		var shown []domain.Record
		for _, r := range inv.Categories {
			if depth <= 0 || r.Level <= depth {
				shown = append(shown, r)
			}
		}
		return formatTree(shown, 0)
	}
}

// --- subtree ---

func subtreeTool() mcp.Tool {
	return mcp.NewTool("subtree",
		mcp.WithDescription("Show one category and all of its descendants with recursive file counts."),
		mcp.WithString("category",
			mcp.Description("Category name, with or without the Category: prefix (e.g. Kirkwall)"),
			mcp.Required(),
		),
	)
}

func subtreeHandler(reader ports.InventoryReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("category", "")
		if name == "" {
			return toolError(fmt.Errorf("category is required"))
		}

		inv, err := commands.NewLoadInventoryCommand(reader).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		records, err := commands.NewSubtreeCommand(inv, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatTree(records, records[0].Level-1)
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy-search category names in the inventory. Returns matches best first with level and file count."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)"),
		),
	)
}

func searchHandler(reader ports.InventoryReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		inv, err := commands.NewLoadInventoryCommand(reader).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		results, err := commands.NewSearchCommand(inv, query, req.GetInt("limit", 20)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}
		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "L%d  %s\n", r.Level, formatRecord(r.Record))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
