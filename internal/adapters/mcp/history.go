package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cattree/internal/application/commands"
	"cattree/internal/domain"
	"cattree/internal/ports"
)

// RegisterHistoryTools adds the run history tools to the MCP server
func RegisterHistoryTools(s *server.MCPServer, store ports.RunStore) {
	s.AddTool(runsTool(), runsHandler(store))
	s.AddTool(runTool(), runHandler(store))
}

// --- runs ---

func runsTool() mcp.Tool {
	return mcp.NewTool("runs",
		mcp.WithDescription("List recorded crawl runs, newest first."),
		mcp.WithString("root",
			mcp.Description("Only list runs of this root category"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs (default 20)"),
		),
	)
}

func runsHandler(store ports.RunStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runs, err := commands.NewHistoryCommand(store, req.GetString("root", ""), req.GetInt("limit", 20)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(runs, formatRun)
	}
}

// --- run ---

func runTool() mcp.Tool {
	return mcp.NewTool("run",
		mcp.WithDescription("Show the inventory recorded by a past run as an indented tree."),
		mcp.WithNumber("id",
			mcp.Description("Run ID as listed by the runs tool"),
			mcp.Required(),
		),
	)
}

func runHandler(store ports.RunStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetInt("id", 0)
		inv, err := commands.NewLoadRunCommand(store, int64(id)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		header := fmt.Sprintf("%s (depth %d, %s)\n", inv.RootCategory, inv.MaxDepth, inv.Updated)
		return mcp.NewToolResultText(header + renderTree(inv.Categories, 0)), nil
	}
}

func formatRun(r domain.RunSummary) string {
	line := fmt.Sprintf("#%d  %s  %s  depth %d  %d categories", r.ID, r.Updated, r.RootCategory, r.MaxDepth, r.TotalCategories)
	if r.FailedQueries > 0 {
		line += fmt.Sprintf("  %d failed", r.FailedQueries)
	}
	return line
}
