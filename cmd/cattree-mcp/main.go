package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cattree/internal/adapters/jsonfile"
	mcpadapter "cattree/internal/adapters/mcp"
	"cattree/internal/adapters/sqlite"
	"cattree/internal/config"
	"cattree/internal/log"
)

func main() {
	// stdout carries the protocol
	logger := log.New(os.Stderr, false, false)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "err", err)
	}

	inventoryFlag := flag.String("inventory", cfg.Output, "inventory JSON served by the tools")
	historyFlag := flag.String("history", cfg.HistoryDB, "run history database")
	flag.Parse()

	cache, err := jsonfile.NewCache(jsonfile.DefaultCacheSize)
	if err != nil {
		logger.Fatal("create cache", "err", err)
	}

	mcpServer := server.NewMCPServer(
		"cattree-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterInventoryTools(mcpServer, cache.Reader(*inventoryFlag))

	if cfg.History {
		historyPath, err := config.ExpandPath(*historyFlag)
		if err != nil {
			logger.Fatal("history path", "err", err)
		}
		history, err := sqlite.Open(historyPath)
		if err != nil {
			logger.Warn("run history unavailable", "err", err)
		} else {
			defer history.Close()
			mcpadapter.RegisterHistoryTools(mcpServer, history)
		}
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("cattree-mcp", "err", err)
		os.Exit(1)
	}
}
