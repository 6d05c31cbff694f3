package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cattree/internal/adapters/editor"
	"cattree/internal/adapters/jsonfile"
	"cattree/internal/adapters/tui"
	"cattree/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path := flag.String("inventory", cfg.Output, "inventory JSON to browse")
	flag.Parse()
	if flag.NArg() > 0 {
		*path = flag.Arg(0)
	}

	// Initialize adapters
	reader := jsonfile.NewStore(*path)
	editorOpener := editor.NewOpener()

	// Create and run TUI app
	app := tui.NewApp(reader, *path, editorOpener)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
