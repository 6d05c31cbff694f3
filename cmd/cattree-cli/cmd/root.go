package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cattree/internal/adapters/sqlite"
	"cattree/internal/config"
	"cattree/internal/log"
	"cattree/internal/ports"
)

var (
	verbose bool
	quiet   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cattree-cli",
	Short: "Inventory the subcategory tree of a Wikimedia Commons category",
	Long: `cattree-cli walks the subcategories of a Wikimedia Commons category
down to a depth bound and writes a flat inventory with recursive file counts.

Settings are read from ~/.config/cattree/config.toml, a .env file and
CATTREE_* environment variables; flags override them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger := log.New(os.Stderr, verbose, quiet)
		cmd.SetContext(log.WithLogger(cmd.Context(), logger))

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// openHistory opens the run history, or returns nil when it is disabled
func openHistory() (ports.RunStore, error) {
	if !cfg.History {
		return nil, nil
	}
	h, err := sqlite.Open(cfg.HistoryDB)
	if err != nil {
		return nil, err
	}
	return h, nil
}
