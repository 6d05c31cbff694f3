package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cattree/internal/adapters/jsonfile"
	"cattree/internal/application"
	"cattree/internal/application/commands"
	"cattree/internal/domain"
)

var showFlags struct {
	runID    int64
	category string
	depth    int
}

var showCmd = &cobra.Command{
	Use:   "show [inventory.json]",
	Short: "Print an inventory as an indented tree",
	Long: `Print a saved inventory as an indented tree with recursive file counts.

The inventory is read from the given file, the configured output path, or
with --run from the run history.

Examples:
  cattree-cli show
  cattree-cli show data/hoy.json --depth 2
  cattree-cli show --run 3 --category Kirkwall`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inv, err := loadInventory(ctx, args)
		if err != nil {
			return err
		}

		records := inv.Categories
		base := 0
		if showFlags.category != "" {
			records, err = commands.NewSubtreeCommand(inv, showFlags.category).Execute(ctx)
			if err != nil {
				return err
			}
			base = records[0].Level - 1
		}

		fmt.Printf("%s  (updated %s, max depth %d)\n", inv.RootCategory, inv.Updated, inv.MaxDepth)
		printRecords(records, base, showFlags.depth)
		fmt.Printf("\n%d categories, %d files\n", inv.TotalCategories, inv.TotalFiles())
		return nil
	},
}

// loadInventory reads the inventory named by args, --run or the config
func loadInventory(ctx context.Context, args []string) (*domain.Inventory, error) {
	if showFlags.runID != 0 {
		store, err := openHistory()
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, application.ErrNoHistory
		}
		defer store.Close()
		return commands.NewLoadRunCommand(store, showFlags.runID).Execute(ctx)
	}

	path := cfg.Output
	if len(args) > 0 {
		path = args[0]
	}
	return commands.NewLoadInventoryCommand(jsonfile.NewStore(path)).Execute(ctx)
}

// printRecords prints records indented by level relative to base.
// depth limits the printed levels below base; 0 prints all.
func printRecords(records []domain.Record, base, depth int) {
	for _, r := range records {
		rel := r.Level - base
		if depth > 0 && rel > depth {
			continue
		}
		line := fmt.Sprintf("%s%s (%d)", strings.Repeat("  ", rel-1), r.Name, r.Files)
		if r.Incomplete {
			line += " [incomplete]"
		}
		fmt.Println(line)
	}
}

func init() {
	showCmd.Flags().Int64Var(&showFlags.runID, "run", 0, "show the inventory of a recorded run")
	showCmd.Flags().StringVarP(&showFlags.category, "category", "c", "", "only show this category and its descendants")
	showCmd.Flags().IntVarP(&showFlags.depth, "depth", "d", 0, "number of levels to show (0 for all)")
	rootCmd.AddCommand(showCmd)
}
