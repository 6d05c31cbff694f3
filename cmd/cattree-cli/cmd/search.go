package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cattree/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query> [inventory.json]",
	Short: "Search category names in an inventory",
	Long: `Search category names in a saved inventory.

Results are ranked by relevance using fuzzy matching.

Examples:
  cattree-cli search kirkwall
  cattree-cli search "st magnus" data/orkney-categories.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inv, err := loadInventory(ctx, args[1:])
		if err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(inv, args[0], searchLimit).Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[L%d] %s (%d files)\n", r.Level, r.Name, r.Files)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (0 for all)")
	searchCmd.Flags().Int64Var(&showFlags.runID, "run", 0, "search the inventory of a recorded run")
	rootCmd.AddCommand(searchCmd)
}
