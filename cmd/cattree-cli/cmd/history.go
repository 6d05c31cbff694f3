package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"cattree/internal/application/commands"
)

var historyFlags struct {
	root  string
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded crawl runs",
	Long: `List crawl runs recorded in the history database, newest first.

Examples:
  cattree-cli history
  cattree-cli history --root Hoy -n 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openHistory()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		runs, err := commands.NewHistoryCommand(store, historyFlags.root, historyFlags.limit).Execute(ctx)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}

		var rows [][]string
		for _, r := range runs {
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10),
				r.Updated,
				r.RootCategory,
				strconv.Itoa(r.MaxDepth),
				strconv.Itoa(r.TotalCategories),
				strconv.Itoa(r.FailedQueries),
				r.Duration.String(),
				r.OutputPath,
			})
		}

		t := table.New().
			Headers("RUN", "UPDATED", "ROOT", "DEPTH", "CATEGORIES", "FAILED", "DURATION", "OUTPUT").
			Rows(rows...).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false).
			BorderRow(false).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).PaddingRight(2)
				}
				return lipgloss.NewStyle().PaddingRight(2)
			})
		fmt.Println(t.String())
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlags.root, "root", "r", "", "only list runs of this root category")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of runs")
	rootCmd.AddCommand(historyCmd)
}
