package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cattree/internal/adapters/commons"
	"cattree/internal/adapters/jsonfile"
	"cattree/internal/application/commands"
	"cattree/internal/log"
	"cattree/internal/ports"
)

var crawlFlags struct {
	root      string
	maxDepth  int
	output    string
	noHistory bool
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Fetch the category tree and write the inventory",
	Long: `Fetch the subcategory tree of the root category from Wikimedia Commons,
compute recursive file counts and write the flattened inventory as JSON.

Queries run one at a time with a short pause after each, so large trees
take a while. Press Ctrl+C to abort; nothing is written then.

Examples:
  cattree-cli crawl
  cattree-cli crawl --root "Mainland, Orkney" --max-depth 3
  cattree-cli crawl -o data/hoy.json --root Hoy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := log.FromContext(ctx)

		root := cfg.RootCategory
		if cmd.Flags().Changed("root") {
			root = crawlFlags.root
		}
		maxDepth := cfg.MaxDepth
		if cmd.Flags().Changed("max-depth") {
			maxDepth = crawlFlags.maxDepth
		}
		output := cfg.Output
		if cmd.Flags().Changed("output") {
			output = crawlFlags.output
		}

		var store ports.RunStore
		if !crawlFlags.noHistory {
			h, err := openHistory()
			if err != nil {
				logger.Warn("run history unavailable", "err", err)
			} else if h != nil {
				defer h.Close()
				store = h
			}
		}

		source := commons.NewClient(cfg.APIURL, cfg.Timeout,
			commons.WithUserAgent(cfg.UserAgent),
			commons.WithPageDelay(cfg.Delay),
		)
		crawl := commands.NewCrawlCommand(source, jsonfile.NewStore(output), store, root, maxDepth, cfg.Delay)

		banner := strings.Repeat("=", 60)
		fmt.Println(banner)
		fmt.Printf("Fetching %s categories from Wikimedia Commons\n", root)
		fmt.Println(banner)

		result, err := crawl.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(banner)
		fmt.Printf("Success! Found %d categories\n", result.Inventory.TotalCategories)
		fmt.Printf("Saved to: %s\n", result.Location)
		if n := result.Inventory.FailedQueries; n > 0 {
			fmt.Printf("Warning: %d queries failed; affected categories are marked incomplete\n", n)
		}
		if result.RunID > 0 {
			fmt.Printf("Recorded as run #%d\n", result.RunID)
		}
		fmt.Println(banner)

		logger.Debug("crawl finished",
			"visited", result.Stats.CategoriesVisited,
			"subcat_queries", result.Stats.SubcatQueries,
			"file_count_queries", result.Stats.FileCountQueries,
			"duration", result.Stats.Duration,
		)
		return nil
	},
}

func init() {
	crawlCmd.Flags().StringVarP(&crawlFlags.root, "root", "r", "", "root category (default from config)")
	crawlCmd.Flags().IntVarP(&crawlFlags.maxDepth, "max-depth", "d", 0, "deepest level to expand (default from config)")
	crawlCmd.Flags().StringVarP(&crawlFlags.output, "output", "o", "", "inventory JSON path (default from config)")
	crawlCmd.Flags().BoolVar(&crawlFlags.noHistory, "no-history", false, "do not record the run in the history database")
	rootCmd.AddCommand(crawlCmd)
}
