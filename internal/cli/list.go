package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaofiber/ai-news-bot/internal/config"
	"github.com/chaofiber/ai-news-bot/internal/output"
	"github.com/chaofiber/ai-news-bot/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored articles",
	Long: `List previously scored articles from the local database, highest
score first.

Examples:
  newsbot list                     # List all stored articles
  newsbot list --relevant          # Only articles above the threshold
  newsbot list --min-score=10      # Only high scorers
  newsbot list --date=2026-08-29   # Articles from one digest date
  newsbot list -o json             # Output as JSON`,
	RunE: runList,
}

var (
	listRelevant bool
	listMinScore float64
	listDate     string
	listLimit    int
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listRelevant, "relevant", false, "Only show articles at or above the relevance threshold")
	listCmd.Flags().Float64Var(&listMinScore, "min-score", 0, "Minimum relevance score")
	listCmd.Flags().StringVar(&listDate, "date", "", "Filter by digest date (YYYY-MM-DD)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := store.ListOptions{
		DigestDate:   listDate,
		RelevantOnly: listRelevant,
		Limit:        listLimit,
	}
	if cmd.Flags().Changed("min-score") {
		opts.MinScore = &listMinScore
	}

	articles, err := db.ListScored(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	return output.Output(outputFmt, articles)
}
