package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaofiber/ai-news-bot/internal/config"
	"github.com/chaofiber/ai-news-bot/internal/output"
	"github.com/chaofiber/ai-news-bot/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show storage statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := db.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if err := output.Output(outputFmt, stats); err != nil {
		return err
	}

	if outputFmt != "json" {
		if run, err := db.LastDigestRun(ctx); err == nil && run != nil {
			fmt.Printf("\nLast run: %s (%d found, %d relevant",
				run.CreatedAt.Format("Jan 02 15:04"), run.ArticlesFound, run.ArticlesRelevant)
			if run.EmailSent {
				fmt.Print(", email sent")
			}
			fmt.Println(")")
		}
	}

	return nil
}
