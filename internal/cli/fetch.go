package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chaofiber/ai-news-bot/internal/article"
	"github.com/chaofiber/ai-news-bot/internal/config"
	"github.com/chaofiber/ai-news-bot/internal/feed"
	"github.com/chaofiber/ai-news-bot/internal/output"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch recent articles",
	Long: `Fetch recent articles from the configured source without scoring them.

Examples:
  newsbot fetch                    # Fetch via RSS feed
  newsbot fetch --web              # Scrape listing pages instead of RSS
  newsbot fetch --hours=48         # Look back 48 hours
  newsbot fetch --save=posts.json  # Save raw articles to a file
  newsbot fetch -o json            # Output as JSON`,
	RunE: runFetch,
}

var (
	fetchHours int
	fetchPages int
	fetchWeb   bool
	fetchSave  string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVar(&fetchHours, "hours", 0, "Hours to look back (default: from config)")
	fetchCmd.Flags().IntVar(&fetchPages, "pages", 0, "Maximum listing pages to walk with --web")
	fetchCmd.Flags().BoolVar(&fetchWeb, "web", false, "Scrape listing pages instead of the RSS feed")
	fetchCmd.Flags().StringVar(&fetchSave, "save", "", "Save fetched articles to this JSON file")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	articles, err := fetchArticles(ctx, cfg, fetchHours, fetchPages, fetchWeb)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Fetched %d articles\n", len(articles))

	if fetchSave != "" {
		if err := saveArticlesJSON(fetchSave, articles); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", fetchSave)
	}

	return output.Output(outputFmt, articles)
}

// fetchArticles builds the configured source and fetches recent articles.
// Flag overrides of zero fall back to config values.
func fetchArticles(ctx context.Context, cfg *config.Config, hours, pages int, web bool) ([]article.Article, error) {
	opts := feed.FetchOptions{
		Lookback: cfg.Feed.Lookback(),
		MaxPages: cfg.Feed.MaxPages,
	}
	if hours > 0 {
		opts.Lookback = time.Duration(hours) * time.Hour
	}
	if pages > 0 {
		opts.MaxPages = pages
	}

	var src feed.Source
	if web {
		src = feed.NewWebpage(cfg.Feed.BaseURL, cfg.Feed.Timeout())
	} else {
		src = feed.NewRSS(cfg.Feed.URL, cfg.Feed.Timeout())
	}

	articles, err := src.Fetch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", src.Name(), err)
	}
	return articles, nil
}

func saveArticlesJSON(path string, data interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
