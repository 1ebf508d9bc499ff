package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chaofiber/ai-news-bot/internal/config"
	"github.com/chaofiber/ai-news-bot/internal/digest"
	"github.com/chaofiber/ai-news-bot/internal/enricher"
	"github.com/chaofiber/ai-news-bot/internal/relevance"
	"github.com/chaofiber/ai-news-bot/internal/store"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Run the full digest pipeline",
	Long: `Digest fetches recent articles, summarizes them with AI, scores them
against your interests, stores the results, and emails the digest.

Summarization needs GEMINI_API_KEY; email delivery needs EMAIL_PASSWORD
and a configured [email] section. Both steps are skipped gracefully when
not configured.

Examples:
  newsbot digest                   # Full pipeline
  newsbot digest --web             # Scrape listing pages instead of RSS
  newsbot digest --hours=48        # Look back 48 hours
  newsbot digest --no-enrich       # Skip AI summaries
  newsbot digest --no-email        # Produce the digest without sending it`,
	RunE: runDigest,
}

var (
	digestHours    int
	digestWeb      bool
	digestNoEnrich bool
	digestNoEmail  bool
	digestSaveDir  string
)

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().IntVar(&digestHours, "hours", 0, "Hours to look back (default: from config)")
	digestCmd.Flags().BoolVar(&digestWeb, "web", false, "Scrape listing pages instead of the RSS feed")
	digestCmd.Flags().BoolVar(&digestNoEnrich, "no-enrich", false, "Skip AI summarization")
	digestCmd.Flags().BoolVar(&digestNoEmail, "no-email", false, "Skip email delivery")
	digestCmd.Flags().StringVar(&digestSaveDir, "save-dir", "data", "Directory for dated digest JSON artifacts (empty to disable)")
}

// digestOptions configures one pipeline run
type digestOptions struct {
	Hours    int
	Web      bool
	NoEnrich bool
	NoEmail  bool
	SaveDir  string
}

// digestResult summarizes one pipeline run
type digestResult struct {
	Fetched   int
	Relevant  int
	EmailSent bool
	Artifact  string
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	result, err := runDigestPipeline(cmd.Context(), cfg, digestOptions{
		Hours:    digestHours,
		Web:      digestWeb,
		NoEnrich: digestNoEnrich,
		NoEmail:  digestNoEmail,
		SaveDir:  digestSaveDir,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Digest complete:")
	fmt.Printf("  Articles fetched:  %d\n", result.Fetched)
	fmt.Printf("  Relevant articles: %d\n", result.Relevant)
	if result.Artifact != "" {
		fmt.Printf("  Saved to:          %s\n", result.Artifact)
	}
	if result.EmailSent {
		fmt.Println("  Email sent")
	}
	return nil
}

// runDigestPipeline executes fetch, enrich, score, store, save, and send.
// It is shared by the digest and serve commands.
func runDigestPipeline(ctx context.Context, cfg *config.Config, opts digestOptions) (*digestResult, error) {
	now := time.Now()
	result := &digestResult{}

	// Fetch
	fmt.Println("Fetching articles...")
	articles, err := fetchArticles(ctx, cfg, opts.Hours, 0, opts.Web)
	if err != nil {
		return nil, err
	}
	result.Fetched = len(articles)

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	links := make([]string, len(articles))
	for i, a := range articles {
		links[i] = a.Link
	}
	seen, err := db.SeenLinks(ctx, links)
	if err != nil {
		return nil, fmt.Errorf("failed to check seen links: %w", err)
	}
	fmt.Printf("Fetched %d articles (%d new)\n", len(articles), len(articles)-len(seen))

	if len(articles) == 0 {
		return result, nil
	}

	// Enrich
	apiKey := os.Getenv("GEMINI_API_KEY")
	switch {
	case opts.NoEnrich:
		fmt.Println("AI summaries: skipped (--no-enrich flag)")
	case apiKey == "":
		fmt.Println("AI summaries: skipped (GEMINI_API_KEY not set)")
	default:
		fmt.Printf("Summarizing %d articles...\n", len(articles))
		g := enricher.NewGemini(cfg.Enricher, apiKey)

		terminal := NewTerminal()
		articles = g.EnrichBatch(ctx, articles, func(current, total int) {
			terminal.ClearLine()
			msg := fmt.Sprintf("Summarizing: %d/%d", current, total)
			if terminal.IsTerminal {
				fmt.Print(msg)
				terminal.Flush()
			} else if current%10 == 0 || current == total {
				fmt.Println(msg)
			}
		})
		terminal.ClearLine()
		if terminal.IsTerminal {
			fmt.Println()
		}
	}

	// Score
	engine, err := relevance.NewEngine(cfg.Interests, cfg.Excludes, cfg.Scoring)
	if err != nil {
		return nil, err
	}
	ranked := engine.Rank(articles)
	result.Relevant = countRelevant(ranked)
	fmt.Printf("Found %d relevant articles (threshold %.1f)\n", result.Relevant, engine.Threshold())

	// Store
	digestDate := now.Format("2006-01-02")
	if err := db.SaveScored(ctx, digestDate, ranked); err != nil {
		return nil, fmt.Errorf("failed to store articles: %w", err)
	}

	// Save dated artifact
	if opts.SaveDir != "" {
		artifact := filepath.Join(opts.SaveDir, fmt.Sprintf("daily_digest_%s.json", now.Format("20060102")))
		if err := saveArticlesJSON(artifact, ranked); err != nil {
			return nil, err
		}
		result.Artifact = artifact
	}

	// Send email
	d := digest.Build(ranked, now)
	password := os.Getenv("EMAIL_PASSWORD")
	switch {
	case opts.NoEmail:
		fmt.Println("Email: skipped (--no-email flag)")
	case !cfg.Email.Configured():
		fmt.Println("Email: skipped (sender or recipient not configured)")
	case password == "":
		fmt.Println("Email: skipped (EMAIL_PASSWORD not set)")
	default:
		sender := digest.NewSender(cfg.Email, password)
		if err := sender.Send(d); err != nil {
			return nil, err
		}
		result.EmailSent = true
		fmt.Printf("Email sent to %s\n", cfg.Email.Recipient)
	}

	// Record the run
	if err := db.RecordDigestRun(ctx, &store.DigestRun{
		DigestDate:       digestDate,
		ArticlesFound:    result.Fetched,
		ArticlesRelevant: result.Relevant,
		EmailSent:        result.EmailSent,
	}); err != nil {
		return nil, fmt.Errorf("failed to record digest run: %w", err)
	}

	// Show top picks
	if top := d.High; len(top) > 0 {
		fmt.Println()
		fmt.Println("Top picks:")
		for i, a := range top {
			if i == 5 {
				break
			}
			fmt.Printf("  %d. [%.1f] %s\n", i+1, a.RelevanceScore, a.Title)
		}
	}

	return result, nil
}
