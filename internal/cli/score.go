package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaofiber/ai-news-bot/internal/article"
	"github.com/chaofiber/ai-news-bot/internal/config"
	"github.com/chaofiber/ai-news-bot/internal/output"
	"github.com/chaofiber/ai-news-bot/internal/relevance"
)

var scoreCmd = &cobra.Command{
	Use:   "score [file]",
	Short: "Score articles against your interests",
	Long: `Score articles from a JSON file (or stdin) against the configured
interest topics and print them ranked by relevance.

The input is a JSON array of articles as produced by 'newsbot fetch --save'.

Examples:
  newsbot score posts.json            # Score a saved fetch
  newsbot fetch -o json | newsbot score   # Pipe fetch output directly
  newsbot score posts.json --all      # Include articles below the threshold
  newsbot score posts.json --explain  # Show the full scoring breakdown
  newsbot score posts.json -o json    # Output as JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

var (
	scoreAll     bool
	scoreExplain bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolVar(&scoreAll, "all", false, "Show all articles, not just relevant ones")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Print the per-topic scoring breakdown")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	articles, err := article.DecodeList(in)
	if err != nil {
		return fmt.Errorf("failed to read articles: %w", err)
	}

	engine, err := relevance.NewEngine(cfg.Interests, cfg.Excludes, cfg.Scoring)
	if err != nil {
		return err
	}

	ranked := engine.Rank(articles)
	if !scoreAll {
		kept := ranked[:0]
		for _, s := range ranked {
			if s.IsRelevant {
				kept = append(kept, s)
			}
		}
		ranked = kept
	}

	fmt.Fprintf(os.Stderr, "Scored %d articles, %d at or above threshold %.1f\n",
		len(articles), countRelevant(ranked), engine.Threshold())

	if scoreExplain {
		for i, s := range ranked {
			if i > 0 {
				fmt.Println()
			}
			if err := output.ScoredDetail(os.Stdout, s); err != nil {
				return err
			}
		}
		return nil
	}

	return output.Output(outputFmt, ranked)
}

func countRelevant(scored []relevance.Scored) int {
	n := 0
	for _, s := range scored {
		if s.IsRelevant {
			n++
		}
	}
	return n
}
