package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/chaofiber/ai-news-bot/internal/article"
	"github.com/chaofiber/ai-news-bot/internal/relevance"
	"github.com/chaofiber/ai-news-bot/internal/store"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []relevance.Scored:
		return scoredTable(w, v)
	case []article.Article:
		return articlesTable(w, v)
	case *store.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func scoredTable(w io.Writer, articles []relevance.Scored) error {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tRELEVANT\tTOPICS\tTITLE\tPUBLISHED")
	fmt.Fprintln(tw, "-----\t--------\t------\t-----\t---------")

	for _, a := range articles {
		relevant := "no"
		if a.IsRelevant {
			relevant = "yes"
		}

		fmt.Fprintf(tw, "%.1f\t%s\t%s\t%s\t%s\n",
			a.RelevanceScore,
			relevant,
			truncate(topicList(a.RelevanceMatches), 30),
			truncate(a.Title, 50),
			a.Published,
		)
	}

	return tw.Flush()
}

func articlesTable(w io.Writer, articles []article.Article) error {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tPUBLISHED\tLINK")
	fmt.Fprintln(tw, "-----\t---------\t----")

	for _, a := range articles {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			truncate(a.Title, 50),
			a.Published,
			truncate(a.Link, 60),
		)
	}

	return tw.Flush()
}

// ScoredDetail prints one article with the full scoring explanation
func ScoredDetail(w io.Writer, a relevance.Scored) error {
	fmt.Fprintf(w, "Title:      %s\n", a.Title)
	fmt.Fprintf(w, "Link:       %s\n", a.Link)
	if a.Published != "" {
		fmt.Fprintf(w, "Published:  %s\n", a.Published)
	}
	fmt.Fprintf(w, "Score:      %.1f\n", a.RelevanceScore)
	fmt.Fprintf(w, "Relevant:   %v\n", a.IsRelevant)

	m := a.RelevanceMatches
	if len(m.MatchedTopics) > 0 {
		fmt.Fprintln(w, "\nMatched topics:")
		for _, t := range m.MatchedTopics {
			fmt.Fprintf(w, "  %-24s %-8s %+.1f\n", t.Topic, t.Priority, t.Score)
		}
	}
	if len(m.MatchedKeywords) > 0 {
		fmt.Fprintf(w, "\nKeywords:   %s\n", strings.Join(m.MatchedKeywords, ", "))
	}
	if len(m.ExcludeMatches) > 0 {
		fmt.Fprintf(w, "Excluded by: %s\n", strings.Join(m.ExcludeMatches, ", "))
	}
	if penalty, ok := m.ScoreBreakdown[relevance.ExclusionPenaltyKey]; ok {
		fmt.Fprintf(w, "Exclusion penalty: %.1f\n", penalty)
	}

	return nil
}

func statsTable(w io.Writer, s *store.Stats) error {
	fmt.Fprintln(w, "Article Storage Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total articles:      %d\n", s.TotalArticles)
	fmt.Fprintf(w, "Relevant articles:   %d\n", s.RelevantArticles)
	fmt.Fprintf(w, "Digest runs:         %d\n", s.DigestRuns)
	if s.LatestDigestDate != "" {
		fmt.Fprintf(w, "Latest digest:       %s\n", s.LatestDigestDate)
	}
	return nil
}

func topicList(m relevance.Matches) string {
	names := make([]string, 0, len(m.MatchedTopics))
	for _, t := range m.MatchedTopics {
		names = append(names, t.Topic)
	}
	return strings.Join(names, ",")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
