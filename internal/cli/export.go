package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chaofiber/ai-news-bot/internal/config"
	"github.com/chaofiber/ai-news-bot/internal/relevance"
	"github.com/chaofiber/ai-news-bot/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored articles to CSV or JSON",
	Long: `Export scored articles to a file.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of scored article objects

Examples:
  newsbot export --format=csv > articles.csv
  newsbot export --format=json > articles.json
  newsbot export --format=csv --relevant > relevant.csv`,
	RunE: runExport,
}

var (
	exportFormat   string
	exportRelevant bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().BoolVar(&exportRelevant, "relevant", false, "Only export articles above the relevance threshold")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	articles, err := db.ListScored(ctx, store.ListOptions{RelevantOnly: exportRelevant})
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	switch exportFormat {
	case "csv":
		return exportCSV(articles)
	case "json":
		return exportJSON(articles)
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}
}

// ExportRow represents a flattened article row for export
type ExportRow struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Published string  `json:"published"`
	Score     float64 `json:"relevance_score"`
	Relevant  bool    `json:"is_relevant"`
	Topics    string  `json:"matched_topics"`
	Keywords  string  `json:"matched_keywords"`
	Summary   string  `json:"summary"`
}

func toExportRow(a relevance.Scored) ExportRow {
	topics := make([]string, 0, len(a.RelevanceMatches.MatchedTopics))
	for _, t := range a.RelevanceMatches.MatchedTopics {
		topics = append(topics, t.Topic)
	}

	return ExportRow{
		Title:     a.Title,
		Link:      a.Link,
		Published: a.Published,
		Score:     a.RelevanceScore,
		Relevant:  a.IsRelevant,
		Topics:    strings.Join(topics, ";"),
		Keywords:  strings.Join(a.RelevanceMatches.MatchedKeywords, ";"),
		Summary:   a.Summary,
	}
}

func exportCSV(articles []relevance.Scored) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{
		"title", "link", "published", "relevance_score", "is_relevant",
		"matched_topics", "matched_keywords", "summary",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range articles {
		row := toExportRow(a)
		record := []string{
			row.Title,
			row.Link,
			row.Published,
			fmt.Sprintf("%.1f", row.Score),
			fmt.Sprintf("%t", row.Relevant),
			row.Topics,
			row.Keywords,
			row.Summary,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func exportJSON(articles []relevance.Scored) error {
	rows := make([]ExportRow, len(articles))
	for i, a := range articles {
		rows[i] = toExportRow(a)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
