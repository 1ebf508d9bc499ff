package feed

import (
	"context"
	"html"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/chaofiber/ai-news-bot/internal/article"
)

// userAgent is sent on every outbound request; some news sites reject the
// default Go client string.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxSummaryChars caps feed excerpts before they enter the pipeline
const maxSummaryChars = 300

// Source pulls recent articles from an upstream provider
type Source interface {
	// Name returns the source identifier
	Name() string

	// Fetch retrieves articles within the lookback window, newest first
	Fetch(ctx context.Context, opts FetchOptions) ([]article.Article, error)
}

// FetchOptions bounds a fetch
type FetchOptions struct {
	Lookback time.Duration // How far back to accept articles
	MaxPages int           // Page limit for paginated sources
}

// DefaultFetchOptions returns sensible defaults
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Lookback: 24 * time.Hour,
		MaxPages: 5,
	}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// CleanText strips HTML tags, unescapes entities, and collapses whitespace
func CleanText(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// truncateSummary shortens an excerpt to maxSummaryChars with an ellipsis
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSummaryChars {
		return s
	}
	return string(runes[:maxSummaryChars-3]) + "..."
}

// timed pairs an article with its parsed publication time for sorting
type timed struct {
	article article.Article
	at      time.Time
}

// newestFirst sorts in place, newest publication first. The sort is stable
// so same-timestamp articles keep their feed order.
func newestFirst(items []timed) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})
}

// collect strips the sort metadata back off
func collect(items []timed) []article.Article {
	articles := make([]article.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, item.article)
	}
	return articles
}
