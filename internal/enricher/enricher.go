package enricher

import (
	"context"

	"github.com/chaofiber/ai-news-bot/internal/article"
)

// ProgressCallback is called with progress updates during batch enrichment
type ProgressCallback func(current, total int)

// Enricher augments raw articles with a generated summary, key points, and a
// significance statement
type Enricher interface {
	// Enrich returns a copy of the article with the generated fields set.
	// The input article is never modified.
	Enrich(ctx context.Context, a article.Article) (article.Article, error)
}
