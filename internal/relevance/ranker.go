package relevance

import (
	"sort"

	"github.com/chaofiber/ai-news-bot/internal/article"
)

// Rank scores every article independently, annotates it with its score,
// match breakdown, and relevance flag, and returns a highest-first ordering.
// The sort is stable: equal scores keep their input order, so a fixed-size
// prefix of the result is deterministic across runs. No article is dropped.
func (e *Engine) Rank(articles []article.Article) []Scored {
	scored := make([]Scored, 0, len(articles))
	for _, a := range articles {
		result := e.Score(a)
		scored = append(scored, Scored{
			Article:          a,
			RelevanceScore:   result.Score,
			RelevanceMatches: result.Matches,
			IsRelevant:       result.Score >= e.scoring.MinimumScoreThreshold,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	return scored
}

// Relevant ranks the articles and keeps only those at or above the minimum
// score threshold, preserving rank order. Near misses are dropped here and
// not in Rank, so callers tuning the threshold can still inspect them.
func (e *Engine) Relevant(articles []article.Article) []Scored {
	var relevant []Scored
	for _, s := range e.Rank(articles) {
		if s.IsRelevant {
			relevant = append(relevant, s)
		}
	}
	return relevant
}

// Threshold returns the configured minimum relevance score
func (e *Engine) Threshold() float64 {
	return e.scoring.MinimumScoreThreshold
}
