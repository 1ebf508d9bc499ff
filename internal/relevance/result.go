package relevance

import "github.com/chaofiber/ai-news-bot/internal/article"

// ExclusionPenaltyKey is the reserved score_breakdown key recording the
// accumulated exclusion penalty when the veto fires.
const ExclusionPenaltyKey = "exclusion_penalty"

// TopicMatch records one interest topic that contributed to an article's
// score. Entries appear in configuration order.
type TopicMatch struct {
	Topic    string  `json:"topic"`
	Priority string  `json:"priority"`
	Score    float64 `json:"score"`
}

// Matches is the structured breakdown attached to a scored article
type Matches struct {
	MatchedTopics   []TopicMatch       `json:"matched_topics"`
	MatchedKeywords []string           `json:"matched_keywords"`
	ExcludeMatches  []string           `json:"exclude_matches"`
	ScoreBreakdown  map[string]float64 `json:"score_breakdown"`
}

func newMatches() Matches {
	return Matches{
		MatchedTopics:   []TopicMatch{},
		MatchedKeywords: []string{},
		ExcludeMatches:  []string{},
		ScoreBreakdown:  map[string]float64{},
	}
}

// Result pairs an article's aggregate score with its match breakdown
type Result struct {
	Score   float64
	Matches Matches
}

// Scored is an article annotated with relevance data. The source article is
// embedded unchanged; scoring never mutates its input.
type Scored struct {
	article.Article
	RelevanceScore   float64 `json:"relevance_score"`
	RelevanceMatches Matches `json:"relevance_matches"`
	IsRelevant       bool    `json:"is_relevant"`
}
