package relevance

import (
	"fmt"
	"strings"

	"github.com/chaofiber/ai-news-bot/internal/article"
	"github.com/chaofiber/ai-news-bot/internal/config"
)

// Engine scores articles against compiled interest and exclusion topics.
// Matchers are compiled once at construction; the engine is immutable
// afterwards and safe for concurrent use.
type Engine struct {
	interests []topic
	excludes  []topic
	scoring   config.ScoringConfig
}

// NewEngine compiles the topic matchers and returns a ready engine. Topic
// iteration order follows configuration order, which fixes the order of
// matched_topics entries in every result.
func NewEngine(interests []config.InterestTopic, excludes []config.ExcludeTopic, scoring config.ScoringConfig) (*Engine, error) {
	e := &Engine{scoring: scoring}

	for _, it := range interests {
		if len(it.Keywords) == 0 {
			return nil, fmt.Errorf("%w: interest %q has no keywords", config.ErrInvalidConfig, it.Topic)
		}
		switch it.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			return nil, fmt.Errorf("%w: interest %q has unknown priority %q", config.ErrInvalidConfig, it.Topic, it.Priority)
		}
		pattern, err := compilePattern(it.Keywords)
		if err != nil {
			return nil, fmt.Errorf("%w: interest %q: %v", config.ErrInvalidConfig, it.Topic, err)
		}
		e.interests = append(e.interests, topic{name: it.Topic, priority: it.Priority, pattern: pattern})
	}

	for _, ex := range excludes {
		if len(ex.Keywords) == 0 {
			return nil, fmt.Errorf("%w: exclude topic %q has no keywords", config.ErrInvalidConfig, ex.Topic)
		}
		pattern, err := compilePattern(ex.Keywords)
		if err != nil {
			return nil, fmt.Errorf("%w: exclude topic %q: %v", config.ErrInvalidConfig, ex.Topic, err)
		}
		e.excludes = append(e.excludes, topic{name: ex.Topic, pattern: pattern})
	}

	return e, nil
}

// Score computes the relevance of a single article. It is a pure function of
// the article and the engine configuration: re-scoring the same article
// always yields an identical result, and the article is never modified.
func (e *Engine) Score(a article.Article) Result {
	score := 0.0
	matches := newMatches()

	// Exclusion pass over title + summary. A topic matching several of its
	// keywords still contributes the flat penalty once.
	excludable := a.Title + " " + a.Summary
	for _, ex := range e.excludes {
		if ex.pattern.MatchString(excludable) {
			matches.ExcludeMatches = append(matches.ExcludeMatches, ex.name)
			score += e.scoring.ExcludePenalty
		}
	}

	// An exclusion match vetoes interest scoring entirely; the article keeps
	// only the accumulated penalty. Tunable policy, not a law: a strong
	// interest match never offsets an exclusion.
	if score <= e.scoring.ExcludePenalty {
		matches.ScoreBreakdown[ExclusionPenaltyKey] = score
		return Result{Score: score, Matches: matches}
	}

	otherText := strings.Join(a.KeyPoints, " ") + " " + a.Significance
	for _, it := range e.interests {
		weight := e.priorityWeight(it.priority)
		topicScore := 0.0
		var topicKeywords []string

		if found := distinctMatches(it.pattern, a.Title); len(found) > 0 {
			topicScore += float64(len(found)) * weight * e.scoring.TitleMatchMultiplier
			topicKeywords = append(topicKeywords, found...)
		}
		if found := distinctMatches(it.pattern, a.Summary); len(found) > 0 {
			topicScore += float64(len(found)) * weight * e.scoring.SummaryMatchMultiplier
			topicKeywords = append(topicKeywords, found...)
		}
		if found := distinctMatches(it.pattern, otherText); len(found) > 0 {
			topicScore += float64(len(found)) * weight
			topicKeywords = append(topicKeywords, found...)
		}

		if len(topicKeywords) > 0 {
			matches.MatchedTopics = append(matches.MatchedTopics, TopicMatch{
				Topic:    it.name,
				Priority: it.priority,
				Score:    topicScore,
			})
			matches.MatchedKeywords = mergeKeywords(matches.MatchedKeywords, topicKeywords)
			matches.ScoreBreakdown[it.name] = topicScore
			score += topicScore
		}
	}

	return Result{Score: score, Matches: matches}
}

// priorityWeight maps a priority tier to its configured weight. Anything
// outside the known tiers falls back to a neutral weight of 1.
func (e *Engine) priorityWeight(priority string) float64 {
	switch priority {
	case PriorityHigh:
		return e.scoring.HighPriorityWeight
	case PriorityMedium:
		return e.scoring.MediumPriorityWeight
	case PriorityLow:
		return e.scoring.LowPriorityWeight
	default:
		return 1
	}
}

// mergeKeywords appends the newly found literals that are not already
// recorded, keeping first-seen order so results stay deterministic.
func mergeKeywords(into, found []string) []string {
	for _, kw := range found {
		if !containsString(into, kw) {
			into = append(into, kw)
		}
	}
	return into
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
