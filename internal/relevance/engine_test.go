package relevance

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chaofiber/ai-news-bot/internal/article"
	"github.com/chaofiber/ai-news-bot/internal/config"
)

func testScoring() config.ScoringConfig {
	return config.ScoringConfig{
		ExcludePenalty:         -50,
		TitleMatchMultiplier:   2,
		SummaryMatchMultiplier: 1,
		HighPriorityWeight:     5,
		MediumPriorityWeight:   3,
		LowPriorityWeight:      1,
		MinimumScoreThreshold:  3,
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()

	interests := []config.InterestTopic{
		{Topic: "robotics", Priority: "high", Keywords: []string{"robot", "robotics"}},
		{Topic: "autonomous_vehicles", Priority: "medium", Keywords: []string{"waymo", "self-driving"}},
		{Topic: "startups", Priority: "low", Keywords: []string{"funding round"}},
	}
	excludes := []config.ExcludeTopic{
		{Topic: "celebrity", Keywords: []string{"kardashian"}},
		{Topic: "cryptocurrency", Keywords: []string{"bitcoin", "crypto"}},
	}

	e, err := NewEngine(interests, excludes, testScoring())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestScore_TitleMatch(t *testing.T) {
	e := testEngine(t)

	result := e.Score(article.Article{Title: "New robot unveiled"})

	// 1 distinct title match x high weight 5 x title multiplier 2
	if result.Score != 10 {
		t.Errorf("Score = %v, want 10", result.Score)
	}
	if len(result.Matches.MatchedTopics) != 1 {
		t.Fatalf("expected 1 matched topic, got %d", len(result.Matches.MatchedTopics))
	}
	tm := result.Matches.MatchedTopics[0]
	if tm.Topic != "robotics" || tm.Priority != "high" || tm.Score != 10 {
		t.Errorf("unexpected topic match: %+v", tm)
	}
	if result.Matches.ScoreBreakdown["robotics"] != 10 {
		t.Errorf("ScoreBreakdown[robotics] = %v, want 10", result.Matches.ScoreBreakdown["robotics"])
	}
}

func TestScore_ExclusionVeto(t *testing.T) {
	e := testEngine(t)

	// The interest keywords in the title must not offset the exclusion.
	result := e.Score(article.Article{Title: "Kardashian launches robot startup"})

	if result.Score != -50 {
		t.Errorf("Score = %v, want -50", result.Score)
	}
	if len(result.Matches.MatchedTopics) != 0 {
		t.Errorf("expected no matched topics, got %v", result.Matches.MatchedTopics)
	}
	if got := result.Matches.ExcludeMatches; len(got) != 1 || got[0] != "celebrity" {
		t.Errorf("ExcludeMatches = %v, want [celebrity]", got)
	}
	if result.Matches.ScoreBreakdown[ExclusionPenaltyKey] != -50 {
		t.Errorf("ScoreBreakdown[%s] = %v, want -50", ExclusionPenaltyKey, result.Matches.ScoreBreakdown[ExclusionPenaltyKey])
	}
}

func TestScore_MultipleExclusions(t *testing.T) {
	e := testEngine(t)

	result := e.Score(article.Article{Title: "Kardashian backs bitcoin venture"})

	if result.Score != -100 {
		t.Errorf("Score = %v, want -100", result.Score)
	}
	if len(result.Matches.ExcludeMatches) != 2 {
		t.Errorf("ExcludeMatches = %v, want two entries", result.Matches.ExcludeMatches)
	}
	if result.Matches.ScoreBreakdown[ExclusionPenaltyKey] != -100 {
		t.Errorf("ScoreBreakdown[%s] = %v, want -100", ExclusionPenaltyKey, result.Matches.ScoreBreakdown[ExclusionPenaltyKey])
	}
}

func TestScore_WordBoundaries(t *testing.T) {
	interests := []config.InterestTopic{
		{Topic: "bots", Priority: "high", Keywords: []string{"bot"}},
	}
	e, err := NewEngine(interests, nil, testScoring())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	tests := []struct {
		name      string
		title     string
		wantMatch bool
	}{
		{name: "whole word", title: "the bot is back", wantMatch: true},
		{name: "inside another word", title: "advances in robotics", wantMatch: false},
		{name: "prefix of another word", title: "new botnet discovered", wantMatch: false},
		{name: "punctuation boundary", title: "meet bot, your assistant", wantMatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Score(article.Article{Title: tt.title})
			if got := result.Score > 0; got != tt.wantMatch {
				t.Errorf("Score(%q) = %v, wantMatch %v", tt.title, result.Score, tt.wantMatch)
			}
		})
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	e := testEngine(t)

	result := e.Score(article.Article{Title: "ROBOT wars return"})
	if result.Score != 10 {
		t.Errorf("Score = %v, want 10", result.Score)
	}
}

func TestScore_DistinctPerField(t *testing.T) {
	e := testEngine(t)

	once := e.Score(article.Article{Title: "robot"})
	thrice := e.Score(article.Article{Title: "robot robot robot"})

	if once.Score != thrice.Score {
		t.Errorf("repeated keyword changed score: once=%v thrice=%v", once.Score, thrice.Score)
	}
}

func TestScore_SameKeywordInTwoFields(t *testing.T) {
	e := testEngine(t)

	result := e.Score(article.Article{Title: "robot", Summary: "robot"})

	// Counts once per field: 1x5x2 for the title plus 1x5x1 for the summary.
	if result.Score != 15 {
		t.Errorf("Score = %v, want 15", result.Score)
	}
	if got := result.Matches.MatchedKeywords; len(got) != 1 || got[0] != "robot" {
		t.Errorf("MatchedKeywords = %v, want [robot]", got)
	}
}

func TestScore_PriorityOrdering(t *testing.T) {
	e := testEngine(t)

	high := e.Score(article.Article{Title: "robot"})
	medium := e.Score(article.Article{Title: "waymo"})
	low := e.Score(article.Article{Title: "funding round"})

	if !(high.Score > medium.Score && medium.Score > low.Score) {
		t.Errorf("priority ordering violated: high=%v medium=%v low=%v", high.Score, medium.Score, low.Score)
	}
}

func TestScore_FieldWeighting(t *testing.T) {
	e := testEngine(t)

	inTitle := e.Score(article.Article{Title: "robot", Summary: ""})
	inSummary := e.Score(article.Article{Title: "", Summary: "robot"})
	inKeyPoints := e.Score(article.Article{KeyPoints: []string{"robot"}})

	if inTitle.Score <= inSummary.Score {
		t.Errorf("title match should outscore summary match: title=%v summary=%v", inTitle.Score, inSummary.Score)
	}
	// Key points and significance carry the bare priority weight.
	if inKeyPoints.Score != 5 {
		t.Errorf("key points score = %v, want 5", inKeyPoints.Score)
	}
}

func TestScore_SignificanceField(t *testing.T) {
	e := testEngine(t)

	result := e.Score(article.Article{Significance: "major step for self-driving"})
	if result.Score != 3 {
		t.Errorf("Score = %v, want 3", result.Score)
	}
}

func TestScore_MultipleTopics(t *testing.T) {
	e := testEngine(t)

	result := e.Score(article.Article{Title: "robot startup closes funding round"})

	// robotics 1x5x2 plus startups 1x1x2
	if result.Score != 12 {
		t.Errorf("Score = %v, want 12", result.Score)
	}
	if len(result.Matches.MatchedTopics) != 2 {
		t.Fatalf("expected 2 matched topics, got %d", len(result.Matches.MatchedTopics))
	}
	// Config order, not match-strength order.
	if result.Matches.MatchedTopics[0].Topic != "robotics" || result.Matches.MatchedTopics[1].Topic != "startups" {
		t.Errorf("matched topics out of config order: %+v", result.Matches.MatchedTopics)
	}
}

func TestScore_EmptyArticle(t *testing.T) {
	e := testEngine(t)

	result := e.Score(article.Article{})

	if result.Score != 0 {
		t.Errorf("Score = %v, want 0", result.Score)
	}
	if len(result.Matches.MatchedTopics) != 0 || len(result.Matches.ExcludeMatches) != 0 {
		t.Errorf("empty article produced matches: %+v", result.Matches)
	}
}

func TestScore_Deterministic(t *testing.T) {
	e := testEngine(t)
	a := article.Article{
		Title:        "Robot startup closes funding round",
		Summary:      "A robotics company raised a new funding round",
		KeyPoints:    []string{"self-driving ambitions", "robot fleet"},
		Significance: "Growing robotics market",
	}

	first := e.Score(a)
	second := e.Score(a)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScore_KeywordWithRegexMetachars(t *testing.T) {
	interests := []config.InterestTopic{
		{Topic: "ai", Priority: "high", Keywords: []string{"a.i"}},
	}
	e, err := NewEngine(interests, nil, testScoring())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	// The dot must match literally, not as a wildcard.
	if got := e.Score(article.Article{Title: "the a.i revolution"}); got.Score == 0 {
		t.Error("literal keyword did not match")
	}
	if got := e.Score(article.Article{Title: "rain and air"}); got.Score != 0 {
		t.Errorf("metacharacter was interpreted: score = %v", got.Score)
	}
}

func TestNewEngine_Errors(t *testing.T) {
	tests := []struct {
		name      string
		interests []config.InterestTopic
		excludes  []config.ExcludeTopic
	}{
		{
			name:      "interest without keywords",
			interests: []config.InterestTopic{{Topic: "empty", Priority: "high"}},
		},
		{
			name:      "unknown priority",
			interests: []config.InterestTopic{{Topic: "bad", Priority: "urgent", Keywords: []string{"x"}}},
		},
		{
			name:      "exclude without keywords",
			interests: []config.InterestTopic{{Topic: "ok", Priority: "low", Keywords: []string{"x"}}},
			excludes:  []config.ExcludeTopic{{Topic: "empty"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.interests, tt.excludes, testScoring())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
