package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaofiber/ai-news-bot/internal/article"
	"github.com/chaofiber/ai-news-bot/internal/relevance"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "newsbot-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func scoredArticle(link, title string, score float64, relevant bool) relevance.Scored {
	return relevance.Scored{
		Article: article.Article{
			Title:     title,
			Link:      link,
			Published: "2026-08-29 08:00 UTC",
			Excerpt:   "excerpt",
			Summary:   "summary",
			KeyPoints: []string{"point one"},
		},
		RelevanceScore: score,
		RelevanceMatches: relevance.Matches{
			MatchedTopics: []relevance.TopicMatch{
				{Topic: "robotics", Priority: "high", Score: score},
			},
			MatchedKeywords: []string{"robot"},
			ExcludeMatches:  []string{},
			ScoreBreakdown:  map[string]float64{"robotics": score},
		},
		IsRelevant: relevant,
	}
}

func TestOpen(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if s == nil {
		t.Fatal("expected non-nil store")
	}

	// Verify tables exist
	var count int
	err := s.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='articles'").Scan(&count)
	if err != nil {
		t.Fatalf("failed to query tables: %v", err)
	}
	if count != 1 {
		t.Errorf("expected articles table to exist")
	}
}

func TestSaveAndListScored(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	articles := []relevance.Scored{
		scoredArticle("https://example.com/a", "High scorer", 12, true),
		scoredArticle("https://example.com/b", "Low scorer", 1, false),
	}

	if err := s.SaveScored(ctx, "2026-08-29", articles); err != nil {
		t.Fatalf("SaveScored failed: %v", err)
	}

	stored, err := s.ListScored(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListScored failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(stored))
	}

	// Highest score first.
	if stored[0].Title != "High scorer" {
		t.Errorf("expected High scorer first, got %q", stored[0].Title)
	}

	got := stored[0]
	if got.RelevanceScore != 12 {
		t.Errorf("expected score 12, got %v", got.RelevanceScore)
	}
	if len(got.KeyPoints) != 1 || got.KeyPoints[0] != "point one" {
		t.Errorf("key points did not round-trip: %v", got.KeyPoints)
	}
	if len(got.RelevanceMatches.MatchedTopics) != 1 || got.RelevanceMatches.MatchedTopics[0].Topic != "robotics" {
		t.Errorf("match details did not round-trip: %+v", got.RelevanceMatches)
	}
}

func TestSaveScoredUpsert(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := scoredArticle("https://example.com/a", "Original title", 5, true)
	if err := s.SaveScored(ctx, "2026-08-28", []relevance.Scored{first}); err != nil {
		t.Fatalf("SaveScored failed: %v", err)
	}

	updated := scoredArticle("https://example.com/a", "Updated title", 8, true)
	if err := s.SaveScored(ctx, "2026-08-29", []relevance.Scored{updated}); err != nil {
		t.Fatalf("SaveScored upsert failed: %v", err)
	}

	stored, err := s.ListScored(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListScored failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 article after upsert, got %d", len(stored))
	}
	if stored[0].Title != "Updated title" {
		t.Errorf("expected updated title, got %q", stored[0].Title)
	}
	if stored[0].RelevanceScore != 8 {
		t.Errorf("expected updated score 8, got %v", stored[0].RelevanceScore)
	}

	// The first sighting keeps its digest date.
	byDate, err := s.ListScored(ctx, ListOptions{DigestDate: "2026-08-28"})
	if err != nil {
		t.Fatalf("ListScored by date failed: %v", err)
	}
	if len(byDate) != 1 {
		t.Errorf("expected article to stay under its original digest date, got %d", len(byDate))
	}
}

func TestListScoredFilters(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	articles := []relevance.Scored{
		scoredArticle("https://example.com/a", "A", 12, true),
		scoredArticle("https://example.com/b", "B", 4, true),
		scoredArticle("https://example.com/c", "C", 0, false),
	}
	if err := s.SaveScored(ctx, "2026-08-29", articles); err != nil {
		t.Fatalf("SaveScored failed: %v", err)
	}

	relevant, err := s.ListScored(ctx, ListOptions{RelevantOnly: true})
	if err != nil {
		t.Fatalf("ListScored failed: %v", err)
	}
	if len(relevant) != 2 {
		t.Errorf("expected 2 relevant articles, got %d", len(relevant))
	}

	minScore := 10.0
	high, err := s.ListScored(ctx, ListOptions{MinScore: &minScore})
	if err != nil {
		t.Fatalf("ListScored failed: %v", err)
	}
	if len(high) != 1 || high[0].Title != "A" {
		t.Errorf("expected only A above score 10, got %d results", len(high))
	}

	limited, err := s.ListScored(ctx, ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("ListScored failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 articles with limit, got %d", len(limited))
	}
}

func TestSeenLinks(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.SaveScored(ctx, "2026-08-29", []relevance.Scored{
		scoredArticle("https://example.com/known", "Known", 5, true),
	}); err != nil {
		t.Fatalf("SaveScored failed: %v", err)
	}

	seen, err := s.SeenLinks(ctx, []string{"https://example.com/known", "https://example.com/new"})
	if err != nil {
		t.Fatalf("SeenLinks failed: %v", err)
	}
	if !seen["https://example.com/known"] {
		t.Error("expected known link to be reported as seen")
	}
	if seen["https://example.com/new"] {
		t.Error("expected new link to be absent")
	}

	empty, err := s.SeenLinks(ctx, nil)
	if err != nil {
		t.Fatalf("SeenLinks with no links failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty map, got %v", empty)
	}
}

func TestDigestRuns(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	// No runs yet.
	run, err := s.LastDigestRun(ctx)
	if err != nil {
		t.Fatalf("LastDigestRun failed: %v", err)
	}
	if run != nil {
		t.Fatalf("expected nil before any runs, got %+v", run)
	}

	if err := s.RecordDigestRun(ctx, &DigestRun{
		DigestDate:       "2026-08-29",
		ArticlesFound:    10,
		ArticlesRelevant: 3,
		EmailSent:        true,
	}); err != nil {
		t.Fatalf("RecordDigestRun failed: %v", err)
	}

	run, err = s.LastDigestRun(ctx)
	if err != nil {
		t.Fatalf("LastDigestRun failed: %v", err)
	}
	if run == nil {
		t.Fatal("expected a digest run")
	}
	if run.ArticlesFound != 10 || run.ArticlesRelevant != 3 || !run.EmailSent {
		t.Errorf("digest run did not round-trip: %+v", run)
	}
}

func TestGetStats(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	// Stats on an empty store must not error.
	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats on empty store failed: %v", err)
	}
	if stats.TotalArticles != 0 || stats.RelevantArticles != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}

	if err := s.SaveScored(ctx, "2026-08-29", []relevance.Scored{
		scoredArticle("https://example.com/a", "A", 12, true),
		scoredArticle("https://example.com/b", "B", 0, false),
	}); err != nil {
		t.Fatalf("SaveScored failed: %v", err)
	}
	if err := s.RecordDigestRun(ctx, &DigestRun{DigestDate: "2026-08-29"}); err != nil {
		t.Fatalf("RecordDigestRun failed: %v", err)
	}

	stats, err = s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalArticles != 2 {
		t.Errorf("expected TotalArticles=2, got %d", stats.TotalArticles)
	}
	if stats.RelevantArticles != 1 {
		t.Errorf("expected RelevantArticles=1, got %d", stats.RelevantArticles)
	}
	if stats.LatestDigestDate != "2026-08-29" {
		t.Errorf("expected LatestDigestDate=2026-08-29, got %s", stats.LatestDigestDate)
	}
}
