package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/chaofiber/ai-news-bot/internal/relevance"
)

// ListOptions contains options for listing stored articles
type ListOptions struct {
	DigestDate   string
	RelevantOnly bool
	MinScore     *float64
	Limit        int
}

// DigestRun records one completed digest pipeline run
type DigestRun struct {
	ID               string    `json:"id"`
	DigestDate       string    `json:"digest_date"`
	ArticlesFound    int       `json:"articles_found"`
	ArticlesRelevant int       `json:"articles_relevant"`
	EmailSent        bool      `json:"email_sent"`
	CreatedAt        time.Time `json:"created_at"`
}

// Stats represents aggregate storage statistics
type Stats struct {
	TotalArticles    int    `json:"total_articles"`
	RelevantArticles int    `json:"relevant_articles"`
	DigestRuns       int    `json:"digest_runs"`
	LatestDigestDate string `json:"latest_digest_date,omitempty"`
}

var articleColumns = []string{
	"id", "link", "title", "published", "excerpt", "summary",
	"key_points", "significance", "relevance_score", "is_relevant",
	"matches", "digest_date", "created_at",
}

// SaveScored upserts scored articles under the given digest date. An article
// seen on an earlier date keeps its original digest_date; everything else is
// refreshed from the new scoring pass.
func (s *Store) SaveScored(ctx context.Context, digestDate string, articles []relevance.Scored) error {
	return s.Transaction(ctx, func(tx *sql.Tx) error {
		for _, a := range articles {
			keyPoints, err := json.Marshal(a.KeyPoints)
			if err != nil {
				return fmt.Errorf("failed to marshal key points: %w", err)
			}
			matches, err := json.Marshal(a.RelevanceMatches)
			if err != nil {
				return fmt.Errorf("failed to marshal matches: %w", err)
			}

			query, args, err := sq.Insert("articles").
				Columns(articleColumns...).
				Values(
					uuid.New().String(), a.Link, a.Title, a.Published, a.Excerpt,
					a.Summary, string(keyPoints), a.Significance,
					a.RelevanceScore, a.IsRelevant, string(matches),
					digestDate, time.Now(),
				).
				Suffix(`ON CONFLICT(link) DO UPDATE SET
					title = excluded.title,
					published = excluded.published,
					excerpt = excluded.excerpt,
					summary = excluded.summary,
					key_points = excluded.key_points,
					significance = excluded.significance,
					relevance_score = excluded.relevance_score,
					is_relevant = excluded.is_relevant,
					matches = excluded.matches`).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to save article %q: %w", a.Link, err)
			}
		}
		return nil
	})
}

// ListScored retrieves stored articles ordered by score, highest first
func (s *Store) ListScored(ctx context.Context, opts ListOptions) ([]relevance.Scored, error) {
	builder := sq.Select(articleColumns...).
		From("articles").
		OrderBy("relevance_score DESC, created_at DESC")

	if opts.DigestDate != "" {
		builder = builder.Where(sq.Eq{"digest_date": opts.DigestDate})
	}
	if opts.RelevantOnly {
		builder = builder.Where(sq.Eq{"is_relevant": true})
	}
	if opts.MinScore != nil {
		builder = builder.Where(sq.GtOrEq{"relevance_score": *opts.MinScore})
	}
	if opts.Limit > 0 {
		builder = builder.Limit(uint64(opts.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []relevance.Scored
	for rows.Next() {
		a, err := scanScored(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// SeenLinks reports which of the given links already exist in storage
func (s *Store) SeenLinks(ctx context.Context, links []string) (map[string]bool, error) {
	seen := make(map[string]bool)
	if len(links) == 0 {
		return seen, nil
	}

	query, args, err := sq.Select("link").
		From("articles").
		Where(sq.Eq{"link": links}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, err
		}
		seen[link] = true
	}

	return seen, rows.Err()
}

// RecordDigestRun inserts a digest run record
func (s *Store) RecordDigestRun(ctx context.Context, run *DigestRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CreatedAt = time.Now()

	query, args, err := sq.Insert("digest_runs").
		Columns("id", "digest_date", "articles_found", "articles_relevant", "email_sent", "created_at").
		Values(run.ID, run.DigestDate, run.ArticlesFound, run.ArticlesRelevant, run.EmailSent, run.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	_, err = s.ExecContext(ctx, query, args...)
	return err
}

// LastDigestRun retrieves the most recent digest run, or nil if none exist
func (s *Store) LastDigestRun(ctx context.Context) (*DigestRun, error) {
	run := &DigestRun{}
	err := s.QueryRowContext(ctx, `
		SELECT id, digest_date, articles_found, articles_relevant, email_sent, created_at
		FROM digest_runs ORDER BY created_at DESC LIMIT 1
	`).Scan(
		&run.ID, &run.DigestDate, &run.ArticlesFound,
		&run.ArticlesRelevant, &run.EmailSent, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetStats retrieves aggregate statistics
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.QueryRowContext(ctx, `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN is_relevant THEN 1 ELSE 0 END), 0) as relevant
		FROM articles
	`).Scan(&stats.TotalArticles, &stats.RelevantArticles)
	if err != nil {
		return nil, err
	}

	err = s.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(digest_date), '') FROM digest_runs
	`).Scan(&stats.DigestRuns, &stats.LatestDigestDate)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func scanScored(rows *sql.Rows) (relevance.Scored, error) {
	var (
		a                  relevance.Scored
		id, digestDate     string
		keyPoints, matches string
		createdAt          time.Time
	)

	if err := rows.Scan(
		&id, &a.Link, &a.Title, &a.Published, &a.Excerpt, &a.Summary,
		&keyPoints, &a.Significance, &a.RelevanceScore, &a.IsRelevant,
		&matches, &digestDate, &createdAt,
	); err != nil {
		return a, err
	}

	if err := json.Unmarshal([]byte(keyPoints), &a.KeyPoints); err != nil {
		return a, fmt.Errorf("corrupt key points for %q: %w", a.Link, err)
	}
	if err := json.Unmarshal([]byte(matches), &a.RelevanceMatches); err != nil {
		return a, fmt.Errorf("corrupt match details for %q: %w", a.Link, err)
	}

	return a, nil
}
