package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/araddon/dateparse"

	"github.com/chaofiber/ai-news-bot/internal/article"
)

// RSS fetches articles from an RSS 2.0 feed
type RSS struct {
	feedURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewRSS creates an RSS source for the given feed URL
func NewRSS(feedURL string, timeout time.Duration) *RSS {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RSS{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Name returns the source identifier
func (r *RSS) Name() string {
	return "rss"
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// Fetch downloads the feed and returns items inside the lookback window,
// newest first. Items whose publication date cannot be parsed are skipped.
func (r *RSS) Fetch(ctx context.Context, opts FetchOptions) ([]article.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	cutoff := r.now().Add(-opts.Lookback)

	var recent []timed
	for _, item := range feed.Channel.Items {
		published, err := dateparse.ParseAny(item.PubDate)
		if err != nil {
			continue
		}
		if published.Before(cutoff) {
			continue
		}

		recent = append(recent, timed{
			at: published,
			article: article.Article{
				Title:     CleanText(item.Title),
				Link:      item.Link,
				Published: published.UTC().Format(article.PublishedFormat),
				Excerpt:   truncateSummary(CleanText(item.Description)),
			},
		})
	}

	newestFirst(recent)
	return collect(recent), nil
}
