package enricher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// contentSelectors are tried in order against the article page; news sites
// wrap the body text in one of these containers.
var contentSelectors = []string{
	"div.article-content",
	"div.post-content",
	"article",
	"main",
}

const (
	defaultMaxContentChars = 5000
	fallbackParagraphs     = 20
	contentTimeout         = 10 * time.Second
	contentUserAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// ContentFetcher downloads an article page and extracts its readable text
type ContentFetcher struct {
	maxChars   int
	httpClient *http.Client
}

// NewContentFetcher creates a fetcher capping extracted text at maxChars
func NewContentFetcher(maxChars int) *ContentFetcher {
	if maxChars <= 0 {
		maxChars = defaultMaxContentChars
	}
	return &ContentFetcher{
		maxChars:   maxChars,
		httpClient: &http.Client{Timeout: contentTimeout},
	}
}

// Fetch returns the article's body text. It tries known content containers
// first, then any paragraphs on the page, then a readability extraction of
// the whole document.
func (f *ContentFetcher) Fetch(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", contentUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse article page: %w", err)
	}

	for _, selector := range contentSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		if text := paragraphText(container, -1); text != "" {
			return f.truncate(text), nil
		}
	}

	if text := paragraphText(doc.Selection, fallbackParagraphs); text != "" {
		return f.truncate(text), nil
	}

	// Last resort: a full readability pass, which re-fetches the page but
	// copes with markup none of the selectors understand.
	parsed, err := readability.FromURL(link, contentTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return f.truncate(strings.TrimSpace(parsed.TextContent)), nil
}

// paragraphText joins the text of up to limit <p> elements (limit < 0 means
// all of them)
func paragraphText(sel *goquery.Selection, limit int) string {
	var parts []string
	sel.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if limit >= 0 && i >= limit {
			return false
		}
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
		return true
	})
	return strings.Join(parts, " ")
}

func (f *ContentFetcher) truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= f.maxChars {
		return text
	}
	return string(runes[:f.maxChars])
}
