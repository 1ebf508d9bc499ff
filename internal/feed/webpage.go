package feed

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/chaofiber/ai-news-bot/internal/article"
)

// datedURL matches the /YYYY/MM/DD/ segment most news sites put in article
// permalinks; it distinguishes article links from navigation.
var datedURL = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)

// Webpage scrapes article listings directly from a news site's paginated
// front pages. It finds more articles than the RSS feed, which only carries
// the latest handful.
type Webpage struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewWebpage creates a listing-page source rooted at baseURL
func NewWebpage(baseURL string, timeout time.Duration) *Webpage {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webpage{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Name returns the source identifier
func (w *Webpage) Name() string {
	return "webpage"
}

// Fetch walks listing pages up to opts.MaxPages, collecting articles inside
// the lookback window, newest first. A failure on the first page is an
// error; on later pages it ends the walk with what was already collected.
func (w *Webpage) Fetch(ctx context.Context, opts FetchOptions) ([]article.Article, error) {
	cutoff := w.now().Add(-opts.Lookback)
	seen := make(map[string]bool)

	var recent []timed
	for page := 1; page <= opts.MaxPages; page++ {
		doc, err := w.fetchPage(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}

		found := w.parseListing(doc, cutoff, seen)
		if len(found) == 0 {
			// Everything on this page is out of the window or duplicated;
			// older pages will not help.
			break
		}
		recent = append(recent, found...)
	}

	newestFirst(recent)
	return collect(recent), nil
}

func (w *Webpage) fetchPage(ctx context.Context, page int) (*goquery.Document, error) {
	url := w.baseURL
	if page > 1 {
		url = fmt.Sprintf("%s/page/%d/", w.baseURL, page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page %d returned status %d", page, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %d: %w", page, err)
	}
	return doc, nil
}

// parseListing extracts dated article links from headings on a listing page
func (w *Webpage) parseListing(doc *goquery.Document, cutoff time.Time, seen map[string]bool) []timed {
	var found []timed

	doc.Find("h2 a, h3 a").Each(func(_ int, sel *goquery.Selection) {
		link, ok := sel.Attr("href")
		if !ok || !datedURL.MatchString(link) || seen[link] {
			return
		}

		title := CleanText(sel.Text())
		if len(title) < 10 {
			return
		}

		published, ok := w.articleDate(sel, link)
		if !ok || published.Before(cutoff) {
			return
		}

		seen[link] = true
		found = append(found, timed{
			at: published,
			article: article.Article{
				Title:     title,
				Link:      link,
				Published: published.UTC().Format(article.PublishedFormat),
				Excerpt:   w.nearbySummary(sel, title),
			},
		})
	})

	return found
}

// articleDate prefers a <time datetime> element near the link, falling back
// to the date embedded in the permalink.
func (w *Webpage) articleDate(sel *goquery.Selection, link string) (time.Time, bool) {
	container := sel.Closest("article, li, div")
	if datetime, ok := container.Find("time").Attr("datetime"); ok {
		if t, err := dateparse.ParseAny(datetime); err == nil {
			return t, true
		}
	}

	groups := datedURL.FindStringSubmatch(link)
	if groups == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(groups[1])
	month, _ := strconv.Atoi(groups[2])
	day, _ := strconv.Atoi(groups[3])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// nearbySummary looks for descriptive text in the link's container
func (w *Webpage) nearbySummary(sel *goquery.Selection, title string) string {
	var summary string
	sel.Closest("article, li, div").Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := CleanText(p.Text())
		if len(text) > 50 && !strings.Contains(text, title) {
			summary = text
			return false
		}
		return true
	})
	return truncateSummary(summary)
}
