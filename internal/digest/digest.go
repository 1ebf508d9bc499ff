package digest

import (
	"time"

	"github.com/chaofiber/ai-news-bot/internal/relevance"
)

// Score bands that split the digest into sections
const (
	highScoreFloor   = 10.0
	mediumScoreFloor = 5.0
)

// sectionCap limits how many articles each section shows
const sectionCap = 10

// Digest groups one day's relevant articles into priority sections
type Digest struct {
	Date   time.Time
	High   []relevance.Scored
	Medium []relevance.Scored
	Other  []relevance.Scored

	// Topics maps matched topic names to how many articles matched them,
	// across all relevant articles.
	Topics map[string]int
}

// Build assembles a digest from scored articles. Articles below the
// relevance threshold are ignored; the rest are split into sections by
// score band, preserving their ranked order.
func Build(articles []relevance.Scored, date time.Time) *Digest {
	d := &Digest{
		Date:   date,
		Topics: make(map[string]int),
	}

	for _, a := range articles {
		if !a.IsRelevant {
			continue
		}

		switch {
		case a.RelevanceScore >= highScoreFloor:
			d.High = append(d.High, a)
		case a.RelevanceScore >= mediumScoreFloor:
			d.Medium = append(d.Medium, a)
		default:
			d.Other = append(d.Other, a)
		}

		for _, m := range a.RelevanceMatches.MatchedTopics {
			d.Topics[m.Topic]++
		}
	}

	return d
}

// RelevantCount returns the number of articles across all sections
func (d *Digest) RelevantCount() int {
	return len(d.High) + len(d.Medium) + len(d.Other)
}

// Empty reports whether the digest has no articles to show
func (d *Digest) Empty() bool {
	return d.RelevantCount() == 0
}

// Subject returns the email subject line for this digest
func (d *Digest) Subject() string {
	return "Tech News Daily Digest - " + d.Date.Format("January 2, 2006")
}

func capped(articles []relevance.Scored) []relevance.Scored {
	if len(articles) > sectionCap {
		return articles[:sectionCap]
	}
	return articles
}
