package article

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/araddon/dateparse"
)

// PublishedFormat is the timestamp layout used in feed output and JSON artifacts.
const PublishedFormat = "2006-01-02 15:04 UTC"

// Article is a single news item flowing through the pipeline.
//
// Title, Link, Published, and Excerpt come from the feed. Summary, KeyPoints,
// and Significance are filled in by the enricher and may be empty when
// enrichment was skipped or failed; scoring tolerates their absence.
type Article struct {
	Title        string   `json:"title"`
	Link         string   `json:"link"`
	Published    string   `json:"published,omitempty"`
	Excerpt      string   `json:"summary,omitempty"`
	Summary      string   `json:"ai_summary,omitempty"`
	KeyPoints    []string `json:"key_points,omitempty"`
	Significance string   `json:"significance,omitempty"`
}

// PublishedTime parses the published timestamp, tolerating the common
// formats seen in feeds and saved artifacts.
func (a Article) PublishedTime() (time.Time, error) {
	if a.Published == "" {
		return time.Time{}, fmt.Errorf("article %q has no published timestamp", a.Title)
	}
	return dateparse.ParseAny(a.Published)
}

// DecodeList reads a JSON array of articles. Absent fields decode to their
// zero values; only malformed JSON is an error.
func DecodeList(r io.Reader) ([]Article, error) {
	var articles []Article
	if err := json.NewDecoder(r).Decode(&articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}
