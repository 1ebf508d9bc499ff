package article

import (
	"strings"
	"testing"
	"time"
)

func TestDecodeList(t *testing.T) {
	input := `[
		{
			"title": "Robot news",
			"link": "https://example.com/robot",
			"published": "2026-08-29 08:00 UTC",
			"summary": "Feed excerpt",
			"ai_summary": "Generated summary",
			"key_points": ["one", "two"],
			"significance": "It matters"
		},
		{
			"title": "Bare article",
			"link": "https://example.com/bare"
		}
	]`

	articles, err := DecodeList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeList failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}

	full := articles[0]
	if full.Excerpt != "Feed excerpt" {
		t.Errorf(`"summary" should decode into Excerpt, got %q`, full.Excerpt)
	}
	if full.Summary != "Generated summary" {
		t.Errorf(`"ai_summary" should decode into Summary, got %q`, full.Summary)
	}
	if len(full.KeyPoints) != 2 {
		t.Errorf("KeyPoints = %v", full.KeyPoints)
	}

	// Absent fields are zero values, not errors.
	bare := articles[1]
	if bare.Published != "" || bare.Summary != "" || bare.KeyPoints != nil {
		t.Errorf("bare article should have zero-value optional fields: %+v", bare)
	}
}

func TestDecodeListMalformed(t *testing.T) {
	if _, err := DecodeList(strings.NewReader(`{"not": "an array"}`)); err == nil {
		t.Error("expected error for non-array input")
	}
	if _, err := DecodeList(strings.NewReader(`[{"title": `)); err == nil {
		t.Error("expected error for truncated input")
	}
}

func TestPublishedTime(t *testing.T) {
	tests := []struct {
		name      string
		published string
		want      time.Time
		wantErr   bool
	}{
		{
			name:      "pipeline format",
			published: "2026-08-29 08:00 UTC",
			want:      time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC),
		},
		{
			name:      "RFC1123 feed date",
			published: "Sat, 29 Aug 2026 08:00:00 +0000",
			want:      time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC),
		},
		{
			name:      "empty",
			published: "",
			wantErr:   true,
		},
		{
			name:      "garbage",
			published: "not a date",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Article{Title: "x", Published: tt.published}.PublishedTime()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("PublishedTime failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("PublishedTime = %v, want %v", got, tt.want)
			}
		})
	}
}
