package enricher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chaofiber/ai-news-bot/internal/article"
	"github.com/chaofiber/ai-news-bot/internal/config"
)

// contentUnavailable is the placeholder summary used when the article body
// could not be fetched; downstream scoring still sees the title.
const contentUnavailable = "Content not available"

// Gemini enriches articles through the Gemini generateContent API
type Gemini struct {
	endpoint    string
	model       string
	apiKey      string
	concurrency int
	httpClient  *http.Client
	content     *ContentFetcher
}

// NewGemini creates a Gemini enricher. The API key comes from the caller
// (typically the GEMINI_API_KEY environment variable).
func NewGemini(cfg config.EnricherConfig, apiKey string) *Gemini {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Gemini{
		endpoint:    strings.TrimSuffix(cfg.Endpoint, "/"),
		model:       cfg.Model,
		apiKey:      apiKey,
		concurrency: concurrency,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // Long timeout for LLM inference
		},
		content: NewContentFetcher(cfg.MaxContentChars),
	}
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// summaryPayload is the JSON structure the prompt asks the model for
type summaryPayload struct {
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"key_points"`
	Significance string   `json:"significance"`
}

// Enrich fetches the full article text, asks the model for a structured
// summary, and returns a copy of the article with the generated fields set
func (g *Gemini) Enrich(ctx context.Context, a article.Article) (article.Article, error) {
	content, err := g.content.Fetch(ctx, a.Link)
	if err != nil || content == "" {
		enriched := a
		enriched.Summary = contentUnavailable
		enriched.KeyPoints = []string{}
		return enriched, nil
	}

	text, err := g.generate(ctx, buildPrompt(a, content))
	if err != nil {
		return a, err
	}

	payload := parseSummaryJSON(text)
	enriched := a
	enriched.Summary = payload.Summary
	enriched.KeyPoints = payload.KeyPoints
	enriched.Significance = payload.Significance
	return enriched, nil
}

// EnrichBatch enriches articles in parallel with bounded concurrency.
// Articles whose enrichment fails pass through unchanged so they can still
// be scored on their raw fields.
func (g *Gemini) EnrichBatch(ctx context.Context, articles []article.Article, progress ProgressCallback) []article.Article {
	results := make([]article.Article, len(articles))
	var enrichedCount int64

	total := len(articles)
	if progress != nil {
		progress(0, total)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, g.concurrency)

	for i, a := range articles {
		wg.Add(1)
		go func(index int, raw article.Article) {
			defer wg.Done()

			// Acquire semaphore
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[index] = raw
				return
			}

			enriched, err := g.Enrich(ctx, raw)
			if err != nil {
				enriched = raw
			}
			results[index] = enriched

			if progress != nil {
				current := int(atomic.AddInt64(&enrichedCount, 1))
				progress(current, total)
			}
		}(i, a)
	}

	wg.Wait()
	return results
}

// generate sends one prompt and returns the model's text
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty generation response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(a article.Article, content string) string {
	return fmt.Sprintf(`Please provide a comprehensive summary of the following tech news article.

Title: %s
Published: %s

Article content:
%s

Please provide:
1. A 2-3 sentence executive summary
2. 3-5 key bullet points
3. Why this matters to the tech industry (1 sentence)

Format your response as JSON with the following structure:
{
  "summary": "Executive summary here",
  "key_points": ["point 1", "point 2", "point 3"],
  "significance": "Why this matters"
}`, a.Title, a.Published, content)
}

// parseSummaryJSON extracts the structured payload from the model's text,
// tolerating prose or code fences around the JSON object. When no object
// can be parsed, the raw text becomes the summary.
func parseSummaryJSON(text string) summaryPayload {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		var payload summaryPayload
		if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err == nil {
			return payload
		}
	}

	fallback := []rune(text)
	if len(fallback) > 300 {
		fallback = fallback[:300]
	}
	return summaryPayload{Summary: string(fallback), KeyPoints: []string{}}
}
