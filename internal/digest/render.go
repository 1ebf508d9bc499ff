package digest

import (
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/chaofiber/ai-news-bot/internal/relevance"
)

const maxSummaryChars = 300
const maxKeyPoints = 3

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
.container { background-color: white; border-radius: 10px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; margin: -30px -30px 30px -30px; text-align: center; }
h1 { margin: 0; font-size: 28px; font-weight: 600; }
.date { font-size: 14px; opacity: 0.9; margin-top: 5px; }
.stats { display: flex; justify-content: space-around; margin: 30px 0; padding: 20px; background-color: #f8f9fa; border-radius: 8px; }
.stat { text-align: center; }
.stat-number { font-size: 32px; font-weight: bold; color: #667eea; }
.stat-label { font-size: 12px; color: #666; text-transform: uppercase; letter-spacing: 1px; }
.section { margin: 30px 0; }
.section-title { font-size: 20px; font-weight: 600; color: #333; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 2px solid #667eea; }
.post { margin: 20px 0; padding: 20px; background-color: #f8f9fa; border-radius: 8px; border-left: 4px solid #667eea; }
.post-high { border-left-color: #28a745; background-color: #f0fdf4; }
.post-medium { border-left-color: #ffc107; background-color: #fffef0; }
.post-title { font-size: 18px; font-weight: 600; margin-bottom: 10px; color: #2c3e50; }
.post-meta { font-size: 12px; color: #666; margin-bottom: 10px; }
.post-summary { font-size: 14px; color: #555; margin: 10px 0; line-height: 1.5; }
.post-link { display: inline-block; margin-top: 10px; padding: 8px 16px; background-color: #667eea; color: white; text-decoration: none; border-radius: 5px; font-size: 14px; }
.topics { margin-top: 8px; }
.topic-badge { display: inline-block; padding: 4px 8px; margin: 2px; background-color: #e9ecef; color: #495057; border-radius: 4px; font-size: 12px; }
.footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #dee2e6; text-align: center; font-size: 12px; color: #666; }
.no-posts { text-align: center; padding: 40px; color: #666; font-style: italic; }
.score { display: inline-block; padding: 2px 8px; border-radius: 12px; font-size: 11px; font-weight: bold; margin-left: 10px; }
.score-high { background-color: #28a745; color: white; }
.score-medium { background-color: #ffc107; color: #333; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Tech News Daily Digest</h1>
    <div class="date">{{.Date.Format "January 2, 2006"}}</div>
  </div>

  <div class="stats">
    <div class="stat">
      <div class="stat-number">{{.RelevantCount}}</div>
      <div class="stat-label">Relevant Posts</div>
    </div>
    <div class="stat">
      <div class="stat-number">{{len .High}}</div>
      <div class="stat-label">High Priority</div>
    </div>
    <div class="stat">
      <div class="stat-number">{{len .Topics}}</div>
      <div class="stat-label">Topics Covered</div>
    </div>
  </div>

{{if .High}}
  <div class="section">
    <h2 class="section-title">High Priority Articles</h2>
{{range capped .High}}{{template "post" postView . "post-high"}}{{end}}
  </div>
{{end}}
{{if .Medium}}
  <div class="section">
    <h2 class="section-title">Worth Reading</h2>
{{range capped .Medium}}{{template "post" postView . "post-medium"}}{{end}}
  </div>
{{end}}
{{if .Other}}
  <div class="section">
    <h2 class="section-title">Other Articles</h2>
{{range capped .Other}}{{template "post" postView . ""}}{{end}}
  </div>
{{end}}
{{if .Empty}}
  <div class="no-posts">
    <p>No relevant articles found in today's feed.</p>
  </div>
{{end}}

  <div class="footer">
    <p>Generated by AI News Bot</p>
  </div>
</div>
</body>
</html>
{{define "post"}}
    <div class="post {{.Class}}">
      <div class="post-title">{{.Title}}<span class="score {{.ScoreClass}}">Score: {{printf "%.1f" .Score}}</span></div>
      <div class="post-meta">{{.Published}}</div>
{{if .Topics}}      <div class="topics">{{range .Topics}}<span class="topic-badge">{{.}}</span>{{end}}</div>
{{end}}{{if .Summary}}      <div class="post-summary">{{.Summary}}</div>
{{end}}{{if .KeyPoints}}      <div class="post-summary"><strong>Key Points:</strong><ul>{{range .KeyPoints}}<li>{{.}}</li>{{end}}</ul></div>
{{end}}      <a href="{{.Link}}" class="post-link" target="_blank">Read Full Article</a>
    </div>
{{end}}`

// postView is the per-article data handed to the post template
type postView struct {
	Title      string
	Link       string
	Published  string
	Score      float64
	ScoreClass string
	Class      string
	Topics     []string
	Summary    string
	KeyPoints  []string
}

func newPostView(a relevance.Scored, class string) postView {
	scoreClass := "score-medium"
	if a.RelevanceScore >= highScoreFloor {
		scoreClass = "score-high"
	}

	topics := make([]string, 0, len(a.RelevanceMatches.MatchedTopics))
	for _, m := range a.RelevanceMatches.MatchedTopics {
		topics = append(topics, topicLabel(m.Topic))
	}

	points := a.KeyPoints
	if len(points) > maxKeyPoints {
		points = points[:maxKeyPoints]
	}

	return postView{
		Title:      a.Title,
		Link:       a.Link,
		Published:  a.Published,
		Score:      a.RelevanceScore,
		ScoreClass: scoreClass,
		Class:      class,
		Topics:     topics,
		Summary:    truncate(a.Summary, maxSummaryChars),
		KeyPoints:  points,
	}
}

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"capped":   capped,
	"postView": newPostView,
}).Parse(htmlTemplate))

// RenderHTML renders the digest as a standalone HTML document
func (d *Digest) RenderHTML() (string, error) {
	var sb strings.Builder
	if err := digestTemplate.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return sb.String(), nil
}

// RenderText renders a plain text fallback for email clients without HTML
func (d *Digest) RenderText() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Tech News Daily Digest\n%s\n%s\n\n", d.Date.Format("January 2, 2006"), strings.Repeat("=", 50))
	fmt.Fprintf(&sb, "Found %d relevant articles for you today.\n\n", d.RelevantCount())

	all := append(append(append([]relevance.Scored{}, d.High...), d.Medium...), d.Other...)
	for i, a := range capped(all) {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, a.Title)
		fmt.Fprintf(&sb, "   Score: %.1f\n", a.RelevanceScore)
		fmt.Fprintf(&sb, "   Published: %s\n", a.Published)
		fmt.Fprintf(&sb, "   Link: %s\n", a.Link)
		if a.Summary != "" {
			fmt.Fprintf(&sb, "\n   %s\n", truncate(a.Summary, 200))
		}
		fmt.Fprintf(&sb, "\n%s\n", strings.Repeat("-", 40))
	}

	sb.WriteString("\nGenerated by AI News Bot\n")
	return sb.String()
}

// topicLabel turns a config topic name like "autonomous_vehicles" into a
// display label like "Autonomous Vehicles"
func topicLabel(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
