package relevance

import (
	"regexp"
	"strings"
)

// Priority tiers for interest topics
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// topic is an interest or exclusion category with its compiled matcher.
// Exclusion topics carry no priority.
type topic struct {
	name     string
	priority string
	pattern  *regexp.Regexp
}

// compilePattern builds a single case-insensitive alternation matching any of
// the keywords as a whole word, so "bot" does not hit inside "robot". Regex
// metacharacters in keywords are escaped and matched literally.
func compilePattern(keywords []string) (*regexp.Regexp, error) {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
}

// distinctMatches returns the distinct literal strings the pattern finds in
// text, in first-seen order. Repeated occurrences of the same literal within
// one field count once.
func distinctMatches(pattern *regexp.Regexp, text string) []string {
	if text == "" {
		return nil
	}
	all := pattern.FindAllString(text, -1)
	if len(all) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(all))
	var distinct []string
	for _, match := range all {
		if seen[match] {
			continue
		}
		seen[match] = true
		distinct = append(distinct, match)
	}
	return distinct
}
