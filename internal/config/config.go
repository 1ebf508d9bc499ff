package config

import "time"

// Config represents the application configuration
type Config struct {
	Feed      FeedConfig      `toml:"feed"`
	Enricher  EnricherConfig  `toml:"enricher"`
	Email     EmailConfig     `toml:"email"`
	Database  DatabaseConfig  `toml:"database"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Interests []InterestTopic `toml:"interests"`
	Excludes  []ExcludeTopic  `toml:"exclude_topics"`
	Scoring   ScoringConfig   `toml:"scoring"`
}

// FeedConfig contains article source settings
type FeedConfig struct {
	URL            string `toml:"url"`
	BaseURL        string `toml:"base_url"`
	LookbackHours  int    `toml:"lookback_hours"`
	MaxPages       int    `toml:"max_pages"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Lookback returns the fetch window as a duration
func (f FeedConfig) Lookback() time.Duration {
	return time.Duration(f.LookbackHours) * time.Hour
}

// Timeout returns the HTTP timeout as a duration
func (f FeedConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// EnricherConfig contains LLM summarization settings
type EnricherConfig struct {
	Endpoint        string `toml:"endpoint"`
	Model           string `toml:"model"`
	MaxContentChars int    `toml:"max_content_chars"`
	Concurrency     int    `toml:"concurrency"`
	// API key is read from the GEMINI_API_KEY environment variable
}

// EmailConfig contains SMTP digest delivery settings
type EmailConfig struct {
	SMTPServer string `toml:"smtp_server"`
	SMTPPort   int    `toml:"smtp_port"`
	Sender     string `toml:"sender"`
	Recipient  string `toml:"recipient"`
	// Password is read from the EMAIL_PASSWORD environment variable
}

// Configured reports whether delivery settings are present
func (e EmailConfig) Configured() bool {
	return e.Sender != "" && e.Recipient != ""
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ScheduleConfig controls the serve command
type ScheduleConfig struct {
	Cron string `toml:"cron"`
}

// InterestTopic is a named interest category backed by a keyword set
type InterestTopic struct {
	Topic    string   `toml:"topic"`
	Priority string   `toml:"priority"`
	Keywords []string `toml:"keywords"`
}

// ExcludeTopic is a disqualifying category; a match anywhere in the title or
// summary applies the exclusion penalty
type ExcludeTopic struct {
	Topic    string   `toml:"topic"`
	Keywords []string `toml:"keywords"`
}

// ScoringConfig holds the numeric constants of the relevance model
type ScoringConfig struct {
	ExcludePenalty         float64 `toml:"exclude_penalty"`
	TitleMatchMultiplier   float64 `toml:"title_match_multiplier"`
	SummaryMatchMultiplier float64 `toml:"summary_match_multiplier"`
	HighPriorityWeight     float64 `toml:"high_priority_weight"`
	MediumPriorityWeight   float64 `toml:"medium_priority_weight"`
	LowPriorityWeight      float64 `toml:"low_priority_weight"`
	MinimumScoreThreshold  float64 `toml:"minimum_score_threshold"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Feed: FeedConfig{
			URL:            "https://techcrunch.com/feed/",
			BaseURL:        "https://techcrunch.com",
			LookbackHours:  24,
			MaxPages:       5,
			TimeoutSeconds: 10,
		},
		Enricher: EnricherConfig{
			Endpoint:        "https://generativelanguage.googleapis.com/v1beta/models",
			Model:           "gemini-2.0-flash",
			MaxContentChars: 5000,
			Concurrency:     5,
		},
		Email: EmailConfig{
			SMTPServer: "smtp.gmail.com",
			SMTPPort:   587,
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/newsbot/newsbot.db",
		},
		Schedule: ScheduleConfig{
			Cron: "0 7 * * *",
		},
		Interests: []InterestTopic{
			{
				Topic:    "robotics",
				Priority: "high",
				Keywords: []string{"robot", "robotics", "humanoid", "robotic arm", "boston dynamics"},
			},
			{
				Topic:    "ai_research",
				Priority: "high",
				Keywords: []string{"artificial intelligence", "machine learning", "neural network", "llm", "deep learning"},
			},
			{
				Topic:    "autonomous_vehicles",
				Priority: "medium",
				Keywords: []string{"self-driving", "autonomous vehicle", "robotaxi", "waymo"},
			},
			{
				Topic:    "startups",
				Priority: "low",
				Keywords: []string{"series a", "series b", "seed round", "funding round"},
			},
		},
		Excludes: []ExcludeTopic{
			{
				Topic:    "social_media",
				Keywords: []string{"facebook", "instagram", "tiktok"},
			},
			{
				Topic:    "cryptocurrency",
				Keywords: []string{"bitcoin", "crypto", "nft", "blockchain"},
			},
			{
				Topic:    "celebrity",
				Keywords: []string{"kardashian"},
			},
		},
		Scoring: ScoringConfig{
			ExcludePenalty:         -50,
			TitleMatchMultiplier:   2,
			SummaryMatchMultiplier: 1,
			HighPriorityWeight:     5,
			MediumPriorityWeight:   3,
			LowPriorityWeight:      1,
			MinimumScoreThreshold:  3,
		},
	}
}
