package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing feed source",
			mutate:  func(c *Config) { c.Feed.URL = ""; c.Feed.BaseURL = "" },
			wantErr: "feed.url",
		},
		{
			name:    "zero lookback",
			mutate:  func(c *Config) { c.Feed.LookbackHours = 0 },
			wantErr: "lookback_hours",
		},
		{
			name:    "concurrency too high",
			mutate:  func(c *Config) { c.Enricher.Concurrency = 100 },
			wantErr: "concurrency",
		},
		{
			name: "bad smtp port when email configured",
			mutate: func(c *Config) {
				c.Email.Sender = "bot@example.com"
				c.Email.Recipient = "reader@example.com"
				c.Email.SMTPPort = 0
			},
			wantErr: "smtp_port",
		},
		{
			name:    "no interests",
			mutate:  func(c *Config) { c.Interests = nil },
			wantErr: "interests",
		},
		{
			name: "interest without keywords",
			mutate: func(c *Config) {
				c.Interests = []InterestTopic{{Topic: "robotics", Priority: "high"}}
			},
			wantErr: "at least one keyword",
		},
		{
			name: "unknown priority",
			mutate: func(c *Config) {
				c.Interests = []InterestTopic{{Topic: "robotics", Priority: "urgent", Keywords: []string{"robot"}}}
			},
			wantErr: "priority",
		},
		{
			name: "exclude topic without keywords",
			mutate: func(c *Config) {
				c.Excludes = []ExcludeTopic{{Topic: "crypto"}}
			},
			wantErr: "exclude topic",
		},
		{
			name:    "positive exclude penalty",
			mutate:  func(c *Config) { c.Scoring.ExcludePenalty = 10 },
			wantErr: "exclude_penalty",
		},
		{
			name:    "zero priority weight",
			mutate:  func(c *Config) { c.Scoring.HighPriorityWeight = 0 },
			wantErr: "high_priority_weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJoinsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Feed.LookbackHours = 0
	cfg.Interests = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "lookback_hours") || !strings.Contains(err.Error(), "interests") {
		t.Errorf("expected both problems reported, got: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	content := `
[feed]
url = "https://news.example.com/feed/"
lookback_hours = 48

[scoring]
minimum_score_threshold = 7.5

[[interests]]
topic = "space"
priority = "high"
keywords = ["rocket", "orbit"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Overridden values.
	if cfg.Feed.URL != "https://news.example.com/feed/" {
		t.Errorf("Feed.URL = %q", cfg.Feed.URL)
	}
	if cfg.Feed.LookbackHours != 48 {
		t.Errorf("Feed.LookbackHours = %d, want 48", cfg.Feed.LookbackHours)
	}
	if cfg.Scoring.MinimumScoreThreshold != 7.5 {
		t.Errorf("MinimumScoreThreshold = %v, want 7.5", cfg.Scoring.MinimumScoreThreshold)
	}
	if len(cfg.Interests) != 1 || cfg.Interests[0].Topic != "space" {
		t.Errorf("Interests = %+v", cfg.Interests)
	}

	// Defaults fill the gaps.
	if cfg.Feed.MaxPages != 5 {
		t.Errorf("Feed.MaxPages = %d, want default 5", cfg.Feed.MaxPages)
	}
	if cfg.Scoring.ExcludePenalty != -50 {
		t.Errorf("ExcludePenalty = %v, want default -50", cfg.Scoring.ExcludePenalty)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config init") {
		t.Errorf("error should point at 'config init': %v", err)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[scoring]
exclude_penalty = 50.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandPath("~/data/newsbot.db")
	if err != nil {
		t.Fatalf("expandPath failed: %v", err)
	}
	want := filepath.Join(home, "data", "newsbot.db")
	if got != want {
		t.Errorf("expandPath = %q, want %q", got, want)
	}

	plain, err := expandPath("/var/lib/newsbot.db")
	if err != nil {
		t.Fatalf("expandPath failed: %v", err)
	}
	if plain != "/var/lib/newsbot.db" {
		t.Errorf("absolute path modified: %q", plain)
	}
}
