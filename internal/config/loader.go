package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig marks configuration that parsed but failed validation.
// All scoring-model misconfiguration surfaces through it; nothing downstream
// of loading produces errors of its own.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'newsbot config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Parse TOML
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths in config
	cfg.Database.Path, err = expandPath(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad loads config or exits with error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// Validate checks that the configuration is valid. A zero value for a scoring
// constant means the TOML key is missing, so the sign and range checks double
// as required-field checks.
func (c *Config) Validate() error {
	var errs []error

	// Feed validation
	if c.Feed.URL == "" && c.Feed.BaseURL == "" {
		errs = append(errs, errors.New("feed.url or feed.base_url is required"))
	}
	if c.Feed.LookbackHours < 1 {
		errs = append(errs, errors.New("feed.lookback_hours must be at least 1"))
	}
	if c.Feed.MaxPages < 1 {
		errs = append(errs, errors.New("feed.max_pages must be at least 1"))
	}

	// Enricher validation
	if c.Enricher.Concurrency < 1 || c.Enricher.Concurrency > 32 {
		errs = append(errs, errors.New("enricher.concurrency must be between 1 and 32"))
	}

	// Email validation
	if c.Email.Configured() && (c.Email.SMTPPort < 1 || c.Email.SMTPPort > 65535) {
		errs = append(errs, errors.New("email.smtp_port must be between 1 and 65535"))
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Interest topics
	if len(c.Interests) == 0 {
		errs = append(errs, errors.New("at least one [[interests]] topic is required"))
	}
	validPriorities := map[string]bool{"high": true, "medium": true, "low": true}
	for _, topic := range c.Interests {
		if topic.Topic == "" {
			errs = append(errs, errors.New("interest topic name is required"))
		}
		if len(topic.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("interest %q must have at least one keyword", topic.Topic))
		}
		if !validPriorities[topic.Priority] {
			errs = append(errs, fmt.Errorf("interest %q priority must be 'high', 'medium' or 'low', got %q", topic.Topic, topic.Priority))
		}
	}
	for _, topic := range c.Excludes {
		if len(topic.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("exclude topic %q must have at least one keyword", topic.Topic))
		}
	}

	// Scoring constants. The penalty must stay negative for the exclusion
	// veto to short-circuit interest scoring.
	if c.Scoring.ExcludePenalty >= 0 {
		errs = append(errs, errors.New("scoring.exclude_penalty must be negative"))
	}
	if c.Scoring.TitleMatchMultiplier <= 0 {
		errs = append(errs, errors.New("scoring.title_match_multiplier must be positive"))
	}
	if c.Scoring.SummaryMatchMultiplier <= 0 {
		errs = append(errs, errors.New("scoring.summary_match_multiplier must be positive"))
	}
	if c.Scoring.HighPriorityWeight <= 0 {
		errs = append(errs, errors.New("scoring.high_priority_weight must be positive"))
	}
	if c.Scoring.MediumPriorityWeight <= 0 {
		errs = append(errs, errors.New("scoring.medium_priority_weight must be positive"))
	}
	if c.Scoring.LowPriorityWeight <= 0 {
		errs = append(errs, errors.New("scoring.low_priority_weight must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}
