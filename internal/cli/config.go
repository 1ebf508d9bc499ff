package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "newsbot")
	dataDir := filepath.Join(home, ".local", "share", "newsbot")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'newsbot config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the interests and exclude_topics sections to match what you read")
	fmt.Println("  2. Set GEMINI_API_KEY for AI summaries (optional)")
	fmt.Println("  3. Set EMAIL_PASSWORD and fill in [email] to receive digests (optional)")
	fmt.Println("  4. Run 'newsbot digest' to produce your first digest")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'newsbot config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# newsbot configuration

[feed]
url = "https://techcrunch.com/feed/"
base_url = "https://techcrunch.com"
lookback_hours = 24
max_pages = 5       # listing pages to walk when scraping
timeout_seconds = 10

[enricher]
endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
model = "gemini-2.0-flash"
max_content_chars = 5000
concurrency = 5
# API key read from GEMINI_API_KEY env var

[email]
smtp_server = "smtp.gmail.com"
smtp_port = 587
sender = ""      # e.g. "bot@example.com"
recipient = ""   # leave empty to disable email delivery
# Password read from EMAIL_PASSWORD env var

[database]
path = "~/.local/share/newsbot/newsbot.db"

[schedule]
cron = "0 7 * * *"  # daily at 07:00 for 'newsbot serve'

# Interest topics drive the relevance score. Priority is one of
# high, medium, low; keywords match on word boundaries, case-insensitive.
[[interests]]
topic = "robotics"
priority = "high"
keywords = ["robot", "robotics", "humanoid", "robotic arm", "boston dynamics"]

[[interests]]
topic = "ai_research"
priority = "high"
keywords = ["artificial intelligence", "machine learning", "neural network", "llm", "deep learning"]

[[interests]]
topic = "autonomous_vehicles"
priority = "medium"
keywords = ["self-driving", "autonomous vehicle", "robotaxi", "waymo"]

[[interests]]
topic = "startups"
priority = "low"
keywords = ["series a", "series b", "seed round", "funding round"]

# Exclusion topics veto articles. One match anywhere in the title or
# summary applies the exclude_penalty.
[[exclude_topics]]
topic = "social_media"
keywords = ["facebook", "instagram", "tiktok"]

[[exclude_topics]]
topic = "cryptocurrency"
keywords = ["bitcoin", "crypto", "nft", "blockchain"]

[[exclude_topics]]
topic = "celebrity"
keywords = ["kardashian"]

[scoring]
exclude_penalty = -50.0
title_match_multiplier = 2.0
summary_match_multiplier = 1.0
high_priority_weight = 5.0
medium_priority_weight = 3.0
low_priority_weight = 1.0
minimum_score_threshold = 3.0
`
