package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/chaofiber/ai-news-bot/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the digest pipeline on a schedule",
	Long: `Serve runs the full digest pipeline on the cron schedule from the
[schedule] config section, until interrupted.

Examples:
  newsbot serve                 # Use the configured schedule
  newsbot serve --cron="0 8 * * 1-5"   # Weekday mornings at 08:00
  newsbot serve --now           # Also run once immediately on startup`,
	RunE: runServe,
}

var (
	serveCron string
	serveNow  bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveCron, "cron", "", "Cron schedule (default: from config)")
	serveCmd.Flags().BoolVar(&serveNow, "now", false, "Run the pipeline once immediately on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	spec := cfg.Schedule.Cron
	if serveCron != "" {
		spec = serveCron
	}
	if spec == "" {
		return fmt.Errorf("no cron schedule configured (set [schedule] cron or pass --cron)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := digestOptions{SaveDir: digestSaveDir}

	run := func() {
		fmt.Printf("\n=== Digest run at %s ===\n", time.Now().Format("2006-01-02 15:04:05"))
		if _, err := runDigestPipeline(ctx, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Digest run failed: %v\n", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, run); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	if serveNow {
		run()
	}

	c.Start()
	fmt.Printf("Scheduler running (%s). Press Ctrl+C to stop.\n", spec)

	<-ctx.Done()

	fmt.Println("\nShutting down...")
	<-c.Stop().Done()
	return nil
}
