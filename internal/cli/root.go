// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dappdex/harvest/internal/app"
	"github.com/dappdex/harvest/internal/config"
	"github.com/dappdex/harvest/internal/ui"
	"github.com/dappdex/harvest/pkg/models"
)

// rootCmd is the single runnable command: one invocation is one scrape run.
var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Scrape paginated game listings into a single ordered dataset",
	Long: `Harvest fetches every page of a paginated game listing through a fixed
pool of reusable headless-Chrome sessions, extracts one record per listing
row, and writes a single dataset ordered by page number.`,
	Example: `  # Scrape with the defaults (61 pages, 8 pooled sessions, games.csv)
  harvest

  # Fewer pages, more concurrency, JSON output
  harvest --pages 10 --pool-size 4 -o games.json

  # Dump per-page markdown snapshots for markup debugging
  harvest --pages 2 --snapshot-dir snapshots/`,
	Version: "0.1.0",
	Args:    cobra.NoArgs,
	RunE:    runHarvest,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if cfg.TotalPages > 0 && !cfg.JSONLog && cfg.LogLevel != "debug" {
		bar = progressbar.NewOptions(cfg.TotalPages,
			progressbar.OptionSetDescription("scraping"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	progress := func(res models.PageResult) {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	stats, err := application.Run(progress)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error("✗ "+err.Error()))
		return err
	}

	summary := fmt.Sprintf("✓ Saved %d records from %d pages to %s", stats.Records, stats.Pages, cfg.OutputPath)
	fmt.Println(ui.Success(summary))
	if stats.Failed > 0 {
		fmt.Println(ui.Warn(fmt.Sprintf("  %d of %d pages failed and contributed no records", stats.Failed, stats.Pages)))
	}
	return nil
}
