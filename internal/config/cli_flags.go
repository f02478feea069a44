package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON to stderr")

	cmd.Flags().IntP("pages", "n", DefaultTotalPages, "Number of listing pages to scrape")
	cmd.Flags().IntP("pool-size", "p", DefaultPoolSize, "Number of pooled browser sessions (concurrency level)")
	cmd.Flags().String("base-url", DefaultBaseURL, "Listing base URL; ?page=<n> is appended per page")
	cmd.Flags().StringP("selector", "s", DefaultContainerSelector, "CSS selector of the listing container element")
	cmd.Flags().String("timeout", DefaultNavigationTimeout.String(), "Per-page navigation timeout")
	cmd.Flags().StringP("output", "o", DefaultOutputPath, "Output file path (.csv or .json)")
	cmd.Flags().String("snapshot-dir", "", "Directory to dump per-page markdown snapshots for debugging")
	cmd.Flags().Bool("no-headless", false, "Run Chrome with a visible window")
	cmd.Flags().String("user-agent", "", "Custom user agent string")
	cmd.Flags().String("proxy", "", "HTTP/SOCKS5 proxy for browser traffic (e.g., http://localhost:8080)")
	cmd.Flags().String("chrome-path", "", "Path to the Chrome/Chromium executable")
}
