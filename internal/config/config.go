package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target site
	BaseURL           string
	ContainerSelector string
	TotalPages        int

	// Browser pool
	PoolSize   int
	Headless   bool
	ChromePath string
	Proxy      string
	UserAgent  string

	// Navigation
	NavigationTimeout time.Duration

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Output
	OutputPath  string
	SnapshotDir string
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags, in that precedence order. Caller should pass the command whose flags
// were registered via RegisterFlags.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		BaseURL:           DefaultBaseURL,
		ContainerSelector: DefaultContainerSelector,
		TotalPages:        DefaultTotalPages,
		PoolSize:          DefaultPoolSize,
		Headless:          DefaultHeadless,
		UserAgent:         DefaultUserAgent,
		NavigationTimeout: DefaultNavigationTimeout,
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		OutputPath:        DefaultOutputPath,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("HARVEST_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("HARVEST_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("HARVEST_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("HARVEST_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if s := flagString(cmd, "base-url"); s != "" {
			cfg.BaseURL = s
		}
		if s := flagString(cmd, "selector"); s != "" {
			cfg.ContainerSelector = s
		}
		if s := flagString(cmd, "pages"); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				cfg.TotalPages = n
			}
		}
		if s := flagString(cmd, "pool-size"); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				cfg.PoolSize = n
			}
		}
		if s := flagString(cmd, "timeout"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.NavigationTimeout = d
			}
		}
		if s := flagString(cmd, "user-agent"); s != "" {
			cfg.UserAgent = s
		}
		if s := flagString(cmd, "proxy"); s != "" {
			cfg.Proxy = s
		}
		if s := flagString(cmd, "chrome-path"); s != "" {
			cfg.ChromePath = s
		}
		if s := flagString(cmd, "output"); s != "" {
			cfg.OutputPath = s
		}
		if s := flagString(cmd, "snapshot-dir"); s != "" {
			cfg.SnapshotDir = s
		}
		if flagBool(cmd, "no-headless") {
			cfg.Headless = false
		}
		if flagBool(cmd, "json-logs") {
			cfg.JSONLog = true
		}
		if flagBool(cmd, "verbose") {
			cfg.LogLevel = "debug"
		}
		if flagBool(cmd, "quiet") {
			cfg.LogLevel = "error"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return f.Value.String()
	}
	return ""
}

func flagBool(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String() == "true"
	}
	return false
}
