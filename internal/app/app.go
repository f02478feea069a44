// Package app provides application initialization and the scrape run lifecycle.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dappdex/harvest/internal/browser"
	"github.com/dappdex/harvest/internal/config"
	"github.com/dappdex/harvest/internal/output"
	"github.com/dappdex/harvest/internal/ratelimit"
	"github.com/dappdex/harvest/internal/scrape"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
// It is created once at startup by the CLI.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Limiter   ratelimit.RateLimiter
	startTime time.Time
}

// New creates and initializes a new Application: logging per the provided
// config, plus the shared per-host rate limiter. The browser pool is not
// created here; it lives only for the duration of a Run.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	limiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	return &Application{
		Config:    cfg,
		Logger:    &logger,
		Limiter:   limiter,
		startTime: time.Now(),
	}, nil
}

// Run executes one full scrape: build the session pool, dispatch every page
// through it, restore page order, and write the dataset to the configured
// sink. Only a pool build failure or a sink write failure aborts the run;
// per-page failures are absorbed as empty pages, so a run that starts always
// produces output.
func (a *Application) Run(progress scrape.Progress) (scrape.Stats, error) {
	cfg := a.Config

	pool, err := browser.New(browser.Options{
		Size:       cfg.PoolSize,
		Headless:   cfg.Headless,
		UserAgent:  cfg.UserAgent,
		Proxy:      cfg.Proxy,
		ChromePath: cfg.ChromePath,
	})
	if err != nil {
		return scrape.Stats{}, fmt.Errorf("failed to build browser pool: %w", err)
	}
	defer pool.Close()

	var snapshot scrape.SnapshotFunc
	if cfg.SnapshotDir != "" {
		sw, err := output.NewSnapshotWriter(cfg.SnapshotDir)
		if err != nil {
			a.Logger.Warn().Err(err).Str("dir", cfg.SnapshotDir).Msg("Snapshots disabled")
		} else {
			snapshot = sw.Write
		}
	}

	fetcher := scrape.NewFetcher(a.Limiter, cfg.BaseURL, cfg.ContainerSelector, cfg.NavigationTimeout, snapshot)
	dispatcher := scrape.NewDispatcher(pool, fetcher, progress)

	records, stats := dispatcher.Run(cfg.TotalPages)

	// All sessions are back in the queue once Run returns; tear down before
	// touching the sink so the browser never outlives the scrape.
	pool.Close()

	if err := output.Save(records, cfg.OutputPath); err != nil {
		return stats, fmt.Errorf("failed to write output: %w", err)
	}

	a.Logger.Info().
		Int("pages", stats.Pages).
		Int("failed", stats.Failed).
		Int("records", stats.Records).
		Dur("elapsed", stats.Elapsed).
		Str("output", cfg.OutputPath).
		Msg("Scrape run complete")

	return stats, nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
