// internal/scrape/dispatcher.go
package scrape

import (
	"fmt"
	"sync"
	"time"

	"github.com/dappdex/harvest/internal/browser"
	"github.com/dappdex/harvest/pkg/models"
	"github.com/rs/zerolog/log"
)

// SessionPool is the slice of the browser pool the dispatcher needs
type SessionPool interface {
	Acquire(timeout time.Duration) (*browser.Session, error)
	Release(s *browser.Session)
}

// PageFetcher scrapes a single listing page with a checked-out session
type PageFetcher interface {
	Fetch(s *browser.Session, page int) ([]models.Record, error)
}

// Progress is invoked once per completed page, in completion order.
type Progress func(result models.PageResult)

// Stats summarizes a finished run
type Stats struct {
	Pages   int
	Failed  int
	Records int
	Elapsed time.Duration
}

// Dispatcher launches one task per page, bounded by the session pool's
// capacity, and drains completions into an order-restoring collector.
type Dispatcher struct {
	pool     SessionPool
	fetcher  PageFetcher
	progress Progress
}

// NewDispatcher creates a Dispatcher. progress may be nil.
func NewDispatcher(pool SessionPool, fetcher PageFetcher, progress Progress) *Dispatcher {
	return &Dispatcher{
		pool:     pool,
		fetcher:  fetcher,
		progress: progress,
	}
}

// Run scrapes pages 1..total and returns the flattened record sequence
// ordered by page number. One goroutine is launched per page; at most the
// pool's capacity hold a session at once, the rest block in Acquire. A
// single page's failure is logged and recorded as an empty page without
// affecting its siblings, so the run always completes. total == 0 is a legal
// degenerate case and yields an empty sequence.
func (d *Dispatcher) Run(total int) ([]models.Record, Stats) {
	start := time.Now()

	log.Debug().Int("pages", total).Msg("Dispatching page scrapes")

	collector := NewCollector()
	results := make(chan models.PageResult, total)

	var wg sync.WaitGroup
	for page := 1; page <= total; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			results <- d.scrapePage(page)
		}(page)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	stats := Stats{Pages: total}
	for res := range results {
		if res.Err != nil {
			stats.Failed++
			res.Records = nil
			log.Warn().Err(res.Err).Int("page", res.Page).Msg("Page failed, recording empty result")
		}
		collector.Add(res.Page, res.Records)
		if d.progress != nil {
			d.progress(res)
		}
	}

	records := collector.Sequence()
	stats.Records = len(records)
	stats.Elapsed = time.Since(start)

	log.Debug().
		Int("pages", total).
		Int("failed", stats.Failed).
		Int("records", stats.Records).
		Msg("All pages drained")

	return records, stats
}

// scrapePage pairs one acquire with exactly one release. The release is
// deferred so it runs on the failure path too; an error never leaks a session.
func (d *Dispatcher) scrapePage(page int) models.PageResult {
	res := models.PageResult{Page: page}

	s, err := d.pool.Acquire(0)
	if err != nil {
		res.Err = fmt.Errorf("acquire session for page %d: %w", page, err)
		return res
	}
	defer d.pool.Release(s)

	res.Records, res.Err = d.fetcher.Fetch(s, page)
	return res
}
