// internal/scrape/collector.go
package scrape

import (
	"sort"
	"sync"

	"github.com/dappdex/harvest/pkg/models"
	"github.com/rs/zerolog/log"
)

// Collector buffers per-page results keyed by page number as they arrive, in
// any order, and restores the original page ordering at the end. No attempt
// is made to impose order during collection; results are sorted once.
type Collector struct {
	mu    sync.Mutex
	pages map[int][]models.Record
}

// NewCollector creates an empty Collector
func NewCollector() *Collector {
	return &Collector{pages: make(map[int][]models.Record)}
}

// Add records one page's outcome. Each page must be recorded exactly once; a
// failed page is recorded with no records so it still counts as reported.
func (c *Collector) Add(page int, records []models.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.pages[page]; dup {
		log.Warn().Int("page", page).Msg("Duplicate result for page, keeping the first")
		return
	}
	c.pages[page] = records
}

// Len returns how many pages have reported so far
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// Sequence returns all collected records ordered by page number ascending.
// The order depends only on page numbers, never on completion order.
func (c *Collector) Sequence() []models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]int, 0, len(c.pages))
	for k := range c.pages {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var out []models.Record
	for _, k := range keys {
		out = append(out, c.pages[k]...)
	}
	return out
}
