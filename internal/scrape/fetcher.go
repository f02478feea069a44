// internal/scrape/fetcher.go
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/dappdex/harvest/internal/browser"
	"github.com/dappdex/harvest/internal/ratelimit"
	"github.com/dappdex/harvest/pkg/models"
	"github.com/rs/zerolog/log"
)

// SnapshotFunc receives each fetched page's raw container markup when
// snapshots are enabled. A snapshot failure never fails the page.
type SnapshotFunc func(page int, containerHTML string) error

// Fetcher navigates a pooled browser session to one listing page and turns
// the page's container markup into records.
type Fetcher struct {
	limiter  ratelimit.RateLimiter
	baseURL  string
	selector string
	timeout  time.Duration
	snapshot SnapshotFunc
}

// NewFetcher creates a Fetcher with dependency injection
func NewFetcher(limiter ratelimit.RateLimiter, baseURL, selector string, timeout time.Duration, snapshot SnapshotFunc) *Fetcher {
	return &Fetcher{
		limiter:  limiter,
		baseURL:  baseURL,
		selector: selector,
		timeout:  timeout,
		snapshot: snapshot,
	}
}

// Fetch navigates the session to the given page number, captures the document
// markup once, and extracts the listing records offline. A page without the
// container element is a valid "no data" page and yields zero records with a
// nil error; a navigation failure or timeout is returned to the caller.
func (f *Fetcher) Fetch(s *browser.Session, page int) ([]models.Record, error) {
	start := time.Now()

	pageURL, err := PageURL(f.baseURL, page)
	if err != nil {
		return nil, fmt.Errorf("build URL for page %d: %w", page, err)
	}

	navCtx, cancel := context.WithTimeout(s.Ctx, f.timeout)
	defer cancel()

	if err := f.limiter.Wait(navCtx, pageURL); err != nil {
		return nil, fmt.Errorf("rate limiter wait for page %d: %w", page, err)
	}

	log.Debug().
		Int("session_id", s.ID).
		Int("page", page).
		Str("url", pageURL).
		Msg("Navigating to listing page")

	var docHTML string
	err = chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.OuterHTML("html", &docHTML, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("navigate page %d: %w", page, err)
	}

	// From here on everything operates on the captured string; a parse
	// failure cannot corrupt the live browser session.
	containerHTML, found, err := extractContainer(docHTML, f.selector)
	if err != nil {
		return nil, fmt.Errorf("extract container on page %d: %w", page, err)
	}
	if !found {
		log.Debug().Int("session_id", s.ID).Int("page", page).Msg("No listing container on page")
		return nil, nil
	}

	if f.snapshot != nil {
		if err := f.snapshot(page, containerHTML); err != nil {
			log.Warn().Err(err).Int("page", page).Msg("Failed to write page snapshot")
		}
	}

	records, err := ExtractRecords(containerHTML)
	if err != nil {
		return nil, fmt.Errorf("extract records on page %d: %w", page, err)
	}

	log.Info().
		Int("session_id", s.ID).
		Int("page", page).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Page scraped")

	return records, nil
}

// extractContainer pulls the listing container's outer markup from the
// captured document. Returns found=false when the selector matches nothing.
func extractContainer(docHTML, selector string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(docHTML))
	if err != nil {
		return "", false, fmt.Errorf("parse document: %w", err)
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", false, nil
	}

	raw, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return "", false, fmt.Errorf("serialize container: %w", err)
	}
	return raw, true, nil
}

// PageURL derives the deterministic URL for a page number from the base URL
func PageURL(base string, page int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
