// internal/browser/pool.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Session is one reusable, isolated browser context owned by the pool. While
// checked out it is exclusively owned by a single scrape; it is never touched
// by two scrapes at once.
type Session struct {
	ID     int
	Ctx    context.Context
	cancel context.CancelFunc
}

// Pool manages a fixed set of reusable browser sessions. The buffered channel
// of sessions is the sole concurrency throttle: checked-out + queued always
// equals the pool size, so at most Size scrapes run against the site at once.
type Pool struct {
	size        int
	sessions    chan *Session
	allocCtx    context.Context
	allocCancel context.CancelFunc
	mu          sync.Mutex
	closed      bool
}

// Options configures the browser pool
type Options struct {
	Size       int
	Headless   bool
	UserAgent  string
	Proxy      string
	ChromePath string
}

// New launches Chrome and pre-creates a full pool of warmed-up sessions.
// Script execution is disabled in every session: extraction relies on static
// markup only, and keeping page scripts off avoids nondeterministic DOM
// mutation between the navigation and the HTML capture.
//
// Session creation is all-or-nothing. If the browser cannot be started or any
// session fails to warm up, everything created so far is torn down and an
// error is returned; there is no partial pool.
func New(opts Options) (*Pool, error) {
	if opts.Size <= 0 {
		opts.Size = 1
	}

	log.Debug().Int("size", opts.Size).Msg("Creating browser session pool")

	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.Flag("disk-cache-size", "0"),
		chromedp.Flag("media-cache-size", "0"),
		chromedp.UserAgent(opts.UserAgent),
	}

	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	pool := &Pool{
		size:        opts.Size,
		sessions:    make(chan *Session, opts.Size),
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}

	for i := 1; i <= opts.Size; i++ {
		sessCtx, sessCancel := chromedp.NewContext(allocCtx)

		// Warm up the session and turn page scripts off for its lifetime.
		err := chromedp.Run(sessCtx,
			emulation.SetScriptExecutionDisabled(true),
			chromedp.Navigate("about:blank"),
		)
		if err != nil {
			sessCancel()
			pool.Close()
			return nil, fmt.Errorf("failed to initialize browser session %d: %w", i, err)
		}

		pool.sessions <- &Session{
			ID:     i,
			Ctx:    sessCtx,
			cancel: sessCancel,
		}

		log.Debug().Int("session_id", i).Msg("Browser session ready")
	}

	log.Info().Int("pool_size", opts.Size).Msg("Browser session pool ready")

	return pool, nil
}

// Acquire removes a session from the pool, blocking until one is available.
// A timeout of zero blocks indefinitely; a positive timeout returns an error
// if no session frees up in time.
func (p *Pool) Acquire(timeout time.Duration) (*Session, error) {
	if timeout > 0 {
		select {
		case s, ok := <-p.sessions:
			return p.checkout(s, ok)
		case <-time.After(timeout):
			return nil, fmt.Errorf("timeout waiting for an available browser session")
		}
	}

	s, ok := <-p.sessions
	return p.checkout(s, ok)
}

func (p *Pool) checkout(s *Session, ok bool) (*Session, error) {
	if !ok {
		return nil, fmt.Errorf("browser pool is closed")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		s.cancel()
		return nil, fmt.Errorf("browser pool is closed")
	}
	log.Debug().Int("session_id", s.ID).Msg("Browser session acquired")
	return s, nil
}

// Release returns a session to the pool. It never blocks and must be called
// exactly once per successful Acquire, on success and failure paths alike.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		s.cancel()
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	select {
	case p.sessions <- s:
		log.Debug().Int("session_id", s.ID).Msg("Browser session released")
	default:
		// Full queue means a double release; drop the session instead of blocking.
		s.cancel()
		log.Warn().Int("session_id", s.ID).Msg("Browser pool full, discarding session")
	}
}

// Close shuts down every session and the underlying browser. A failure to
// close one session is logged and does not prevent the rest from closing.
// Close is idempotent; it must be called after all outstanding sessions have
// been released.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	log.Debug().Msg("Closing browser session pool")

	close(p.sessions)
	for s := range p.sessions {
		if err := chromedp.Cancel(s.Ctx); err != nil {
			log.Warn().Err(err).Int("session_id", s.ID).Msg("Error closing browser session")
		}
		s.cancel()
	}

	p.allocCancel()

	log.Info().Msg("Browser session pool closed")

	return nil
}

// Size returns the pool size
func (p *Pool) Size() int {
	return p.size
}

// Available returns the number of idle sessions currently in the pool
func (p *Pool) Available() int {
	return len(p.sessions)
}
