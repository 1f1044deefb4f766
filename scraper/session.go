package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// SessionManager owns one Chrome process for the lifetime of a job and hands
// out isolated tab contexts. At most one unit of work uses a Session at a
// time; the manager itself is safe for concurrent Acquire/Release.
type SessionManager struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	cfg         config.Config
	log         *slog.Logger
	perSecond   float64
}

// SessionConfig is the subset of Config a session launch recognises.
type SessionConfig struct {
	Headless  bool
	UserAgent string
}

// Session is one browser tab bound to a date block or a single lookup.
type Session struct {
	Ctx     context.Context
	cancel  context.CancelFunc
	limiter *rate.Limiter

	// consentDone suppresses consent re-probing after the first success.
	consentDone bool
}

// NewSessionManager launches the browser process. A launch failure here is
// the only fatal, job-level error (models.ErrBrowserLaunch).
func NewSessionManager(parent context.Context, cfg config.Config, sc SessionConfig, log *slog.Logger) (*SessionManager, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", sc.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(sc.UserAgent),
		chromedp.WindowSize(1440, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)

	m := &SessionManager{
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		cfg:         cfg,
		log:         log,
		perSecond:   cfg.NavPerSecond,
	}

	// Connecting a probe tab forces the process to start so launch failures
	// surface here instead of inside the first unit of work.
	probeCtx, cancelProbe := chromedp.NewContext(allocCtx)
	defer cancelProbe()
	if err := chromedp.Run(probeCtx); err != nil {
		cancelAlloc()
		return nil, fmt.Errorf("%w: %v", models.ErrBrowserLaunch, err)
	}

	return m, nil
}

// Acquire opens a fresh tab. The tab inherits the job's deadline through ctx.
func (m *SessionManager) Acquire(ctx context.Context) *Session {
	tabCtx, cancelTab := chromedp.NewContext(m.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			m.log.Debug(fmt.Sprintf(format, args...))
		}),
	)

	// Tie the tab's lifetime to the caller's context as well.
	tabCtx, cancelBound := mergeCancel(tabCtx, ctx)

	return &Session{
		Ctx: tabCtx,
		cancel: func() {
			cancelBound()
			cancelTab()
		},
		limiter: rate.NewLimiter(rate.Limit(m.perSecond), 1),
	}
}

// Release closes the session's tab.
func (m *SessionManager) Release(s *Session) {
	if s != nil {
		s.cancel()
	}
}

// Close tears down the browser process and every remaining tab.
func (m *SessionManager) Close() {
	m.cancelAlloc()
}

// mergeCancel cancels tab when outer is done, without making outer the
// chromedp parent (the tab must stay a child of the allocator).
func mergeCancel(tab context.Context, outer context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(tab)
	stop := make(chan struct{})
	go func() {
		select {
		case <-outer.Done():
			cancel()
		case <-stop:
		}
	}()
	var once sync.Once
	return merged, func() {
		once.Do(func() { close(stop) })
		cancel()
	}
}
