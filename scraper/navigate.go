package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/EstebanCaso/arkus-scraper-worker/pkg/logger"
)

// Readiness describes the layered wait strategy applied after navigation.
// Every step past the initial load is best-effort: a step that times out or
// errors is skipped, never fatal.
type Readiness struct {
	ConsentSelectors []string
	ContentMarkers   []string // any one appearing counts as ready
	SettleTimeout    time.Duration
	MarkerTimeout    time.Duration
	ScrollSteps      int
	ScrollPause      time.Duration
}

// Navigator drives a single page session to a target URL and waits for
// content readiness.
type Navigator struct {
	log *slog.Logger
}

func NewNavigator(log *slog.Logger) *Navigator {
	return &Navigator{log: logger.WithComponent(log, "navigator")}
}

// Navigate loads url in the session's tab and applies the readiness policy.
// It returns an error only when the initial load itself fails; a page that
// loads but never shows a content marker comes back with Degraded set.
func (n *Navigator) Navigate(ctx context.Context, s *Session, url string, r Readiness) (*RenderedPage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("navigation cancelled: %w", err)
	}

	if err := chromedp.Run(s.Ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}

	n.dismissConsent(s, r.ConsentSelectors)
	n.waitSettled(s, r.SettleTimeout)
	n.scrollThrough(s, r.ScrollSteps, r.ScrollPause)
	degraded := !n.waitMarkers(s, r.ContentMarkers, r.MarkerTimeout)

	var html, finalURL string
	if err := chromedp.Run(s.Ctx,
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("capture %s: %w", url, err)
	}

	page, err := NewRenderedPage(finalURL, html)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	page.Degraded = degraded
	return page, nil
}

// dismissConsent probes the banner selectors in the main document and all
// same-origin frames, clicking the first match. A localStorage flag stops the
// probing on later navigations within the session.
func (n *Navigator) dismissConsent(s *Session, selectors []string) {
	if s.consentDone || len(selectors) == 0 {
		return
	}

	quoted := make([]string, len(selectors))
	for i, sel := range selectors {
		quoted[i] = fmt.Sprintf("%q", sel)
	}

	script := fmt.Sprintf(`
		(() => {
			try {
				if (localStorage.getItem('consent_accepted') === '1') return true;
			} catch (e) {}
			const selectors = [%s];
			const docs = [document];
			for (const frame of Array.from(window.frames)) {
				try { docs.push(frame.document); } catch (e) {}
			}
			for (const sel of selectors) {
				for (const doc of docs) {
					const btn = doc.querySelector(sel);
					if (btn) {
						btn.click();
						try { localStorage.setItem('consent_accepted', '1'); } catch (e) {}
						return true;
					}
				}
			}
			return false;
		})();
	`, strings.Join(quoted, ", "))

	var clicked bool
	if err := chromedp.Run(s.Ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		n.log.Debug("consent probe failed", "error", err)
		return
	}
	if clicked {
		s.consentDone = true
		n.log.Debug("consent banner dismissed")
	}
}

// waitSettled polls the body HTML until two consecutive reads match or the
// budget runs out. Stands in for a network-idle wait without CDP events.
func (n *Navigator) waitSettled(s *Session, budget time.Duration) {
	if budget <= 0 {
		return
	}
	deadline := time.Now().Add(budget)
	var previous string
	for time.Now().Before(deadline) {
		var body string
		if err := chromedp.Run(s.Ctx, chromedp.OuterHTML("body", &body, chromedp.ByQuery)); err != nil {
			return
		}
		if previous != "" && previous == body {
			return
		}
		previous = body
		select {
		case <-s.Ctx.Done():
			return
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// scrollThrough performs fixed scroll-to-bottom steps to trigger lazy loading.
func (n *Navigator) scrollThrough(s *Session, steps int, pause time.Duration) {
	for i := 0; i < steps; i++ {
		if err := chromedp.Run(s.Ctx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(pause),
		); err != nil {
			return
		}
	}
}

// waitMarkers waits until any content marker is present. Returns false on
// timeout; the caller proceeds with a degraded page instead of failing.
func (n *Navigator) waitMarkers(s *Session, markers []string, budget time.Duration) bool {
	if len(markers) == 0 {
		return true
	}
	combined := strings.Join(markers, ", ")
	script := fmt.Sprintf(`document.querySelector(%q) !== null`, combined)

	deadline := time.Now().Add(budget)
	for time.Now().Before(deadline) {
		var present bool
		if err := chromedp.Run(s.Ctx, chromedp.Evaluate(script, &present)); err != nil {
			return false
		}
		if present {
			return true
		}
		select {
		case <-s.Ctx.Done():
			return false
		case <-time.After(500 * time.Millisecond):
		}
	}
	n.log.Debug("no content marker appeared", "markers", combined)
	return false
}
