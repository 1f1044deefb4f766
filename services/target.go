package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/scraper"
)

// resolveTarget turns a free-text hotel name into the hotel's page URL by
// scraping the site's search results and scoring each card against the query.
func (r *Runner) resolveTarget(ctx context.Context, manager *scraper.SessionManager, job models.ScrapeJob, log *slog.Logger) (string, error) {
	if r.cfg.SearchURLTemplate == "" || r.cfg.RatesURLTemplate == "" {
		return "", fmt.Errorf("rates flow disabled: %w", models.ErrUpstreamUnavailable)
	}
	if strings.TrimSpace(job.Target) == "" {
		return "", fmt.Errorf("no target name: %w", models.ErrUpstreamUnavailable)
	}

	searchURL := fmt.Sprintf(r.cfg.SearchURLTemplate, url.QueryEscape(job.Target))

	session := manager.Acquire(ctx)
	defer manager.Release(session)

	navigator := scraper.NewNavigator(log)
	page, err := navigator.Navigate(ctx, session, searchURL, r.readiness(scraper.SearchReadyMarker))
	if err != nil {
		return "", fmt.Errorf("search navigation: %w", err)
	}

	candidates := searchCandidates(page)
	if len(candidates) == 0 {
		return "", fmt.Errorf("no search results for %q", job.Target)
	}

	best, ok := scraper.BestMatch(job.Target, candidates, r.cfg.Match)
	if !ok {
		return "", fmt.Errorf("no result scored above floor for %q", job.Target)
	}

	log.Info("target resolved", "name", best.Name, "url", best.URL)
	return resolveHref(page.URL, best.URL), nil
}

// searchCandidates lifts result cards into name+link candidates.
func searchCandidates(page *scraper.RenderedPage) []scraper.Candidate {
	var out []scraper.Candidate
	page.Doc.Find(scraper.SearchResultCardSelector).Each(func(_ int, card *goquery.Selection) {
		link := card.Find(scraper.SearchResultLinkSelector).First()
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if href == "" {
			return
		}
		name := strings.TrimSpace(card.Find(scraper.SearchResultNameSelector).First().Text())
		if name == "" {
			name = strings.TrimSpace(link.Text())
		}
		if name == "" {
			return
		}
		out = append(out, scraper.Candidate{Name: name, URL: href})
	})
	return out
}

// resolveHref makes a card's relative href absolute against the page URL.
func resolveHref(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	resolved := base.ResolveReference(ref)
	// Rate navigations re-append their own query parameters.
	resolved.RawQuery = ""
	return resolved.String()
}
