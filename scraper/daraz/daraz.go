// Package daraz drives the extraction of product reviews from the Daraz
// catalog: listing pages to product pages to paginated review sections,
// flattened into CSV rows. Every page-, product- and review-level failure
// degrades to "skip and continue"; only the output sink may abort a run.
package daraz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"daraz-scraper/config"
	"daraz-scraper/driver"
	"daraz-scraper/models"
	"daraz-scraper/services"
	"daraz-scraper/storage"
	"daraz-scraper/utils"
)

// popupLabels are the button texts a consent or notification popup commonly
// carries; closing them is best-effort and non-fatal.
var popupLabels = map[string]struct{}{
	"accept all":     {},
	"accept cookies": {},
	"allow all":      {},
	"i agree":        {},
	"got it":         {},
	"ok":             {},
}

// Scraper orchestrates the listing → product → review pipeline over a single
// shared page driver. All flow is sequential; the only shared mutable state
// is the driver's current document.
type Scraper struct {
	cfg    *config.Config
	log    *utils.Logger
	driver driver.PageDriver
	nav    *Navigator
	pacer  utils.Pacer
	seen   *utils.URLSet
	sink   storage.RowWriter

	stats models.RunStats
}

// New creates a ready-to-use Scraper writing rows to sink.
func New(cfg *config.Config, log *utils.Logger, d driver.PageDriver, sink storage.RowWriter) *Scraper {
	backoff := utils.BackoffPolicy{
		BaseDelay: 2 * time.Second,
		MaxDelay:  4 * time.Second,
	}
	return &Scraper{
		cfg:    cfg,
		log:    log,
		driver: d,
		nav:    NewNavigator(d, log, backoff),
		pacer: utils.Pacer{
			Min: time.Duration(cfg.PaceMinMs) * time.Millisecond,
			Max: time.Duration(cfg.PaceMaxMs) * time.Millisecond,
		},
		seen: utils.NewURLSet(),
		sink: sink,
	}
}

// Run walks listing pages StartPage..EndPage inclusive and returns run
// statistics. The only error it returns is a sink append failure; everything
// else is skip-and-continue.
func (s *Scraper) Run(ctx context.Context) (models.RunStats, error) {
	s.log.Info("[daraz] Starting scrape — listing pages %d..%d", s.cfg.StartPage, s.cfg.EndPage)

	for page := s.cfg.StartPage; page <= s.cfg.EndPage; page++ {
		if err := ctx.Err(); err != nil {
			return s.stats, err
		}

		listingURL := fmt.Sprintf(s.cfg.ListingURLTemplate, page)
		s.log.Info("[daraz] Listing page %d — %s", page, listingURL)

		if !s.nav.Load(ctx, listingURL, listingContainerSelector, s.cfg.MaxNavAttempts, s.cfg.MarkerTimeout()) {
			s.log.Warn("[daraz] Listing page %d failed to load — skipping", page)
			s.stats.ListingPagesSkipped++
			continue
		}
		s.stats.ListingPagesVisited++
		s.closePopups(ctx)
		s.pacer.Pause()

		cards := s.extractListingCards(ctx)
		s.stats.CardsSeen += len(cards)
		s.log.Info("[daraz] Page %d — %d product cards", page, len(cards))

		for i, card := range cards {
			if card.ProductURL == "" {
				continue
			}
			if !s.seen.Add(card.ProductURL) {
				s.log.Debug("[daraz] Skipping duplicate product: %s", card.ProductURL)
				continue
			}

			s.log.Info("[daraz]   [%d/%d] %s", i+1, len(cards), card.ProductURL)
			if err := s.scrapeProduct(ctx, card); err != nil {
				return s.stats, err
			}
			s.pacer.Pause()
		}

		s.pacer.Pause()
	}

	s.log.Info("[daraz] Scrape complete — %d rows written", s.stats.RowsWritten)
	return s.stats, nil
}

// scrapeProduct processes one product end to end. The returned error is
// non-nil only for sink failures.
func (s *Scraper) scrapeProduct(ctx context.Context, summary models.ProductSummary) error {
	if !s.nav.Load(ctx, summary.ProductURL, detailTitleSelector, s.cfg.MaxNavAttempts, s.cfg.MarkerTimeout()) {
		s.log.Warn("[daraz]     Product page load timed out — skipping")
		s.stats.ProductsSkippedNav++
		return nil
	}
	s.closePopups(ctx)
	s.pacer.Pause()

	presence := s.hasRatings(ctx)
	if !presence.HasRatings {
		s.log.Info("[daraz]     No ratings — skipping product")
		s.stats.ProductsNoRatings++
		return nil
	}

	detail := s.extractDetails(ctx)
	reviews := s.collectReviews(ctx)
	if len(reviews) == 0 {
		s.log.Warn("[daraz]     No review items extracted despite ratings")
		s.stats.ProductsNoReviews++
		return nil
	}

	rows := services.AssembleRows(summary, detail, presence, reviews, time.Now())
	if err := s.sink.Append(rows); err != nil {
		return fmt.Errorf("append rows for %s: %w", summary.ProductURL, err)
	}

	s.stats.ProductsScraped++
	s.stats.ReviewsCollected += len(reviews)
	s.stats.RowsWritten += len(rows)
	s.log.Info("[daraz]     Wrote %d review rows", len(rows))
	return nil
}

// closePopups clicks through common consent/notification popups that would
// otherwise intercept clicks. Finding nothing is the normal case.
func (s *Scraper) closePopups(ctx context.Context) {
	candidates, err := s.driver.FindAll(ctx, "button, a")
	if err != nil {
		return
	}
	if len(candidates) > 50 {
		candidates = candidates[:50]
	}
	for _, el := range candidates {
		text, err := s.driver.Text(ctx, el)
		if err != nil {
			continue
		}
		if _, ok := popupLabels[strings.ToLower(strings.TrimSpace(text))]; !ok {
			continue
		}
		if err := s.driver.ForceClick(ctx, el); err == nil {
			s.pacer.Pause()
		}
		return
	}
}

// scrollToBottom runs bounded scroll-and-wait cycles to trigger lazy-loaded
// content, stopping early once the page height settles.
func (s *Scraper) scrollToBottom(ctx context.Context, maxSteps int) {
	var last int
	if err := s.driver.Eval(ctx, "document.body.scrollHeight", &last); err != nil {
		return
	}
	for i := 0; i < maxSteps; i++ {
		if err := s.driver.Eval(ctx, "window.scrollTo(0, document.body.scrollHeight)", nil); err != nil {
			return
		}
		s.pacer.Pause()
		var height int
		if err := s.driver.Eval(ctx, "document.body.scrollHeight", &height); err != nil {
			return
		}
		if height == last {
			break
		}
		last = height
	}
}
