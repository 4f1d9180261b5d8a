package daraz

import (
	"context"
	"strings"

	"daraz-scraper/driver"
	"daraz-scraper/extract"
	"daraz-scraper/models"
)

// collectReviews walks the review list across its pagination, accumulating
// review records. A mid-pagination failure (stale root, intercepted click,
// re-acquisition timeout) degrades to "stop collecting": reviews gathered so
// far are always kept.
func (s *Scraper) collectReviews(ctx context.Context) []models.Review {
	var reviews []models.Review

	root, err := s.waitReviewsRoot(ctx)
	if err != nil {
		s.log.Debug("[daraz]     No visible reviews section: %v", err)
		return reviews
	}

	pages := 0
	for {
		reviews = append(reviews, s.extractReviewPage(ctx, root)...)
		pages++

		if s.cfg.MaxReviewPages > 0 && pages >= s.cfg.MaxReviewPages {
			s.log.Warn("[daraz]     Review page cap (%d) reached — stopping pagination", s.cfg.MaxReviewPages)
			break
		}

		next, err := s.driver.Find(ctx, nextButtonSelector)
		if err != nil {
			break // pagination exhausted
		}
		if !s.advanceReviewPage(ctx, next) {
			break
		}

		// The click may replace the review subtree wholesale.
		root, err = s.waitReviewsRoot(ctx)
		if err != nil {
			s.log.Debug("[daraz]     Reviews root lost after pagination: %v", err)
			break
		}
	}

	return reviews
}

func (s *Scraper) waitReviewsRoot(ctx context.Context) (driver.Node, error) {
	if err := s.driver.WaitReady(ctx, reviewsRootSelector, s.cfg.MarkerTimeout()); err != nil {
		return nil, err
	}
	return s.driver.Find(ctx, reviewsRootSelector)
}

// advanceReviewPage scrolls the next control into view and clicks it.
// False means the traversal should finish with what it has.
func (s *Scraper) advanceReviewPage(ctx context.Context, next driver.Node) bool {
	if err := s.driver.ScrollIntoView(ctx, next); err != nil {
		return false
	}
	s.pacer.Pause()
	if err := s.driver.Click(ctx, next); err != nil {
		s.log.Debug("[daraz]     Next-page click failed: %v", err)
		return false
	}
	s.pacer.Pause()
	return true
}

// extractReviewPage reads all review items under the current root. A
// structural error on one item drops that item only.
func (s *Scraper) extractReviewPage(ctx context.Context, root driver.Node) []models.Review {
	items, err := s.driver.FindAllIn(ctx, root, reviewItemSelector)
	if err != nil {
		s.log.Debug("[daraz]     Review item query failed: %v", err)
		return nil
	}

	page := make([]models.Review, 0, len(items))
	for _, item := range items {
		review, ok := s.extractReviewItem(ctx, item)
		if !ok {
			continue
		}
		page = append(page, review)
	}
	return page
}

func (s *Scraper) extractReviewItem(ctx context.Context, item driver.Node) (models.Review, bool) {
	stars, err := s.driver.FindAllIn(ctx, item, reviewStarsSelector)
	if err != nil {
		return models.Review{}, false
	}

	review := models.Review{
		StarCount: s.countFilledStars(ctx, stars),
		PostedAt:  extract.FindText(ctx, s.driver, item, reviewDateSelector),
		Text:      extract.FindText(ctx, s.driver, item, reviewContentSelector),
		ImageURLs: s.extractReviewImages(ctx, item),
		LikeCount: s.extractLikeCount(ctx, item),
	}

	if authors, err := s.driver.FindAllIn(ctx, item, reviewAuthorSelector); err == nil && len(authors) > 0 {
		review.Reviewer = extract.Text(ctx, s.driver, authors[0])
	}

	return review, true
}

// countFilledStars tallies star indicator images whose source carries the
// filled-state token. The tally is clamped to the 0..5 bucket range.
func (s *Scraper) countFilledStars(ctx context.Context, stars []driver.Node) int {
	filled := 0
	for _, star := range stars {
		src := extract.Attr(ctx, s.driver, star, "src")
		if strings.Contains(src, starFilledToken) {
			filled++
		}
	}
	if filled > 5 {
		filled = 5
	}
	return filled
}

// extractReviewImages parses each attached image's background-image style.
func (s *Scraper) extractReviewImages(ctx context.Context, item driver.Node) []string {
	divs, err := s.driver.FindAllIn(ctx, item, reviewImageSelector)
	if err != nil {
		return nil
	}
	var urls []string
	for _, div := range divs {
		style := extract.Attr(ctx, s.driver, div, "style")
		if url := extract.BackgroundImageURL(style); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// extractLikeCount reads the last numeric span inside the like container.
func (s *Scraper) extractLikeCount(ctx context.Context, item driver.Node) int {
	container, err := s.driver.FindIn(ctx, item, reviewLikesSelector)
	if err != nil {
		return 0
	}
	spans, err := s.driver.FindAllIn(ctx, container, "span")
	if err != nil || len(spans) == 0 {
		return 0
	}
	text := extract.Text(ctx, s.driver, spans[len(spans)-1])
	if n := extract.IntFromText(text); n != nil {
		return *n
	}
	return 0
}
