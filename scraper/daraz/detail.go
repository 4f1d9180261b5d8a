package daraz

import (
	"context"
	"strings"

	"daraz-scraper/extract"
	"daraz-scraper/models"
)

// histogramOrder is the fixed UI ordering of the rating summary rows.
var histogramOrder = [5]int{5, 4, 3, 2, 1}

// hasRatings is the product-level rating gate. It reads the review-summary
// link text; when that never appears it falls back to the small badge next
// to the stars. Both absent means no ratings.
func (s *Scraper) hasRatings(ctx context.Context) models.RatingPresence {
	if err := s.driver.WaitReady(ctx, reviewSummaryLinkSelector, s.cfg.MarkerTimeout()); err == nil {
		text := extract.FindText(ctx, s.driver, nil, reviewSummaryLinkSelector)
		if strings.Contains(text, noRatingsMarker) {
			return models.RatingPresence{}
		}
		return models.RatingPresence{
			HasRatings:       true,
			TotalRatingCount: extract.IntFromText(text),
		}
	}

	badge := extract.FindText(ctx, s.driver, nil, ratingBadgeSelector)
	if badge == "" {
		return models.RatingPresence{}
	}
	total := extract.IntFromText(badge)
	return models.RatingPresence{
		HasRatings:       total != nil && *total > 0,
		TotalRatingCount: total,
	}
}

// extractDetails reads product-level fields from the current product page.
// Each field is looked up independently; partial extraction is the expected
// common case.
func (s *Scraper) extractDetails(ctx context.Context) models.ProductDetail {
	detail := models.ProductDetail{
		Name:                 extract.FindText(ctx, s.driver, nil, detailTitleSelector),
		SellerName:           extract.FindText(ctx, s.driver, nil, sellerNameSelector),
		PositiveSellerRating: extract.FindText(ctx, s.driver, nil, positiveRatingSelector),
		Categories:           s.extractCategories(ctx),
		ImageURLs:            s.extractGallery(ctx),
		RatingHistogram:      s.extractHistogram(ctx),
	}

	// Overall rating reads like "5.0/5": score average plus max suffix.
	// Both spans or nothing, a bare average is not a rating.
	avg := extract.FindText(ctx, s.driver, nil, scoreAverageSelector)
	max := extract.FindText(ctx, s.driver, nil, scoreMaxSelector)
	if avg != "" && max != "" {
		detail.OverallRating = avg + max
	}

	return detail
}

// extractCategories reads the breadcrumb trail. The trailing crumb
// duplicates the product name and is excluded.
func (s *Scraper) extractCategories(ctx context.Context) []string {
	crumbs, err := s.driver.FindAll(ctx, breadcrumbSelector)
	if err != nil {
		return nil
	}
	var categories []string
	for _, crumb := range crumbs {
		if text := extract.Text(ctx, s.driver, crumb); text != "" {
			categories = append(categories, text)
		}
	}
	if len(categories) > 0 {
		categories = categories[:len(categories)-1]
	}
	return categories
}

func (s *Scraper) extractGallery(ctx context.Context) []string {
	thumbs, err := s.driver.FindAll(ctx, galleryThumbSelector)
	if err != nil {
		return nil
	}
	var urls []string
	for _, thumb := range thumbs {
		if src := extract.Attr(ctx, s.driver, thumb, "src"); src != "" {
			urls = append(urls, src)
		}
	}
	return urls
}

// extractHistogram reads the five rating-summary rows, which the UI orders
// from five stars down to one. A missing per-bucket count defaults to zero.
func (s *Scraper) extractHistogram(ctx context.Context) map[int]int {
	rows, err := s.driver.FindAll(ctx, histogramRowSelector)
	if err != nil || len(rows) == 0 {
		return nil
	}
	if len(rows) > len(histogramOrder) {
		rows = rows[:len(histogramOrder)]
	}

	histogram := make(map[int]int, len(histogramOrder))
	for i, row := range rows {
		count := extract.IntFromText(extract.FindText(ctx, s.driver, row, histogramCountSelector))
		if count != nil {
			histogram[histogramOrder[i]] = *count
		} else {
			histogram[histogramOrder[i]] = 0
		}
	}
	return histogram
}
