package daraz

import (
	"context"

	"daraz-scraper/driver"
	"daraz-scraper/extract"
	"daraz-scraper/models"
)

// extractListingCards reads every product card on the current listing page.
// A page whose listing container never renders yields an empty slice — a
// valid empty result, not an error. A card with a hard structural failure is
// skipped individually and never aborts its siblings.
func (s *Scraper) extractListingCards(ctx context.Context) []models.ProductSummary {
	if err := s.driver.WaitReady(ctx, listingContainerSelector, s.cfg.MarkerTimeout()); err != nil {
		s.log.Debug("[daraz] Listing container never appeared: %v", err)
		return nil
	}

	s.scrollToBottom(ctx, s.cfg.MaxScrollSteps)

	cards, err := s.driver.FindAll(ctx, listingCardSelector)
	if err != nil {
		s.log.Warn("[daraz] Card query failed: %v", err)
		return nil
	}

	results := make([]models.ProductSummary, 0, len(cards))
	for _, card := range cards {
		summary, ok := s.extractCard(ctx, card)
		if !ok {
			continue
		}
		results = append(results, summary)
	}
	return results
}

// extractCard turns one card node into a ProductSummary. The detail anchor
// is the only required element; every other field degrades to its zero
// value when absent.
func (s *Scraper) extractCard(ctx context.Context, card driver.Node) (models.ProductSummary, bool) {
	anchor, err := s.driver.FindIn(ctx, card, cardAnchorSelector)
	if err != nil {
		return models.ProductSummary{}, false
	}

	href := extract.Attr(ctx, s.driver, anchor, "href")
	return models.ProductSummary{
		ProductURL:     extract.NormalizeURL(s.cfg.BaseURL, href),
		ImageURL:       extract.FindAttr(ctx, s.driver, card, cardImageSelector, "src"),
		ListingTitle:   extract.FindText(ctx, s.driver, card, cardTitleSelector),
		Price:          extract.DecimalFromText(extract.FindText(ctx, s.driver, card, cardPriceSelector)),
		TotalSold:      extract.IntFromText(extract.FindText(ctx, s.driver, card, cardSoldSelector)),
		SellerLocation: extract.FindText(ctx, s.driver, card, cardLocationSelector),
	}, true
}
