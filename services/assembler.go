package services

import (
	"time"

	"daraz-scraper/models"
)

// AssembleRows joins each review with its parent summary and detail records
// into output rows. Detail-level name and images are preferred; the
// listing-card title and image fill in when the product page yielded nothing.
func AssembleRows(
	summary models.ProductSummary,
	detail models.ProductDetail,
	presence models.RatingPresence,
	reviews []models.Review,
	capturedAt time.Time,
) []*models.OutputRow {
	name := detail.Name
	if name == "" {
		name = summary.ListingTitle
	}

	images := detail.ImageURLs
	if len(images) == 0 && summary.ImageURL != "" {
		images = []string{summary.ImageURL}
	}

	rows := make([]*models.OutputRow, 0, len(reviews))
	for _, review := range reviews {
		rows = append(rows, &models.OutputRow{
			Reviewer:             review.Reviewer,
			StarCount:            review.StarCount,
			ReviewText:           review.Text,
			ReviewImageURLs:      review.ImageURLs,
			ReviewDate:           review.PostedAt,
			ReviewLikeCount:      review.LikeCount,
			ProductName:          name,
			ProductCategories:    detail.Categories,
			ProductPrice:         summary.Price,
			TotalSold:            summary.TotalSold,
			TotalRating:          presence.TotalRatingCount,
			OverallRating:        detail.OverallRating,
			RatingHistogram:      detail.RatingHistogram,
			ProductImageURLs:     images,
			SellerName:           detail.SellerName,
			PositiveSellerRating: detail.PositiveSellerRating,
			SellerLocation:       summary.SellerLocation,
			SourceURL:            summary.ProductURL,
			CapturedAt:           capturedAt,
		})
	}
	return rows
}
