package services

import (
	"testing"
	"time"

	"daraz-scraper/models"
)

func sampleSummary() models.ProductSummary {
	price := 1250.0
	sold := 120
	return models.ProductSummary{
		ProductURL:     "https://www.daraz.com.bd/products/widget-1.html",
		ImageURL:       "https://img.test/card.jpg",
		Price:          &price,
		TotalSold:      &sold,
		SellerLocation: "Dhaka",
		ListingTitle:   "Widget (card title)",
	}
}

func sampleReviews() []models.Review {
	return []models.Review{
		{Reviewer: "rahim", StarCount: 5, Text: "Great"},
		{Reviewer: "karim", StarCount: 2, Text: "Meh"},
	}
}

func TestAssembleRowsPrefersDetailFields(t *testing.T) {
	detail := models.ProductDetail{
		Name:      "Widget Deluxe",
		ImageURLs: []string{"https://img.test/g1.jpg", "https://img.test/g2.jpg"},
	}

	rows := AssembleRows(sampleSummary(), detail, models.RatingPresence{HasRatings: true}, sampleReviews(), time.Now())

	if len(rows) != 2 {
		t.Fatalf("expected one row per review, got %d", len(rows))
	}
	if rows[0].ProductName != "Widget Deluxe" {
		t.Errorf("detail name should win: %q", rows[0].ProductName)
	}
	if len(rows[0].ProductImageURLs) != 2 {
		t.Errorf("detail gallery should win: %v", rows[0].ProductImageURLs)
	}
}

func TestAssembleRowsFallsBackToSummary(t *testing.T) {
	rows := AssembleRows(sampleSummary(), models.ProductDetail{}, models.RatingPresence{HasRatings: true}, sampleReviews(), time.Now())

	if rows[0].ProductName != "Widget (card title)" {
		t.Errorf("empty detail name should fall back to listing title: %q", rows[0].ProductName)
	}
	if len(rows[0].ProductImageURLs) != 1 || rows[0].ProductImageURLs[0] != "https://img.test/card.jpg" {
		t.Errorf("empty gallery should fall back to card image: %v", rows[0].ProductImageURLs)
	}
}

func TestAssembleRowsCarriesReviewFields(t *testing.T) {
	capturedAt := time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC)
	rows := AssembleRows(sampleSummary(), models.ProductDetail{}, models.RatingPresence{HasRatings: true}, sampleReviews(), capturedAt)

	if rows[1].Reviewer != "karim" || rows[1].StarCount != 2 || rows[1].ReviewText != "Meh" {
		t.Errorf("review fields lost in join: %+v", rows[1])
	}
	if !rows[1].CapturedAt.Equal(capturedAt) {
		t.Errorf("capture timestamp: %v", rows[1].CapturedAt)
	}
	if rows[1].SourceURL != "https://www.daraz.com.bd/products/widget-1.html" {
		t.Errorf("source URL: %q", rows[1].SourceURL)
	}
}

func TestAssembleRowsEmptyReviews(t *testing.T) {
	rows := AssembleRows(sampleSummary(), models.ProductDetail{}, models.RatingPresence{HasRatings: true}, nil, time.Now())
	if len(rows) != 0 {
		t.Errorf("zero reviews must assemble zero rows, got %d", len(rows))
	}
}
