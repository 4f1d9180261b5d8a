package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProductSummary holds the minimal data scraped from one listing-page card.
// ProductURL is the join key for detail and review collection; a summary with
// an empty ProductURL is dropped before detail processing.
type ProductSummary struct {
	ProductURL     string
	ImageURL       string
	Price          *float64
	TotalSold      *int
	SellerLocation string
	ListingTitle   string
}

// ProductDetail holds product-page level data. Every field is optional:
// partial extraction is the expected common case, not an error.
type ProductDetail struct {
	Name                 string
	SellerName           string
	PositiveSellerRating string
	Categories           []string
	ImageURLs            []string
	OverallRating        string
	// RatingHistogram maps star bucket (1..5) to review count.
	RatingHistogram map[int]int
}

// RatingPresence is the product-level gate: when HasRatings is false no
// review extraction is attempted for that product.
type RatingPresence struct {
	HasRatings       bool
	TotalRatingCount *int
}

// Review is one extracted review item. StarCount is a visual tally of
// filled-star indicators and is always in [0,5].
type Review struct {
	Reviewer  string
	StarCount int
	Text      string
	ImageURLs []string
	PostedAt  string
	LikeCount int
}

// OutputRow is the flattened join of one Review with its parent summary and
// detail records. It is the unit of durability: once written, never updated.
type OutputRow struct {
	Reviewer             string
	StarCount            int
	ReviewText           string
	ReviewImageURLs      []string
	ReviewDate           string
	ReviewLikeCount      int
	ProductName          string
	ProductCategories    []string
	ProductPrice         *float64
	TotalSold            *int
	TotalRating          *int
	OverallRating        string
	RatingHistogram      map[int]int
	ProductImageURLs     []string
	SellerName           string
	PositiveSellerRating string
	SellerLocation       string
	SourceURL            string
	CapturedAt           time.Time
}

// CSVHeader is the fixed column header written exactly once per run.
var CSVHeader = []string{
	"Reviewer username or name",
	"Rating (number)",
	"Review (text)",
	"Review image",
	"Review date (date time)",
	"Review like (number like on that review)",
	"Product name",
	"Product category",
	"Product price",
	"Total sold",
	"Total rating",
	"Overall rating",
	"Rating summery",
	"product image url",
	"seller name",
	"Positive Seller Ratings",
	"Seller location",
	"Data source (link of the page)",
	"Processing time (Current timestamp)",
}

// Row renders the output row as CSV fields in CSVHeader order.
func (r *OutputRow) Row() []string {
	return []string{
		r.Reviewer,
		strconv.Itoa(r.StarCount),
		r.ReviewText,
		strings.Join(r.ReviewImageURLs, ", "),
		r.ReviewDate,
		strconv.Itoa(r.ReviewLikeCount),
		r.ProductName,
		strings.Join(r.ProductCategories, ", "),
		formatFloat(r.ProductPrice),
		formatInt(r.TotalSold),
		formatInt(r.TotalRating),
		r.OverallRating,
		FormatHistogram(r.RatingHistogram),
		strings.Join(r.ProductImageURLs, ", "),
		r.SellerName,
		r.PositiveSellerRating,
		r.SellerLocation,
		r.SourceURL,
		r.CapturedAt.Format("2006-01-02T15:04:05"),
	}
}

// FormatHistogram renders a star histogram as comma-joined
// "<n> star: <count>" pairs ordered 5 down to 1, matching the on-page
// summary ordering. An empty map renders as "".
func FormatHistogram(h map[int]int) string {
	if len(h) == 0 {
		return ""
	}
	parts := make([]string, 0, 5)
	for star := 5; star >= 1; star-- {
		count, ok := h[star]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d star: %d", star, count))
	}
	return strings.Join(parts, ", ")
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// RunStats accumulates run-level counters, printed once at the end of a run.
type RunStats struct {
	ListingPagesVisited int
	ListingPagesSkipped int
	CardsSeen           int
	ProductsSkippedNav  int
	ProductsNoRatings   int
	ProductsNoReviews   int
	ProductsScraped     int
	ReviewsCollected    int
	RowsWritten         int
}
