package daraz

import (
	"context"
	"testing"

	"daraz-scraper/driver"
)

func TestHasRatingsFromSummaryLink(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		want      bool
		wantTotal *int
	}{
		{
			name: "ratings with count",
			html: `<a class="pdp-review-summary__link">Ratings 1,204</a>`,
			want: true, wantTotal: intPtr(1204),
		},
		{
			name: "no ratings marker",
			html: `<a class="pdp-review-summary__link">No Ratings</a>`,
			want: false,
		},
		{
			name: "badge fallback",
			html: `<span class="qzqFw">(8)</span>`,
			want: true, wantTotal: intPtr(8),
		},
		{
			name: "zero badge",
			html: `<span class="qzqFw">(0)</span>`,
			want: false, wantTotal: intPtr(0),
		},
		{
			name: "nothing present",
			html: `<p>bare page</p>`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := driver.NewFake()
			f.SetHTML("<html><body>" + tt.html + "</body></html>")
			s := newTestScraper(t, f, &recordingSink{})

			got := s.hasRatings(context.Background())
			if got.HasRatings != tt.want {
				t.Errorf("HasRatings = %v; want %v", got.HasRatings, tt.want)
			}
			if tt.wantTotal == nil {
				if got.HasRatings && got.TotalRatingCount != nil {
					t.Errorf("TotalRatingCount = %v; want absent", *got.TotalRatingCount)
				}
			} else if got.TotalRatingCount == nil || *got.TotalRatingCount != *tt.wantTotal {
				t.Errorf("TotalRatingCount = %v; want %d", got.TotalRatingCount, *tt.wantTotal)
			}
		})
	}
}

const fullDetailHTML = `<html><body>
<h1 class="pdp-mod-product-badge-title">Deluxe Widget</h1>
<a class="seller-name__detail-name">Widget Shop</a>
<div class="seller-info-value rating-positive">91%</div>
<ul id="J_breadcrumb">
  <li><span class="breadcrumb_item_anchor"><span>Home</span></span></li>
  <li><span class="breadcrumb_item_anchor"><span>Gadgets</span></span></li>
  <li><span class="breadcrumb_item_anchor"><span>Deluxe Widget</span></span></li>
</ul>
<img class="pdp-mod-common-image item-gallery__thumbnail-image" src="https://img.test/g1.jpg">
<img class="pdp-mod-common-image item-gallery__thumbnail-image" src="https://img.test/g2.jpg">
<div class="score"><span class="score-average">4.8</span><span class="score-max">/5</span></div>
<div class="detail"><ul>
  <li><span class="percent">40</span></li>
  <li><span class="percent">10</span></li>
  <li><span class="percent">3</span></li>
  <li><span>no count here</span></li>
  <li><span class="percent">1</span></li>
</ul></div>
</body></html>`

func TestExtractDetailsFullPage(t *testing.T) {
	f := driver.NewFake()
	f.SetHTML(fullDetailHTML)
	s := newTestScraper(t, f, &recordingSink{})

	d := s.extractDetails(context.Background())

	if d.Name != "Deluxe Widget" || d.SellerName != "Widget Shop" {
		t.Errorf("name/seller: %q / %q", d.Name, d.SellerName)
	}
	if d.PositiveSellerRating != "91%" {
		t.Errorf("positive rating: %q", d.PositiveSellerRating)
	}
	if d.OverallRating != "4.8/5" {
		t.Errorf("overall rating: %q", d.OverallRating)
	}

	// Trailing crumb duplicating the product name is excluded.
	if len(d.Categories) != 2 || d.Categories[0] != "Home" || d.Categories[1] != "Gadgets" {
		t.Errorf("categories: %v", d.Categories)
	}

	if len(d.ImageURLs) != 2 {
		t.Errorf("gallery: %v", d.ImageURLs)
	}

	// Rows map 5→1 in UI order; the row without a count defaults to zero.
	want := map[int]int{5: 40, 4: 10, 3: 3, 2: 0, 1: 1}
	for star, count := range want {
		if d.RatingHistogram[star] != count {
			t.Errorf("histogram[%d] = %d; want %d", star, d.RatingHistogram[star], count)
		}
	}
}

func TestExtractDetailsRatingNeedsBothSpans(t *testing.T) {
	f := driver.NewFake()
	f.SetHTML(`<html><body>
<h1 class="pdp-mod-product-badge-title">Half Widget</h1>
<div class="score"><span class="score-average">4.8</span></div>
</body></html>`)
	s := newTestScraper(t, f, &recordingSink{})

	d := s.extractDetails(context.Background())

	if d.OverallRating != "" {
		t.Errorf("overall rating without a score-max span should be empty, got %q", d.OverallRating)
	}
}

func TestExtractDetailsPartialPage(t *testing.T) {
	f := driver.NewFake()
	f.SetHTML(`<html><body><h1 class="pdp-mod-product-badge-title">Bare Widget</h1></body></html>`)
	s := newTestScraper(t, f, &recordingSink{})

	d := s.extractDetails(context.Background())

	if d.Name != "Bare Widget" {
		t.Errorf("name: %q", d.Name)
	}
	if d.SellerName != "" || d.OverallRating != "" || len(d.Categories) != 0 ||
		len(d.ImageURLs) != 0 || len(d.RatingHistogram) != 0 {
		t.Errorf("missing fields must degrade to empty values: %+v", d)
	}
}

func intPtr(n int) *int { return &n }
