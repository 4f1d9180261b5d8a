package services

import (
	"fmt"
	"strings"

	"daraz-scraper/models"
)

// PrintRunStats renders the run summary to stdout once a scrape finishes.
func PrintRunStats(stats models.RunStats) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  DARAZ REVIEW SCRAPE SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Listing pages\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Visited : \033[1m%d\033[0m\n", stats.ListingPagesVisited)
	fmt.Printf("  Skipped : \033[1m%d\033[0m\n", stats.ListingPagesSkipped)
	fmt.Println()

	fmt.Printf("\033[1;33m  Products\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Cards seen            : \033[1m%d\033[0m\n", stats.CardsSeen)
	fmt.Printf("  Scraped               : \033[1;32m%d\033[0m\n", stats.ProductsScraped)
	fmt.Printf("  Skipped (load failed) : %d\n", stats.ProductsSkippedNav)
	fmt.Printf("  Skipped (no ratings)  : %d\n", stats.ProductsNoRatings)
	fmt.Printf("  Skipped (no reviews)  : %d\n", stats.ProductsNoReviews)
	fmt.Println()

	fmt.Printf("\033[1;33m  Reviews\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Collected    : \033[1;32m%d\033[0m\n", stats.ReviewsCollected)
	fmt.Printf("  Rows written : \033[1;32m%d\033[0m\n", stats.RowsWritten)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}
