package daraz

// CSS selectors used across the scraper.
// Centralising them makes future site-layout updates trivial.
const (
	// Listing page
	listingContainerSelector = `div[data-qa-locator="general-products"]`
	listingCardSelector      = `div.Bm3ON[data-qa-locator="product-item"][data-tracking="product-card"]`
	cardAnchorSelector       = `div._95X4G a[href]`
	cardImageSelector        = `div.picture-wrapper img[type="product"]`
	cardTitleSelector        = `div.RfADt a`
	cardPriceSelector        = `div.aBrP0 span.ooOxS`
	cardSoldSelector         = `span._1cEkb span`
	cardLocationSelector     = `span.oa6ri`

	// Product detail page
	detailTitleSelector       = `h1.pdp-mod-product-badge-title`
	reviewSummaryLinkSelector = `a.pdp-review-summary__link`
	ratingBadgeSelector       = `span.qzqFw`
	sellerNameSelector        = `a.seller-name__detail-name`
	positiveRatingSelector    = `div.seller-info-value.rating-positive`
	breadcrumbSelector        = `ul#J_breadcrumb li .breadcrumb_item_anchor span`
	galleryThumbSelector      = `img.pdp-mod-common-image.item-gallery__thumbnail-image`
	scoreAverageSelector      = `div.score span.score-average`
	scoreMaxSelector          = `div.score span.score-max`
	histogramRowSelector      = `div.detail ul li`
	histogramCountSelector    = `span.percent`

	// Review section
	reviewsRootSelector   = `div.mod-reviews`
	reviewItemSelector    = `div.item`
	reviewStarsSelector   = `div.container-star.starCtn.left img.star`
	reviewDateSelector    = `div.top span.title.right`
	reviewAuthorSelector  = `div.middle > span`
	reviewContentSelector = `div.item-content div.content`
	reviewImageSelector   = `div.review-image__list div.image`
	reviewLikesSelector   = `div.bottom span.left-content`
	nextButtonSelector    = `button.next-btn.next-btn-normal.next-btn-medium.next-pagination-item.next`
)

// starFilledToken appears in the image URL of a filled star indicator;
// counting matches yields the review's star rating.
const starFilledToken = "TB19ZvE"

// noRatingsMarker is the literal text the review-summary link shows for a
// product without any ratings.
const noRatingsMarker = "No Ratings"
