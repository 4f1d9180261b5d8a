// Package extract is a library of total, fallback-friendly field lookups.
// Every function degrades to an empty or absent value on lookup failure, so
// one missing optional field never discards an otherwise-valid record.
package extract

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"daraz-scraper/driver"
)

var (
	// intRegexp captures the first run of digits with internal grouping commas.
	intRegexp = regexp.MustCompile(`(\d[\d,]*)`)
	// decimalRegexp strips everything except digits and a decimal point.
	decimalRegexp = regexp.MustCompile(`[^0-9.]`)
	// backgroundURLRegexp matches the url(...) payload of a background-image
	// style, quoted or unquoted.
	backgroundURLRegexp = regexp.MustCompile(`url\((["']?)(.+?)(["']?)\)`)
)

// Text returns the trimmed text of a node, or "" on any lookup failure.
func Text(ctx context.Context, d driver.PageDriver, n driver.Node) string {
	if n == nil {
		return ""
	}
	text, err := d.Text(ctx, n)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// Attr returns the trimmed value of a named attribute, or "" on any lookup
// failure including normal absence.
func Attr(ctx context.Context, d driver.PageDriver, n driver.Node, name string) string {
	if n == nil {
		return ""
	}
	v, err := d.Attr(ctx, n, name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// FindText locates selector under root (or the document when root is nil)
// and returns its trimmed text, or "" when the locator matches nothing.
func FindText(ctx context.Context, d driver.PageDriver, root driver.Node, selector string) string {
	n, err := findIn(ctx, d, root, selector)
	if err != nil {
		return ""
	}
	return Text(ctx, d, n)
}

// FindAttr is FindText for a named attribute.
func FindAttr(ctx context.Context, d driver.PageDriver, root driver.Node, selector, name string) string {
	n, err := findIn(ctx, d, root, selector)
	if err != nil {
		return ""
	}
	return Attr(ctx, d, n, name)
}

func findIn(ctx context.Context, d driver.PageDriver, root driver.Node, selector string) (driver.Node, error) {
	if root == nil {
		return d.Find(ctx, selector)
	}
	return d.FindIn(ctx, root, selector)
}

// IntFromText extracts the first run of digits from free text, with grouping
// commas removed. Returns nil when the text holds no digits.
func IntFromText(text string) *int {
	m := intRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

// DecimalFromText strips everything except digits and a decimal point and
// parses the remainder. Returns nil on empty or malformed input.
func DecimalFromText(text string) *float64 {
	cleaned := decimalRegexp.ReplaceAllString(text, "")
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// BackgroundImageURL parses a CSS style value of the form
// `background-image: url(...)` and returns the contained URL, or "" when the
// pattern does not match.
func BackgroundImageURL(style string) string {
	m := backgroundURLRegexp.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return m[2]
}

// NormalizeURL resolves href against base: protocol-relative URLs get an
// explicit https scheme, relative paths are joined to base, and an already
// absolute URL is returned unchanged.
func NormalizeURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
