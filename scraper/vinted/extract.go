package vinted

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"vinted-scanner/models"
)

const (
	// itemPathMarker distinguishes item detail links from navigational
	// links (profiles, help pages) inside a listing card.
	itemPathMarker = "/items/"

	// titlePlaceholder is used when every title source comes up empty.
	titlePlaceholder = "New Listing"

	// maxTitleLen keeps titles inside notification-channel limits.
	maxTitleLen = 256
)

// containerSelectors are tried in priority order; the first selector
// that yields any nodes wins and the rest are never consulted. Results
// from different strategies are never merged.
var containerSelectors = []string{
	"div.feed-grid__item",
	"div[data-testid='grid-item']",
	"div.new-item-box__container",
}

// titleChildSelectors resolve a title from card children once the
// attribute sources are exhausted.
var titleChildSelectors = []string{
	"p[class*='title']",
	"h2[class*='title']",
	"h3[class*='title']",
	"span[class*='title']",
	"p[class*='ItemBox']",
}

// priceSelectors are tried in order; the stable test attribute first,
// class-pattern guesses after.
var priceSelectors = []string{
	"span[data-testid='price']",
	"[data-testid*='price']",
	"span[class*='price']",
	"p[class*='price']",
	"div[class*='price']",
}

// priceTextPattern is the last-resort price source: a currency-prefixed
// number anywhere in the card's text.
var priceTextPattern = regexp.MustCompile(`[£$€]\s*\d[\d,]*(?:\.\d{1,2})?`)

// Extract parses raw search-page markup into listing candidates. It
// returns the candidates alongside the number of cards the page
// yielded, which the ad-hoc check reports as a diagnostic. Cards whose
// resolved link is not an absolute HTTP(S) item-detail URL are dropped,
// not reported as errors.
func Extract(markup, siteBaseURL string) ([]*models.Listing, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, 0, fmt.Errorf("vinted: parse markup: %w", err)
	}

	base, err := url.Parse(siteBaseURL)
	if err != nil {
		return nil, 0, fmt.Errorf("vinted: parse site base URL: %w", err)
	}

	var cards *goquery.Selection
	for _, selector := range containerSelectors {
		found := doc.Find(selector)
		if found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil, 0, nil
	}

	var listings []*models.Listing
	cards.Each(func(_ int, card *goquery.Selection) {
		link, anchor := resolveLink(card, base)
		if link == "" {
			return
		}

		listings = append(listings, &models.Listing{
			Title:     resolveTitle(card, anchor),
			PriceText: resolvePriceText(card),
			URL:       link,
			ImageURL:  card.Find("img").First().AttrOr("src", ""),
			NewSeller: hasNewSellerBadge(card),
			FoundAt:   time.Now(),
		})
	})

	return listings, cards.Length(), nil
}

// resolveLink finds the first anchor with a non-empty href, resolves it
// against the site base, and validates that it is an absolute HTTP(S)
// item-detail URL. It returns the resolved link and the anchor node
// (the anchor doubles as a title source).
func resolveLink(card *goquery.Selection, base *url.URL) (string, *goquery.Selection) {
	var link string
	var anchor *goquery.Selection

	card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		resolved := base.ResolveReference(ref)

		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return false
		}
		if !strings.Contains(resolved.Path, itemPathMarker) {
			return false
		}

		link = resolved.String()
		anchor = a
		return false
	})

	return link, anchor
}

// resolveTitle tries, in order: title/aria-label attributes on the card,
// the same attributes on the anchor, the anchor text, then child
// elements with title-ish class names, and finally a placeholder.
func resolveTitle(card, anchor *goquery.Selection) string {
	sources := []string{
		card.AttrOr("title", ""),
		card.AttrOr("aria-label", ""),
	}
	if anchor != nil {
		sources = append(sources,
			anchor.AttrOr("title", ""),
			anchor.AttrOr("aria-label", ""),
			anchor.Text(),
		)
	}

	for _, raw := range sources {
		if title := normalizeTitle(raw); title != "" {
			return title
		}
	}

	for _, selector := range titleChildSelectors {
		if title := normalizeTitle(card.Find(selector).First().Text()); title != "" {
			return title
		}
	}

	return titlePlaceholder
}

func normalizeTitle(raw string) string {
	title := strings.Join(strings.Fields(raw), " ")
	runes := []rune(title)
	if len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}
	return title
}

// resolvePriceText tries the ordered selector list, then falls back to
// scanning the card's full text for a currency-prefixed number.
func resolvePriceText(card *goquery.Selection) string {
	for _, selector := range priceSelectors {
		if text := strings.TrimSpace(card.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return priceTextPattern.FindString(card.Text())
}

func hasNewSellerBadge(card *goquery.Selection) bool {
	badge := card.Find("[class*='badge'], [data-testid*='badge']").Text()
	if badge == "" {
		badge = card.Text()
	}
	return strings.Contains(strings.ToLower(badge), "new seller")
}
