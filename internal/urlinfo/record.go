package urlinfo

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Record is one submitted URL together with the metadata the backend extracted from it.
type Record struct {
	PublicID        string   `json:"publicId"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Images          []string `json:"images"`
	StylesheetCount int      `json:"stylesheetCount"`
}

// Rates is the payload of the bitcoin exchange-rate resource.
type Rates struct {
	BitcoinEUR float64 `json:"bitcoin_eur"`
	EURToGBP   float64 `json:"eur_to_gbp"`
	BitcoinGBP float64 `json:"bitcoin_gbp"`
}

var titlePolicy = bluemonday.StrictPolicy()

// DisplayTitle returns the title without markup. Titles are scraped from
// arbitrary pages and occasionally carry tags or entities.
func (r Record) DisplayTitle() string {
	clean := html.UnescapeString(titlePolicy.Sanitize(r.Title))
	return strings.Join(strings.Fields(clean), " ")
}

// Host returns the host part of the record URL, or the raw URL when it does not parse.
func (r Record) Host() string {
	parsed, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil || parsed.Host == "" {
		return strings.TrimSpace(r.URL)
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// ImageURL returns the i-th gallery image as an absolute http(s) URL, resolving
// paths relative to the record URL.
func (r Record) ImageURL(i int) (string, bool) {
	if i < 0 || i >= len(r.Images) {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(r.Images[i]))
	if err != nil {
		return "", false
	}
	if !ref.IsAbs() {
		base, err := url.Parse(strings.TrimSpace(r.URL))
		if err != nil || base.Host == "" {
			return "", false
		}
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", false
	}
	return ref.String(), true
}
