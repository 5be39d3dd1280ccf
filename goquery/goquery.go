// Package goquery implements the ecoute HTML parsers using CSS selectors.
// All selector match rules come from ecoute.ScrapeRules so that site
// markup drift is fixed by swapping rules, not code.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mgirard/ecoute"
)

// parseDocument wraps goquery document construction with the package's
// error convention.
func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ecoute.Errorf(ecoute.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// resolveURL resolves a possibly-relative href against a base URL.
// Returns "" if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

// firstAttr returns the first non-empty value among the given attributes
// of a selection.
func firstAttr(sel *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
