package goquery

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mgirard/ecoute"
)

var _ ecoute.CategoryDiscoverer = (*CategoryDiscoverer)(nil)

// CategoryDiscoverer scans a section index page for category listing links.
// A category link is recognized by its path: a trailing level token
// (a1/a2/b1/b2/c1c2, case-insensitive) immediately before a trailing slash.
type CategoryDiscoverer struct {
	baseURL *url.URL
}

// NewCategoryDiscoverer creates a discoverer resolving relative hrefs
// against baseURL.
func NewCategoryDiscoverer(baseURL string) (*CategoryDiscoverer, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ecoute.Errorf(ecoute.EINVALID, "invalid base URL: %v", err)
	}
	return &CategoryDiscoverer{baseURL: base}, nil
}

// DiscoverCategories returns one CategoryRef per matching link in document
// order. Duplicate links are kept; the crawler deduplicates by full URL.
func (d *CategoryDiscoverer) DiscoverCategories(html string, section ecoute.Section) ([]ecoute.CategoryRef, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	var refs []ecoute.CategoryRef
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(d.baseURL, href)
		if resolved == "" {
			return
		}

		target, err := url.Parse(resolved)
		if err != nil {
			return
		}
		levelToken, categorySegment, ok := splitCategoryPath(target.Path)
		if !ok {
			return
		}
		level, ok := ecoute.ParseLevel(levelToken)
		if !ok {
			return
		}

		refs = append(refs, ecoute.CategoryRef{
			URL:      resolved,
			Section:  section,
			Level:    level,
			Category: categoryLabel(categorySegment),
		})
	})

	return refs, nil
}

// splitCategoryPath extracts the trailing level token and the path segment
// preceding it. Returns ok=false when the path does not end in a level
// token followed by a slash.
func splitCategoryPath(path string) (levelToken, categorySegment string, ok bool) {
	if !strings.HasSuffix(path, "/") {
		return "", "", false
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 {
		return "", "", false
	}
	last := segments[len(segments)-1]
	switch strings.ToLower(last) {
	case "a1", "a2", "b1", "b2", "c1c2":
	default:
		return "", "", false
	}
	if len(segments) >= 2 {
		return last, segments[len(segments)-2], true
	}
	return last, "", true
}

// categoryLabel turns a URL path segment into a display label: URL-decoded,
// first rune capitalized, rest lowercased. Falls back to the Unknown
// sentinel when the segment is missing or undecodable.
func categoryLabel(segment string) string {
	decoded, err := url.PathUnescape(segment)
	if err != nil || decoded == "" {
		return ecoute.UnknownCategory
	}
	lowered := strings.ToLower(decoded)
	r, size := utf8.DecodeRuneInString(lowered)
	return string(unicode.ToUpper(r)) + lowered[size:]
}
