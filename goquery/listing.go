package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mgirard/ecoute"
)

var _ ecoute.ListingParser = (*ListingParser)(nil)

// urlDateRe matches an 8-digit YYYYMMDD token in a URL path immediately
// preceding a separator.
var urlDateRe = regexp.MustCompile(`(\d{8})[-_./]`)

// ListingParser extracts exercise stubs from category listing pages.
// It tries the primary article-listing rules first and falls back to the
// secondary podcast-listing rules when the primary yields nothing.
type ListingParser struct {
	rules ecoute.ListingRules
}

// NewListingParser creates a parser driven by the given rules.
func NewListingParser(rules ecoute.ScrapeRules) *ListingParser {
	return &ListingParser{rules: rules.Listing}
}

// ParsePage parses one listing page. Level, category and section on every
// stub come from ref; pageNumber is 1-based and only used for pagination
// detection.
func (p *ListingParser) ParsePage(html string, ref ecoute.CategoryRef, pageNumber int) (*ecoute.ListingPage, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(ref.URL)
	if err != nil {
		return nil, ecoute.Errorf(ecoute.EINVALID, "invalid category URL: %v", err)
	}

	stubs := p.extractStubs(doc, base, ref, p.rules.Primary)
	if len(stubs) == 0 {
		stubs = p.extractStubs(doc, base, ref, p.rules.Secondary)
	}

	return &ecoute.ListingPage{
		Stubs:   stubs,
		HasMore: p.hasMore(doc, pageNumber),
	}, nil
}

// extractStubs walks the blocks matched by one rule set. Blocks missing a
// resolvable href or a non-empty title are skipped; within the page the
// first stub per source URL wins.
func (p *ListingParser) extractStubs(doc *goquery.Document, base *url.URL, ref ecoute.CategoryRef, rules ecoute.BlockRules) []ecoute.ExerciseStub {
	var stubs []ecoute.ExerciseStub
	seen := make(map[string]bool)

	doc.Find(rules.Block).Each(func(_ int, block *goquery.Selection) {
		link := block.Find(rules.Link).First()
		href, _ := link.Attr("href")
		sourceURL := resolveURL(base, href)
		if sourceURL == "" {
			return
		}
		if seen[sourceURL] {
			return
		}

		title := strings.TrimSpace(block.Find(rules.Heading).First().Text())
		if title == "" && rules.TitleAttr != "" {
			title = strings.TrimSpace(firstAttr(link, rules.TitleAttr))
		}
		if title == "" {
			return
		}

		stub := ecoute.ExerciseStub{
			Title:       title,
			Level:       ref.Level,
			Category:    ref.Category,
			Section:     ref.Section,
			SourceURL:   sourceURL,
			PublishedAt: p.publishedAt(block, rules, sourceURL),
		}
		if img := block.Find(rules.Image).First(); img.Length() > 0 {
			attrs := append([]string{"src"}, rules.LazyAttrs...)
			stub.ThumbnailURL = firstAttr(img, attrs...)
		}

		seen[sourceURL] = true
		stubs = append(stubs, stub)
	})

	return stubs
}

// publishedAt reads a machine-readable timestamp from the block, falling
// back to a YYYYMMDD token embedded in the source URL's path.
func (p *ListingParser) publishedAt(block *goquery.Selection, rules ecoute.BlockRules, sourceURL string) *time.Time {
	if rules.Timestamp != "" {
		if raw := firstAttr(block.Find(rules.Timestamp).First(), "datetime"); raw != "" {
			for _, layout := range []string{time.RFC3339, "2006-01-02"} {
				if t, err := time.Parse(layout, raw); err == nil {
					return &t
				}
			}
		}
	}

	if u, err := url.Parse(sourceURL); err == nil {
		if m := urlDateRe.FindStringSubmatch(u.Path); m != nil {
			if t, err := time.Parse("20060102", m[1]); err == nil {
				return &t
			}
		}
	}
	return nil
}

// hasMore reports whether the page points at a further page: a
// pagination-next marker, or any link addressed to pageNumber+1.
func (p *ListingParser) hasMore(doc *goquery.Document, pageNumber int) bool {
	for _, selector := range p.rules.NextPage {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}

	next := strconv.Itoa(pageNumber + 1)
	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return true
		}
		if u.Query().Get(p.rules.PageParam) == next {
			found = true
			return false
		}
		return true
	})
	return found
}
