package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mgirard/ecoute"
)

var _ ecoute.DetailParser = (*DetailParser)(nil)

var (
	// levelTokenRe finds standalone proficiency tokens in body text.
	// C1 and C2 are detected individually; normalization into the
	// combined C1C2 bucket happens when the detail merges onto a stub.
	levelTokenRe = regexp.MustCompile(`(?i)\b(A1|A2|B1|B2|C1|C2)\b`)

	// scriptSourcesRe matches the player config fragment embedded in
	// inline scripts: "sources":[{"url":"...mp3..."}].
	scriptSourcesRe = regexp.MustCompile(`"sources"\s*:\s*\[\s*\{[^}]*?"url"\s*:\s*"([^"]*\.mp3[^"]*)"`)

	// scriptMP3Re matches any http(s) .mp3 URL in inline script text,
	// tolerating JSON-escaped slashes.
	scriptMP3Re = regexp.MustCompile(`https?:(?:\\?/){2}[^"'\s]*?\.mp3[^"'\s]*`)

	// bracketedRe matches bracketed annotation text inside transcripts,
	// e.g. source/attribution asides.
	bracketedRe = regexp.MustCompile(`\[[^\[\]]+\]`)

	// escapedBracketRe matches the backslash escapes the markdown
	// converter puts in front of literal brackets. They must be undone
	// before bracketedRe can see the annotation.
	escapedBracketRe = regexp.MustCompile(`\\([\[\]])`)

	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// audioExtractor is one step of the ordered audio fallback chain. It
// returns "" when the step finds nothing.
type audioExtractor func(doc *goquery.Document, scripts string) string

// DetailParser extracts enrichment fields from an exercise detail page.
// Every field degrades independently to absent; parse misses are not
// errors.
type DetailParser struct {
	rules     ecoute.DetailRules
	converter ecoute.Converter
	audio     []audioExtractor
}

// NewDetailParser creates a parser driven by the given rules. The
// converter renders the transcript region to text; it may be nil, in
// which case the region's plain text is used.
func NewDetailParser(rules ecoute.ScrapeRules, converter ecoute.Converter) *DetailParser {
	p := &DetailParser{
		rules:     rules.Detail,
		converter: converter,
	}
	// Strict ordered fallback: each step runs only if the previous
	// yielded nothing.
	p.audio = []audioExtractor{
		p.audioFromElement,
		p.audioFromDataAttr,
		p.audioFromScriptSources,
		p.audioFromScriptCDN,
		p.audioFromScriptAny,
	}
	return p
}

// ParseDetail parses the page. The returned detail is never nil on a nil
// error; absent fields are empty.
func (p *DetailParser) ParseDetail(html string) (*ecoute.ExerciseDetail, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	scripts := inlineScriptText(doc)

	detail := &ecoute.ExerciseDetail{
		AudioURL:    firstMatch(p.audio, doc, scripts),
		H5PEmbedURL: p.quizEmbedURL(doc),
		Level:       p.level(doc),
		Title:       strings.TrimSpace(doc.Find(p.rules.Heading).First().Text()),
		Transcript:  p.transcript(doc),
	}
	return detail, nil
}

// firstMatch runs the extractor chain in order, short-circuiting on the
// first non-empty result.
func firstMatch(chain []audioExtractor, doc *goquery.Document, scripts string) string {
	for _, extract := range chain {
		if v := extract(doc, scripts); v != "" {
			return v
		}
	}
	return ""
}

func (p *DetailParser) audioFromElement(doc *goquery.Document, _ string) string {
	return firstAttr(doc.Find(p.rules.Audio).First(), "src")
}

func (p *DetailParser) audioFromDataAttr(doc *goquery.Document, _ string) string {
	for _, attr := range p.rules.AudioDataAttrs {
		found := ""
		doc.Find("[" + attr + "]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if v := firstAttr(sel, attr); strings.Contains(v, ".mp3") {
				found = v
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func (p *DetailParser) audioFromScriptSources(_ *goquery.Document, scripts string) string {
	if m := scriptSourcesRe.FindStringSubmatch(scripts); m != nil {
		return unescapeScriptURL(m[1])
	}
	return ""
}

func (p *DetailParser) audioFromScriptCDN(_ *goquery.Document, scripts string) string {
	for _, candidate := range scriptMP3Re.FindAllString(scripts, -1) {
		candidate = unescapeScriptURL(candidate)
		for _, host := range p.rules.AudioCDNHosts {
			if strings.Contains(candidate, host) {
				return candidate
			}
		}
	}
	return ""
}

func (p *DetailParser) audioFromScriptAny(_ *goquery.Document, scripts string) string {
	if m := scriptMP3Re.FindString(scripts); m != "" {
		return unescapeScriptURL(m)
	}
	return ""
}

// quizEmbedURL returns the src of the first iframe whose address contains
// the quiz-platform marker token.
func (p *DetailParser) quizEmbedURL(doc *goquery.Document) string {
	found := ""
	doc.Find("iframe[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		if strings.Contains(strings.ToLower(src), p.rules.QuizMarker) {
			found = strings.TrimSpace(src)
			return false
		}
		return true
	})
	return found
}

// level scans the rendered body text for the first proficiency token.
func (p *DetailParser) level(doc *goquery.Document) string {
	body := doc.Find("body").Text()
	if m := levelTokenRe.FindString(body); m != "" {
		return strings.ToUpper(m)
	}
	return ""
}

// transcript extracts the transcript-labeled region. Bracketed annotations
// are normalized onto their own line. Text below the minimum-content
// threshold is noise (a bare "Transcription" heading, a PDF link, a "see
// more" stub) and is discarded.
func (p *DetailParser) transcript(doc *goquery.Document) string {
	region := doc.Find(p.rules.TranscriptRegion).First()
	if region.Length() == 0 {
		return ""
	}

	text := p.regionText(region)
	text = bracketedRe.ReplaceAllStringFunc(text, func(m string) string {
		return "\n" + m + "\n"
	})
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) < p.rules.TranscriptMinLen {
		return ""
	}
	return text
}

// regionText renders the region through the markdown converter when one is
// configured, preserving paragraph structure; otherwise plain text.
func (p *DetailParser) regionText(region *goquery.Selection) string {
	if p.converter != nil {
		if html, err := region.Html(); err == nil {
			if md, err := p.converter.Convert(html); err == nil && strings.TrimSpace(md) != "" {
				return escapedBracketRe.ReplaceAllString(md, "$1")
			}
		}
	}
	return region.Text()
}

// inlineScriptText concatenates the text of all inline scripts.
func inlineScriptText(doc *goquery.Document) string {
	var b strings.Builder
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
		b.WriteString("\n")
	})
	return b.String()
}

// unescapeScriptURL undoes JSON slash escaping in URLs lifted from inline
// script text.
func unescapeScriptURL(u string) string {
	return strings.ReplaceAll(u, `\/`, `/`)
}
