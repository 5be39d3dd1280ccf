package ecoute

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScrapeRules is the versioned set of markup match rules the parsers run
// against. The source site's HTML drifts over time; keeping the selectors
// as replaceable configuration isolates drift to a data change.
type ScrapeRules struct {
	// Version labels the site markup generation these rules target.
	Version string `yaml:"version"`

	Listing ListingRules `yaml:"listing"`
	Detail  DetailRules  `yaml:"detail"`
}

// ListingRules drive listing-page extraction and pagination detection.
type ListingRules struct {
	// Primary matches the site's article listing markup.
	Primary BlockRules `yaml:"primary"`

	// Secondary matches the older podcast listing markup, tried only
	// when Primary yields zero stubs.
	Secondary BlockRules `yaml:"secondary"`

	// NextPage are selectors whose presence marks a further page.
	NextPage []string `yaml:"nextPage"`

	// PageParam is the query parameter addressing pages beyond the first.
	PageParam string `yaml:"pageParam"`
}

// BlockRules describe how to pull stub fields out of one listing block.
type BlockRules struct {
	Block     string   `yaml:"block"`
	Link      string   `yaml:"link"`
	Heading   string   `yaml:"heading"`
	TitleAttr string   `yaml:"titleAttr"`
	Image     string   `yaml:"image"`
	LazyAttrs []string `yaml:"lazyAttrs"`
	Timestamp string   `yaml:"timestamp"`
}

// DetailRules drive detail-page enrichment.
type DetailRules struct {
	// Audio selects an explicit audio element source.
	Audio string `yaml:"audio"`

	// AudioDataAttrs are data attributes that may carry an .mp3 path.
	AudioDataAttrs []string `yaml:"audioDataAttrs"`

	// AudioCDNHosts are CDN host fragments recognized when scanning
	// inline script text for hosted .mp3 URLs.
	AudioCDNHosts []string `yaml:"audioCdnHosts"`

	// QuizMarker is the token identifying the embedded-quiz iframe.
	QuizMarker string `yaml:"quizMarker"`

	// Heading selects the page title.
	Heading string `yaml:"heading"`

	// TranscriptRegion selects the transcript-labeled content block.
	TranscriptRegion string `yaml:"transcriptRegion"`

	// TranscriptMinLen is the minimum rune count below which an
	// extracted transcript is treated as noise and discarded.
	TranscriptMinLen int `yaml:"transcriptMinLen"`
}

// DefaultRules returns the rules for the current site markup.
func DefaultRules() ScrapeRules {
	return ScrapeRules{
		Version: "2025-06",
		Listing: ListingRules{
			Primary: BlockRules{
				Block:     "article",
				Link:      "a[href]",
				Heading:   "h2, h3",
				Image:     "img",
				LazyAttrs: []string{"data-src", "data-lazy-src"},
				Timestamp: "time[datetime]",
			},
			Secondary: BlockRules{
				Block:     ".podcast-list li, .podcast-item",
				Link:      "a[href]",
				Heading:   "h3",
				TitleAttr: "title",
				Image:     "img",
				LazyAttrs: []string{"data-src"},
			},
			NextPage: []string{
				"li.pager__item--next a",
				"a[rel='next']",
				".pagination .next a",
			},
			PageParam: "page",
		},
		Detail: DetailRules{
			Audio:            "audio source[src], audio[src]",
			AudioDataAttrs:   []string{"data-audio", "data-sound-url", "data-mp3"},
			AudioCDNHosts:    []string{"cloudfront.net", "akamaized.net", "aod-rfi"},
			QuizMarker:       "h5p",
			Heading:          "h1",
			TranscriptRegion: ".transcription, #transcription, section.transcript, .tab-content .transcript",
			TranscriptMinLen: 120,
		},
	}
}

// LoadRules reads scrape rules from a YAML file.
func LoadRules(path string) (ScrapeRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScrapeRules{}, fmt.Errorf("read rules file: %w", err)
	}
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return ScrapeRules{}, Errorf(EINVALID, "invalid rules file %q: %v", path, err)
	}
	if rules.Detail.TranscriptMinLen <= 0 {
		return ScrapeRules{}, Errorf(EINVALID, "transcriptMinLen must be positive")
	}
	return rules, nil
}

// PageURL returns the URL addressing the given 1-based page of a category.
// Page 1 is the category's bare URL; later pages append the page parameter.
func (r ListingRules) PageURL(categoryURL string, page int) string {
	if page <= 1 {
		return categoryURL
	}
	sep := "?"
	if strings.Contains(categoryURL, "?") {
		sep = "&"
	}
	return categoryURL + sep + r.PageParam + "=" + strconv.Itoa(page)
}
