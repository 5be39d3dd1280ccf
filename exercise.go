package ecoute

import (
	"context"
	"time"
)

// Level is a language-proficiency tag attached to exercises.
type Level string

// Proficiency levels used by the source site's category pages.
// The site groups C1 and C2 into a single combined bucket.
const (
	LevelA1   Level = "A1"
	LevelA2   Level = "A2"
	LevelB1   Level = "B1"
	LevelB2   Level = "B2"
	LevelC1C2 Level = "C1C2"
)

// DefaultLevel is assumed when a page carries no detectable level.
const DefaultLevel = LevelA2

// ParseLevel normalizes a level token into one of the fixed levels.
// Detail pages may report C1 or C2 individually; both normalize to the
// combined C1C2 bucket. Returns false if the token is not a level.
func ParseLevel(token string) (Level, bool) {
	switch Level(normalizeLevelToken(token)) {
	case LevelA1:
		return LevelA1, true
	case LevelA2:
		return LevelA2, true
	case LevelB1:
		return LevelB1, true
	case LevelB2:
		return LevelB2, true
	case LevelC1C2, "C1", "C2":
		return LevelC1C2, true
	}
	return "", false
}

func normalizeLevelToken(token string) string {
	b := make([]byte, 0, len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}

// Section is a top-level content grouping on the source site.
type Section string

// Sections crawled independently; no cross-section link-following.
const (
	SectionActualite Section = "comprendre-actualite"
	SectionQuotidien Section = "communiquer-quotidien"
)

// Sections returns the fixed enumeration of crawlable site sections.
func Sections() []Section {
	return []Section{SectionActualite, SectionQuotidien}
}

// ValidSection reports whether s names a known site section.
func ValidSection(s Section) bool {
	for _, known := range Sections() {
		if s == known {
			return true
		}
	}
	return false
}

// Exercise is a persisted listening exercise record. ID is the URL-derived
// short ID assigned once per unique SourceURL; SourceURL is the natural key.
type Exercise struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Level        Level      `json:"level"`
	Section      Section    `json:"section"`
	Categories   []string   `json:"categories"`
	SourceURL    string     `json:"sourceUrl"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	AudioURL     string     `json:"audioUrl"`
	H5PEmbedURL  string     `json:"h5pEmbedUrl"`
	Transcript   string     `json:"transcript"`
	PublishedAt  *time.Time `json:"publishedAt"`
	ContentHash  string     `json:"contentHash"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Validate returns an error if the exercise contains invalid fields.
func (e *Exercise) Validate() error {
	if e.Title == "" {
		return Errorf(EINVALID, "exercise title required")
	}
	if e.SourceURL == "" {
		return Errorf(EINVALID, "exercise source URL required")
	}
	if !ValidSection(e.Section) {
		return Errorf(EINVALID, "unknown section %q", e.Section)
	}
	return nil
}

// HasCategory reports whether the exercise carries the given category tag.
func (e *Exercise) HasCategory(category string) bool {
	for _, c := range e.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ExerciseStub is a partially-populated exercise produced from a listing
// page, before detail enrichment. Stubs are ephemeral: created per crawl,
// merged into a persisted record or dropped as duplicates.
type ExerciseStub struct {
	Title        string
	Level        Level
	Category     string
	Section      Section
	SourceURL    string
	ThumbnailURL string
	PublishedAt  *time.Time
}

// ExerciseDetail holds enrichment fields parsed from an exercise detail
// page. Every field is optional; the empty value means "not found".
type ExerciseDetail struct {
	AudioURL    string
	H5PEmbedURL string
	Level       string // raw page token, may be "C1" or "C2"; normalized in Merge
	Title       string
	Transcript  string
}

// Merge overlays non-absent detail fields onto a stub and returns the
// combined record. Detail fields win when present; detail-page C1/C2
// levels normalize to the combined C1C2 bucket.
func (d ExerciseDetail) Merge(stub ExerciseStub) *Exercise {
	ex := &Exercise{
		Title:        stub.Title,
		Level:        stub.Level,
		Section:      stub.Section,
		Categories:   []string{stub.Category},
		SourceURL:    stub.SourceURL,
		ThumbnailURL: stub.ThumbnailURL,
		PublishedAt:  stub.PublishedAt,
	}
	if ex.Level == "" {
		ex.Level = DefaultLevel
	}
	if d.Title != "" {
		ex.Title = d.Title
	}
	if d.Level != "" {
		if level, ok := ParseLevel(d.Level); ok {
			ex.Level = level
		}
	}
	ex.AudioURL = d.AudioURL
	ex.H5PEmbedURL = d.H5PEmbedURL
	ex.Transcript = d.Transcript
	return ex
}

// ExerciseService represents a service for managing persisted exercises.
type ExerciseService interface {
	// CreateExercise creates a new exercise.
	// Returns ECONFLICT if the source URL or ID is already taken.
	CreateExercise(ctx context.Context, ex *Exercise) error

	// FindExerciseByID retrieves an exercise by its short ID.
	// Returns ENOTFOUND if the exercise does not exist.
	FindExerciseByID(ctx context.Context, id string) (*Exercise, error)

	// FindExerciseBySourceURL retrieves an exercise by its source URL.
	// Returns ENOTFOUND if no exercise has been scraped from that URL.
	FindExerciseBySourceURL(ctx context.Context, sourceURL string) (*Exercise, error)

	// FindExercises retrieves exercises matching the filter.
	FindExercises(ctx context.Context, filter ExerciseFilter) ([]*Exercise, error)

	// ListIDsAndSourceURLs returns the full identity mapping of assigned
	// short IDs to source URLs, used to seed ID resolution.
	ListIDsAndSourceURLs(ctx context.Context) (map[string]string, error)

	// UpdateExercise updates mutable fields of an existing exercise.
	// The ID is never reassigned. Returns ENOTFOUND if it does not exist.
	UpdateExercise(ctx context.Context, id string, upd ExerciseUpdate) (*Exercise, error)

	// AddCategoryTag attaches a category tag to an exercise.
	// Adding an already-present tag is a no-op.
	AddCategoryTag(ctx context.Context, id string, category string) error

	// DeleteExercise permanently removes an exercise.
	// Returns ENOTFOUND if the exercise does not exist.
	DeleteExercise(ctx context.Context, id string) error
}

// ExerciseFilter represents a filter for FindExercises.
type ExerciseFilter struct {
	ID        *string  `json:"id"`
	Section   *Section `json:"section"`
	Level     *Level   `json:"level"`
	Category  *string  `json:"category"`
	SourceURL *string  `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ExerciseUpdate represents mutable fields refreshed on re-crawl.
type ExerciseUpdate struct {
	Title        *string    `json:"title"`
	Level        *Level     `json:"level"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	AudioURL     *string    `json:"audioUrl"`
	H5PEmbedURL  *string    `json:"h5pEmbedUrl"`
	Transcript   *string    `json:"transcript"`
	PublishedAt  *time.Time `json:"publishedAt"`
	ContentHash  *string    `json:"contentHash"`
}

// SyncResult summarizes a section crawl: counts of created and refreshed
// exercises plus per-item error messages for pages that failed.
type SyncResult struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}
