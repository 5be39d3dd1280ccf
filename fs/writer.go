// Package fs exports stored exercises as markdown files.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgirard/ecoute"
)

// ExercisePath returns the relative file path for an exercise:
// <section>/<id>-<title-slug>.md.
func ExercisePath(ex *ecoute.Exercise) string {
	name := ex.ID
	if slug := slugify(ex.Title); slug != "" {
		name += "-" + slug
	}
	return filepath.Join(string(ex.Section), name+".md")
}

// slugify lowercases the title and keeps ASCII letters and digits,
// collapsing everything else into single hyphens. Accented characters are
// dropped rather than transliterated; the short ID keeps names unique.
func slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		default:
			hyphen = true
		}
	}
	return b.String()
}

// FormatExercise formats an exercise with YAML frontmatter followed by
// its transcript.
func FormatExercise(ex *ecoute.Exercise) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("id: ")
	b.WriteString(ex.ID)
	b.WriteString("\nsource: ")
	b.WriteString(ex.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(ex.Title)
	b.WriteString("\nlevel: ")
	b.WriteString(string(ex.Level))
	b.WriteString("\nsection: ")
	b.WriteString(string(ex.Section))
	if len(ex.Categories) > 0 {
		b.WriteString("\ncategories: [")
		b.WriteString(strings.Join(ex.Categories, ", "))
		b.WriteString("]")
	}
	if ex.AudioURL != "" {
		b.WriteString("\naudio: ")
		b.WriteString(ex.AudioURL)
	}
	if ex.H5PEmbedURL != "" {
		b.WriteString("\nquiz: ")
		b.WriteString(ex.H5PEmbedURL)
	}
	if ex.PublishedAt != nil {
		b.WriteString("\npublished: ")
		b.WriteString(ex.PublishedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(ex.Transcript)
	b.WriteString("\n")
	return b.String()
}

// Ensure Writer implements ecoute.ExerciseWriter at compile time.
var _ ecoute.ExerciseWriter = (*Writer)(nil)

// Writer writes exercises as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteExercise writes an exercise to disk as a markdown file.
func (w *Writer) WriteExercise(ctx context.Context, ex *ecoute.Exercise) error {
	if err := ex.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, ExercisePath(ex))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatExercise(ex)), 0644)
}
