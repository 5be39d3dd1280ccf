package ecoute

// Converter converts HTML fragments to Markdown. The detail parser uses it
// to turn the transcript region into readable text with paragraph
// structure preserved.
type Converter interface {
	Convert(html string) (string, error)
}
