package mock

import "github.com/mgirard/ecoute"

var (
	_ ecoute.Converter = (*Converter)(nil)
	_ ecoute.Extractor = (*Extractor)(nil)
)

// Converter is a mock implementation of ecoute.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// Extractor is a mock implementation of ecoute.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*ecoute.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*ecoute.ExtractResult, error) {
	return e.ExtractFn(html)
}
