package main

import (
	"fmt"

	"github.com/mgirard/ecoute"
)

// Run executes the peek command. It runs the rule-driven detail parser and
// the selector-independent extractor side by side on one page, which is
// the quickest way to tell markup drift from a missing page.
func (c *PeekCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "== detail parser ==")
	detail, err := deps.Details.ParseDetail(html)
	if err != nil {
		fmt.Fprintf(deps.Stdout, "parse failed: %s\n", ecoute.ErrorMessage(err))
	} else {
		fmt.Fprintf(deps.Stdout, "Title:      %s\n", orMissing(detail.Title))
		fmt.Fprintf(deps.Stdout, "Level:      %s\n", orMissing(detail.Level))
		fmt.Fprintf(deps.Stdout, "Audio:      %s\n", orMissing(detail.AudioURL))
		fmt.Fprintf(deps.Stdout, "Quiz:       %s\n", orMissing(detail.H5PEmbedURL))
		fmt.Fprintf(deps.Stdout, "Transcript: %d chars\n", len(detail.Transcript))
	}

	fmt.Fprintln(deps.Stdout, "\n== content extractor ==")
	extracted, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stdout, "extraction failed: %s\n", ecoute.ErrorMessage(err))
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Title:      %s\n", orMissing(extracted.Title))
	fmt.Fprintf(deps.Stdout, "Content:    %d chars\n", len(extracted.ContentHTML))

	return nil
}

func orMissing(s string) string {
	if s == "" {
		return "(not found)"
	}
	return s
}
