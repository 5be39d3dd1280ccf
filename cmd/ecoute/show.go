package main

import (
	"fmt"
	"strings"

	"github.com/mgirard/ecoute"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	ex, err := deps.Exercises.FindExerciseByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:         %s\n", ex.ID)
	fmt.Fprintf(deps.Stdout, "Title:      %s\n", ex.Title)
	fmt.Fprintf(deps.Stdout, "Level:      %s\n", ex.Level)
	fmt.Fprintf(deps.Stdout, "Section:    %s\n", ex.Section)
	fmt.Fprintf(deps.Stdout, "Categories: %s\n", strings.Join(ex.Categories, ", "))
	fmt.Fprintf(deps.Stdout, "Source:     %s\n", ex.SourceURL)
	if ex.AudioURL != "" {
		fmt.Fprintf(deps.Stdout, "Audio:      %s\n", ex.AudioURL)
	}
	if ex.H5PEmbedURL != "" {
		fmt.Fprintf(deps.Stdout, "Quiz:       %s\n", ex.H5PEmbedURL)
	}
	if ex.PublishedAt != nil {
		fmt.Fprintf(deps.Stdout, "Published:  %s\n", ex.PublishedAt.Format("2006-01-02"))
	}

	if ex.Transcript != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", ex.Transcript)
	}

	return nil
}
