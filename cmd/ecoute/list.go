package main

import (
	"fmt"
	"strings"

	"github.com/mgirard/ecoute"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := ecoute.ExerciseFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Section != "" {
		section := ecoute.Section(c.Section)
		if !ecoute.ValidSection(section) {
			return ecoute.Errorf(ecoute.EINVALID, "unknown section %q (known: %v)", c.Section, ecoute.Sections())
		}
		filter.Section = &section
	}
	if c.Level != "" {
		level, ok := ecoute.ParseLevel(c.Level)
		if !ok {
			return ecoute.Errorf(ecoute.EINVALID, "unknown level %q", c.Level)
		}
		filter.Level = &level
	}
	if c.Category != "" {
		filter.Category = &c.Category
	}

	exercises, err := deps.Exercises.FindExercises(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	if len(exercises) == 0 {
		fmt.Fprintln(deps.Stdout, "No exercises found. Use 'ecoute sync' to crawl the site.")
		return nil
	}

	for _, ex := range exercises {
		published := "          "
		if ex.PublishedAt != nil {
			published = ex.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(deps.Stdout, "%-8s  %-4s  %s  %-30s  %s\n",
			ex.ID, ex.Level, published, strings.Join(ex.Categories, ","), ex.Title)
	}

	return nil
}
