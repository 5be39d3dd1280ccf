package main

import (
	"fmt"
	"path/filepath"

	"github.com/mgirard/ecoute"
	"github.com/mgirard/ecoute/fs"
)

// Run executes the export command. The export is atomic: a failure leaves
// any previous export untouched.
func (c *ExportCmd) Run(deps *Dependencies) error {
	exercises, err := deps.Exercises.FindExercises(deps.Ctx, ecoute.ExerciseFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	if len(exercises) == 0 {
		fmt.Fprintln(deps.Stdout, "No exercises to export. Use 'ecoute sync' to crawl the site.")
		return nil
	}

	store := fs.NewExportStore(filepath.Dir(c.Dir), filepath.Base(c.Dir))
	for _, ex := range exercises {
		if err := store.WriteExercise(deps.Ctx, ex); err != nil {
			store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
			return err
		}
	}
	if err := store.Commit(); err != nil {
		store.Abort()
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d exercises to %s\n", len(exercises), c.Dir)
	return nil
}
