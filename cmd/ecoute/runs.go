package main

import (
	"fmt"
	"time"

	"github.com/mgirard/ecoute"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindCrawlRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No sync runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %-22s  +%d ~%d !%d  %s\n",
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Section,
			run.Added, run.Updated, run.ErrorCount,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
		)
	}

	return nil
}
