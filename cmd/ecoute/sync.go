package main

import (
	"fmt"

	"github.com/mgirard/ecoute"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	sections := ecoute.Sections()
	if c.Section != "" {
		section := ecoute.Section(c.Section)
		if !ecoute.ValidSection(section) {
			return ecoute.Errorf(ecoute.EINVALID, "unknown section %q (known: %v)", c.Section, ecoute.Sections())
		}
		sections = []ecoute.Section{section}
	}

	for _, section := range sections {
		fmt.Fprintf(deps.Stdout, "Syncing %s ...\n", section)

		result, err := deps.Crawler.CrawlSection(deps.Ctx, section)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "  %d added, %d updated, %d errors\n",
			result.Added, result.Updated, len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Fprintf(deps.Stderr, "  error: %s\n", msg)
		}
	}

	return nil
}
