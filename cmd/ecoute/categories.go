package main

import (
	"fmt"
	"strings"

	"github.com/mgirard/ecoute"
)

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	section := ecoute.Section(c.Section)
	if !ecoute.ValidSection(section) {
		return ecoute.Errorf(ecoute.EINVALID, "unknown section %q (known: %v)", c.Section, ecoute.Sections())
	}

	indexURL := strings.TrimSuffix(deps.BaseURL, "/") + "/" + string(section) + "/"
	html, err := deps.Fetcher.Fetch(deps.Ctx, indexURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	refs, err := deps.Categories.DiscoverCategories(html, section)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	if len(refs) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories found. The section index markup may have changed.")
		return nil
	}

	for _, ref := range refs {
		fmt.Fprintf(deps.Stdout, "%-4s  %-30s  %s\n", ref.Level, ref.Category, ref.URL)
	}

	return nil
}
