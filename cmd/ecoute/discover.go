package main

import (
	"fmt"
	"regexp"

	"github.com/mgirard/ecoute"
)

// Run executes the discover command. It lists exercise URLs published in
// the site's sitemaps that have no stored record yet.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	var filter *ecoute.URLFilter
	if len(c.Filter) > 0 {
		filter = &ecoute.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return ecoute.Errorf(ecoute.EINVALID, "invalid filter pattern %q: %v", pattern, err)
			}
			filter.Include = append(filter.Include, re)
		}
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, deps.BaseURL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	assigned, err := deps.Exercises.ListIDsAndSourceURLs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ecoute.ErrorMessage(err))
		return err
	}

	stored := make(map[string]bool, len(assigned))
	for _, sourceURL := range assigned {
		stored[sourceURL] = true
	}

	missing := 0
	for _, u := range urls {
		if stored[u] {
			continue
		}
		missing++
		fmt.Fprintln(deps.Stdout, u)
	}

	fmt.Fprintf(deps.Stdout, "\n%d sitemap URLs, %d stored, %d missing\n",
		len(urls), len(stored), missing)
	return nil
}
