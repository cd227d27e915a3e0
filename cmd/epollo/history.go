package main

import (
	"fmt"

	"github.com/epollo/epollo"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := epollo.VisitFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	visits, err := deps.Visits.FindVisits(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	if len(visits) == 0 {
		fmt.Fprintln(deps.Stdout, "No visits recorded.")
		return nil
	}

	for _, v := range visits {
		title := v.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", v.VisitedAt.Format("2006-01-02 15:04"), v.URL, title)
	}

	return nil
}

// Run executes the history clear command.
func (c *HistoryClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return epollo.Errorf(epollo.EINVALID, "use --force to confirm deletion")
	}

	n, err := deps.Visits.DeleteVisits(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d visits\n", n)
	return nil
}
