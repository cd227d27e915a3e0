package main

import (
	"fmt"
	"io"
	"os"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/browse"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	return writeView(deps, deps.Loader.Load(deps.Ctx, c.URL), c.Output)
}

// Run executes the summary command.
func (c *SummaryCmd) Run(deps *Dependencies) error {
	return writeView(deps, deps.Loader.Load(deps.Ctx, c.URL), c.Output)
}

// writeView writes the view HTML to the output file, or stdout when no
// file is given. The view always carries displayable HTML; a non-nil
// view error still fails the command after the error page is written.
func writeView(deps *Dependencies, view *browse.View, output string) error {
	var w io.Writer = deps.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
			return err
		}
		defer f.Close()
		w = f
	}

	if _, err := io.WriteString(w, view.HTML); err != nil {
		return err
	}

	if view.FilterErr != nil {
		fmt.Fprintf(deps.Stderr, "warning: content filtering unavailable, showing unfiltered page: %s\n",
			epollo.ErrorMessage(view.FilterErr))
	}

	if view.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(view.Err))
		return view.Err
	}
	return nil
}
