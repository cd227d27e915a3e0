package main

import (
	"fmt"
	"regexp"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/browse"
)

// Run executes the screenshot command.
func (c *ScreenshotCmd) Run(deps *Dependencies) error {
	opts := renderOptions(deps.Config)
	if c.Width > 0 {
		opts.Width = c.Width
	}
	if c.Height > 0 {
		opts.Height = c.Height
	}
	opts.FullPage = c.FullPage

	data, err := deps.Renderer.RenderURL(deps.Ctx, c.URL, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	path, err := deps.Store.Save(c.URL, 0, data, opts.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved: %s\n", path)
	return nil
}

// Run executes the screenshots command.
func (c *ScreenshotsCmd) Run(deps *Dependencies) error {
	filter, err := compileURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	runner := &browse.BatchRunner{
		Sitemaps:    deps.Sitemaps,
		Renderer:    deps.Renderer,
		Store:       deps.Store,
		RateLimiter: browse.NewDomainLimiter(c.Rate),
		Render:      renderOptions(deps.Config),
		Concurrency: c.Concurrency,
		RetryDelays: deps.RetryDelays,
	}

	result, err := runner.Run(deps.Ctx, c.URL, filter, func(event browse.ProgressEvent) {
		switch event.Type {
		case browse.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Capturing %d pages\n", event.Total)
		case browse.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] Saved: %s\n", event.Completed, event.Total, event.Path)
		case browse.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] Failed: %s: %s\n", event.Completed, event.Total, event.URL, event.Error)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d saved, %d failed, %d skipped\n",
		result.Saved, result.Failed, result.Skipped)
	return nil
}

func renderOptions(cfg epollo.Config) epollo.RenderOptions {
	return epollo.RenderOptions{
		Width:        cfg.Screenshot.Width,
		Height:       cfg.Screenshot.Height,
		FullPage:     cfg.Screenshot.FullPage,
		Format:       cfg.Screenshot.Format,
		Quality:      cfg.Screenshot.Quality,
		HideOverlays: true,
	}
}

func compileURLFilter(include, exclude []string) (*epollo.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &epollo.URLFilter{}
	for _, expr := range include {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, epollo.Errorf(epollo.EINVALID, "invalid filter %q: %s", expr, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, epollo.Errorf(epollo.EINVALID, "invalid exclude %q: %s", expr, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
