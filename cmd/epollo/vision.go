package main

import (
	"fmt"
	"os"

	"github.com/epollo/epollo"
)

// Run executes the ocr command.
func (c *OcrCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Image)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	text, err := deps.OCR.ExtractText(deps.Ctx, data, c.Prompt)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}

// Run executes the headlines command.
func (c *HeadlinesCmd) Run(deps *Dependencies) error {
	image, err := deps.Renderer.RenderURL(deps.Ctx, c.URL, epollo.RenderOptions{
		FullPage:     true,
		Format:       epollo.FormatPNG,
		HideOverlays: true,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	headlines, err := deps.Headlines.ExtractHeadlines(deps.Ctx, image)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, headlines)
	return nil
}
