package main

import (
	"fmt"
	"io"

	"github.com/epollo/epollo"
)

// Run executes the digest command.
func (c *DigestCmd) Run(deps *Dependencies) error {
	var digest string
	var err error

	if c.URL == "-" {
		var markdown []byte
		markdown, err = io.ReadAll(deps.Stdin)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
			return err
		}
		digest, err = deps.Digester.Digest(deps.Ctx, string(markdown))
	} else {
		digest, err = deps.Reader.Digest(deps.Ctx, c.URL)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epollo.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, digest)
	return nil
}
