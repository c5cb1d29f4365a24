package main

import (
	"fmt"

	"github.com/fwojciec/sitekit"
)

// Run executes the rewrite command.
func (c *RewriteCmd) Run(deps *Dependencies) error {
	root := c.Root
	if root == "" {
		root = deps.Config.RewriteRoot()
	}

	result, err := deps.Rewriter.RewriteTree(deps.Ctx, root, c.DryRun)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}

	verb := "rewrote"
	if c.DryRun {
		verb = "would rewrite"
	}
	for _, change := range result.Changed {
		fmt.Fprintf(deps.Stdout, "  %s %s (%d replacements)\n", verb, change.Path, change.Replacements)
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", failure.Path, failure.Err)
	}

	fmt.Fprintf(deps.Stdout, "Scanned %d files, %d changed, %d failed\n",
		result.Scanned, len(result.Changed), len(result.Failed))
	return nil
}
