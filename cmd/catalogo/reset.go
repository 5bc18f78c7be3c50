package main

import (
	"fmt"

	"github.com/fwojciec/catalogo"
)

// Run executes the reset command.
func (c *ResetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return catalogo.Errorf(catalogo.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Catalog.Reset(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Catalog reset. Use 'catalogo sync' to load it again.")
	return nil
}
