package main

import (
	"fmt"

	"github.com/fwojciec/catalogo"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	r, err := deps.Catalog.FindRecord(deps.Ctx, c.Code)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, catalogo.FormatRecordDetail(r))
	return nil
}
