package main

import (
	"fmt"

	"github.com/fwojciec/catalogo"
)

// Run executes the options command. It lists the finest level the flags
// allow: groups, the classes of a group or the families of a class.
func (c *OptionsCmd) Run(deps *Dependencies) error {
	if c.Class != "" && c.Group == "" {
		fmt.Fprintln(deps.Stderr, "error: --class requires --group")
		return catalogo.Errorf(catalogo.EINVALID, "--class requires --group")
	}

	sel := catalogo.Selection{}.WithGroup(c.Group).WithClass(c.Class)
	opts, err := deps.Catalog.FilterOptions(deps.Ctx, sel)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		return err
	}

	switch {
	case sel.Class != "":
		printList(deps.Stdout, fmt.Sprintf("Families of %s / %s", sel.Group, sel.Class), opts.Families)
	case sel.Group != "":
		printList(deps.Stdout, fmt.Sprintf("Classes of %s", sel.Group), opts.Classes)
	default:
		printList(deps.Stdout, "Groups", opts.Groups)
	}
	return nil
}
