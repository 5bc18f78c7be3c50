package main

import (
	"fmt"

	"github.com/fwojciec/catalogo"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	criteria, err := c.criteria()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		return err
	}

	page, err := deps.Catalog.QueryPage(deps.Ctx, criteria)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		if catalogo.ErrorCode(err) == catalogo.ECONFLICT {
			fmt.Fprintln(deps.Stderr, "Hint: Run 'catalogo status' to check the local catalog")
		}
		return err
	}

	printPage(deps.Stdout, page)
	if page.HasNext() {
		fmt.Fprintf(deps.Stdout, "More results: --page %d\n", page.Number+1)
	}
	return nil
}

// criteria validates the flags and builds the query.
func (c *SearchCmd) criteria() (catalogo.Criteria, error) {
	typ, err := catalogo.ParseTypeFilter(c.Type)
	if err != nil {
		return catalogo.Criteria{}, err
	}
	if c.Class != "" && c.Group == "" {
		return catalogo.Criteria{}, catalogo.Errorf(catalogo.EINVALID, "--class requires --group")
	}
	if c.Family != "" && c.Class == "" {
		return catalogo.Criteria{}, catalogo.Errorf(catalogo.EINVALID, "--family requires --class")
	}

	sel := catalogo.Selection{}.WithGroup(c.Group).WithClass(c.Class).WithFamily(c.Family)
	criteria := catalogo.Criteria{
		SearchTerm: c.Term,
		Type:       typ,
		Selection:  sel,
		Page:       c.Page,
	}
	return criteria, criteria.Validate()
}
