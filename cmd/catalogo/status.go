package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/catalogo"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status := deps.Catalog.CheckReadiness(deps.Ctx)
	fmt.Fprintf(deps.Stdout, "Status:   %s\n", status)

	if n, err := deps.Store.Count(deps.Ctx); err == nil {
		fmt.Fprintf(deps.Stdout, "Records:  %s\n", catalogo.FormatCount(n))
	}

	state, err := deps.States.FindSyncState(deps.Ctx)
	switch {
	case catalogo.ErrorCode(err) == catalogo.ENOTFOUND:
	case err != nil:
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		return err
	default:
		fmt.Fprintf(deps.Stdout, "Last sync: %s (%s)\n", state.StartedAt.Local().Format(time.DateTime), state.Status)
		if state.FeedHash != "" {
			fmt.Fprintf(deps.Stdout, "Feed:     %s\n", state.FeedHash)
		}
		if state.Error != "" {
			fmt.Fprintf(deps.Stdout, "Error:    %s\n", state.Error)
		}
	}

	switch status {
	case catalogo.StatusEmpty:
		fmt.Fprintln(deps.Stdout, "Use 'catalogo sync --feed <file>' to load the catalog.")
	case catalogo.StatusError:
		fmt.Fprintln(deps.Stdout, "Use 'catalogo sync --reset --feed <file>' to load it again.")
	}
	return nil
}
