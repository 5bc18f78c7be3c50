package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/catalogo"
	"github.com/fwojciec/catalogo/csv"
	"golang.org/x/time/rate"
)

// progressInterval bounds how often sync progress is printed.
const progressInterval = 500 * time.Millisecond

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	if c.Feed == "" {
		fmt.Fprintln(deps.Stderr, "error: no feed file. Use --feed or set CATALOGO_FEED.")
		return catalogo.Errorf(catalogo.EINVALID, "feed file required")
	}

	feed, err := csv.Open(c.Feed, csv.Options{BatchSize: c.BatchSize, Encoding: c.Encoding})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		return err
	}
	defer feed.Close()

	if c.Reset {
		if err := deps.Catalog.Reset(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Loading %s\n", c.Feed)

	every := rate.Sometimes{Interval: progressInterval}
	progress := func(n int) {
		every.Do(func() {
			fmt.Fprintf(deps.Stdout, "  %s records\n", catalogo.FormatCount(n))
		})
	}

	result, err := deps.Catalog.StartSync(deps.Ctx, feed, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", catalogo.ErrorMessage(err))
		if catalogo.ErrorCode(err) == catalogo.ECONFLICT {
			fmt.Fprintln(deps.Stderr, "Hint: Use --reset to replace the current catalog")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Synced %s records in %d groups (%s)\n",
		catalogo.FormatCount(result.Inserted), len(result.Groups), result.Duration.Round(time.Millisecond))
	return nil
}
