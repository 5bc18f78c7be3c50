package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/catalogo"
)

// printPage writes one line per record followed by a page summary.
func printPage(w io.Writer, page *catalogo.Page) {
	if len(page.Records) == 0 {
		fmt.Fprintf(w, "No results on page %d.\n", page.Number)
		return
	}
	for _, r := range page.Records {
		fmt.Fprintln(w, catalogo.FormatRecordLine(r))
	}
	fmt.Fprintf(w, "Page %d, %d results\n", page.Number, len(page.Records))
}

// printList writes a titled list, one value per line.
func printList(w io.Writer, title string, values []string) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(values))
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
}
