package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ergochat/readline"
	"github.com/fwojciec/catalogo"
	"github.com/fwojciec/catalogo/catalog"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("find"),
	readline.PcItem("type",
		readline.PcItem("ALL"),
		readline.PcItem("B"),
		readline.PcItem("S"),
		readline.PcItem("O"),
	),
	readline.PcItem("group"),
	readline.PcItem("class"),
	readline.PcItem("family"),
	readline.PcItem("options"),
	readline.PcItem("next"),
	readline.PcItem("prev"),
	readline.PcItem("page"),
	readline.PcItem("show"),
	readline.PcItem("clear"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

const browseHelp = `Commands:
  find <text>      search item names and SIGA codes (empty clears)
  type <ALL|B|S|O> filter by goods, services or works
  group <name>     filter by group (empty clears group, class and family)
  class <name>     filter by class within the group
  family <name>    filter by family within the class
  options          list the values available for the current filters
  next, prev       move between pages
  page <n>         jump to a page
  show <code>      show a record
  clear            remove every filter
  exit             leave
`

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	if status := deps.Catalog.CheckReadiness(deps.Ctx); status != catalogo.StatusReady {
		fmt.Fprintf(deps.Stderr, "error: catalog is %s. Run 'catalogo status' for details.\n", status)
		return catalogo.Errorf(catalogo.ECONFLICT, "catalog is not ready (%s)", status)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "siga> ",
		HistoryFile:       c.History,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,

		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer rl.Close()

	b := NewBrowser(deps.Catalog, deps.Stdout, c.Debounce)
	defer b.Close()

	fmt.Fprint(deps.Stdout, browseHelp)
	b.Refresh(deps.Ctx)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if b.Handle(deps.Ctx, line) {
			return nil
		}
	}
}

// filterInput drops Ctrl-Z so the session cannot be suspended mid-line.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}

// Browser holds the criteria of an interactive session. Search text is
// debounced; every other change queries at once.
type Browser struct {
	catalog catalogo.CatalogService
	out     io.Writer

	mu       sync.Mutex // guards criteria, hasNext and writes to out
	criteria catalogo.Criteria
	hasNext  bool

	debouncer *catalog.Debouncer
}

// NewBrowser returns a Browser writing to out.
func NewBrowser(svc catalogo.CatalogService, out io.Writer, wait time.Duration) *Browser {
	b := &Browser{
		catalog:  svc,
		out:      out,
		criteria: catalogo.Criteria{Type: catalogo.TypeAll, Page: 1},
	}
	b.debouncer = &catalog.Debouncer{
		Engine:  pageQuery{svc},
		Deliver: b.deliver,
		Wait:    wait,
	}
	return b
}

// Close cancels any pending query.
func (b *Browser) Close() {
	b.debouncer.Stop()
}

// Refresh queries the current criteria at once.
func (b *Browser) Refresh(ctx context.Context) {
	b.mu.Lock()
	c := b.criteria
	b.mu.Unlock()
	b.debouncer.SubmitNow(ctx, c)
}

// Handle runs one command line and reports whether the session is over.
func (b *Browser) Handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.criteria
	next.Page = 1

	switch strings.ToLower(cmd) {
	case "":
		return false
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprint(b.out, browseHelp)
		return false
	case "find":
		next.SearchTerm = arg
		b.criteria = next
		b.hasNext = false
		b.debouncer.Submit(ctx, next)
		return false
	case "type":
		typ, err := catalogo.ParseTypeFilter(arg)
		if err != nil {
			fmt.Fprintf(b.out, "error: %s\n", catalogo.ErrorMessage(err))
			return false
		}
		next.Type = typ
	case "group":
		next.Selection = next.Selection.WithGroup(arg)
		b.printOptions(ctx, next.Selection)
	case "class":
		if next.Group == "" {
			fmt.Fprintln(b.out, "error: choose a group first")
			return false
		}
		next.Selection = next.Selection.WithClass(arg)
		b.printOptions(ctx, next.Selection)
	case "family":
		if next.Class == "" {
			fmt.Fprintln(b.out, "error: choose a class first")
			return false
		}
		next.Selection = next.Selection.WithFamily(arg)
	case "clear":
		next = catalogo.Criteria{Type: catalogo.TypeAll, Page: 1}
	case "options":
		b.printOptions(ctx, b.criteria.Selection)
		return false
	case "show":
		r, err := b.catalog.FindRecord(ctx, arg)
		if err != nil {
			fmt.Fprintf(b.out, "error: %s\n", catalogo.ErrorMessage(err))
			return false
		}
		fmt.Fprint(b.out, catalogo.FormatRecordDetail(r))
		return false
	case "next":
		if !b.hasNext {
			fmt.Fprintln(b.out, "Already on the last page.")
			return false
		}
		next.Page = b.criteria.Page + 1
	case "prev":
		if b.criteria.Page <= 1 {
			fmt.Fprintln(b.out, "Already on the first page.")
			return false
		}
		next.Page = b.criteria.Page - 1
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			fmt.Fprintln(b.out, "error: page must be a positive integer")
			return false
		}
		next.Page = n
	default:
		fmt.Fprintf(b.out, "unknown command %q, type 'help'\n", cmd)
		return false
	}

	// Paging waits for the page of the new criteria.
	b.criteria = next
	b.hasNext = false
	b.debouncer.SubmitNow(ctx, next)
	return false
}

// printOptions lists the values below the deepest level of sel.
// Callers hold b.mu.
func (b *Browser) printOptions(ctx context.Context, sel catalogo.Selection) {
	opts, err := b.catalog.FilterOptions(ctx, sel)
	if err != nil {
		fmt.Fprintf(b.out, "error: %s\n", catalogo.ErrorMessage(err))
		return
	}
	switch {
	case sel.Class != "":
		printList(b.out, "Families", opts.Families)
	case sel.Group != "":
		printList(b.out, "Classes", opts.Classes)
	default:
		printList(b.out, "Groups", opts.Groups)
	}
}

// deliver prints a resolved page and records whether another one follows.
func (b *Browser) deliver(c catalogo.Criteria, page *catalogo.Page, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		fmt.Fprintf(b.out, "error: %s\n", catalogo.ErrorMessage(err))
		return
	}
	b.hasNext = page.HasNext()
	printPage(b.out, page)
}

// pageQuery adapts a CatalogService to the catalogo.QueryEngine used by
// the debouncer.
type pageQuery struct {
	catalog catalogo.CatalogService
}

func (q pageQuery) Resolve(ctx context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
	return q.catalog.QueryPage(ctx, c)
}
