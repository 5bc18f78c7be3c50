package catalog

import (
	"context"
	"iter"
	"strings"

	"github.com/fwojciec/catalogo"
	"golang.org/x/text/cases"
)

// Compile-time interface verification.
var _ catalogo.QueryEngine = (*Engine)(nil)

// Engine implements catalogo.QueryEngine. It starts from the most selective
// index the criteria allow and narrows the candidates in memory.
type Engine struct {
	Store catalogo.RecordStore
}

// NewEngine returns an Engine reading from store.
func NewEngine(store catalogo.RecordStore) *Engine {
	return &Engine{Store: store}
}

// Resolve returns one page of matches in record ID order. Scanning stops as
// soon as the page is full.
func (e *Engine) Resolve(ctx context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	match := newMatcher(c)
	skip := c.Offset()
	page := &catalogo.Page{
		Number:  c.Page,
		Records: make([]*catalogo.Record, 0, catalogo.PageSize),
	}

	for r, err := range e.candidates(ctx, c) {
		if err != nil {
			return nil, catalogo.Errorf(catalogo.EQUERY, "scan failed: %v", err)
		}
		if !match(r) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		page.Records = append(page.Records, r)
		if len(page.Records) == catalogo.PageSize {
			break
		}
	}
	return page, nil
}

// candidates selects the starting sequence: the group partition, then the
// category partition, then the full table.
func (e *Engine) candidates(ctx context.Context, c catalogo.Criteria) iter.Seq2[*catalogo.Record, error] {
	switch {
	case c.Group != "":
		return e.Store.ScanByIndex(ctx, catalogo.IndexGroupName, c.Group)
	case c.Type != "" && c.Type != catalogo.TypeAll:
		return e.Store.ScanByIndex(ctx, catalogo.IndexCategory, string(c.Type))
	default:
		return e.Store.ScanAll(ctx)
	}
}

// newMatcher returns the residual predicate for c. The result is not safe
// for concurrent use.
func newMatcher(c catalogo.Criteria) func(*catalogo.Record) bool {
	fold := cases.Fold()
	term := c.Term()
	folded := fold.String(term)

	return func(r *catalogo.Record) bool {
		if !c.Type.Matches(r.Category) {
			return false
		}
		if c.Group != "" && r.GroupName != c.Group {
			return false
		}
		if c.Class != "" && r.ClassName != c.Class {
			return false
		}
		if c.Family != "" && r.FamilyName != c.Family {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(fold.String(r.ItemName), folded) ||
			strings.Contains(r.SIGACode(), term)
	}
}
