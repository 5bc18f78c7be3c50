package catalog

import (
	"context"

	"github.com/fwojciec/catalogo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compile-time interface verification.
var _ catalogo.OptionResolver = (*Resolver)(nil)

// Resolver implements catalogo.OptionResolver over a record store. Lists
// are recomputed on every call from a single group partition.
type Resolver struct {
	Store catalogo.RecordStore
}

// NewResolver returns a Resolver reading from store.
func NewResolver(store catalogo.RecordStore) *Resolver {
	return &Resolver{Store: store}
}

// TopLevelGroups returns every group name.
func (r *Resolver) TopLevelGroups(ctx context.Context) ([]string, error) {
	values, err := r.Store.DistinctValues(ctx, catalogo.IndexGroupName)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return sorted(set), nil
}

// ClassesForGroup returns the class names observed under group.
func (r *Resolver) ClassesForGroup(ctx context.Context, group string) ([]string, error) {
	set := make(map[string]struct{})
	for rec, err := range r.Store.ScanByIndex(ctx, catalogo.IndexGroupName, group) {
		if err != nil {
			return nil, err
		}
		set[rec.ClassName] = struct{}{}
	}
	return sorted(set), nil
}

// FamiliesForGroupAndClass returns the family names observed under group
// and class.
func (r *Resolver) FamiliesForGroupAndClass(ctx context.Context, group, class string) ([]string, error) {
	set := make(map[string]struct{})
	for rec, err := range r.Store.ScanByIndex(ctx, catalogo.IndexGroupName, group) {
		if err != nil {
			return nil, err
		}
		if rec.ClassName != class {
			continue
		}
		set[rec.FamilyName] = struct{}{}
	}
	return sorted(set), nil
}

// Options returns the lists scoped to sel.
func (r *Resolver) Options(ctx context.Context, sel catalogo.Selection) (*catalogo.FilterOptions, error) {
	opts := &catalogo.FilterOptions{
		Groups:   []string{},
		Classes:  []string{},
		Families: []string{},
	}

	var err error
	if opts.Groups, err = r.TopLevelGroups(ctx); err != nil {
		return nil, err
	}
	if sel.Group == "" {
		return opts, nil
	}
	if opts.Classes, err = r.ClassesForGroup(ctx, sel.Group); err != nil {
		return nil, err
	}
	if sel.Class == "" {
		return opts, nil
	}
	if opts.Families, err = r.FamiliesForGroupAndClass(ctx, sel.Group, sel.Class); err != nil {
		return nil, err
	}
	return opts, nil
}

// sorted returns the non-empty members of set in Spanish collation order.
func sorted(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		if v == "" {
			continue
		}
		values = append(values, v)
	}
	// Collators keep internal buffers and are not safe for concurrent use.
	collate.New(language.Spanish).SortStrings(values)
	return values
}
