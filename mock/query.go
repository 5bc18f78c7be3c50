package mock

import (
	"context"

	"github.com/fwojciec/catalogo"
)

var (
	_ catalogo.QueryEngine    = (*QueryEngine)(nil)
	_ catalogo.OptionResolver = (*OptionResolver)(nil)
)

// QueryEngine is a mock implementation of catalogo.QueryEngine.
type QueryEngine struct {
	ResolveFn func(ctx context.Context, c catalogo.Criteria) (*catalogo.Page, error)
}

func (e *QueryEngine) Resolve(ctx context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
	return e.ResolveFn(ctx, c)
}

// OptionResolver is a mock implementation of catalogo.OptionResolver.
type OptionResolver struct {
	TopLevelGroupsFn           func(ctx context.Context) ([]string, error)
	ClassesForGroupFn          func(ctx context.Context, group string) ([]string, error)
	FamiliesForGroupAndClassFn func(ctx context.Context, group, class string) ([]string, error)
	OptionsFn                  func(ctx context.Context, sel catalogo.Selection) (*catalogo.FilterOptions, error)
}

func (r *OptionResolver) TopLevelGroups(ctx context.Context) ([]string, error) {
	return r.TopLevelGroupsFn(ctx)
}

func (r *OptionResolver) ClassesForGroup(ctx context.Context, group string) ([]string, error) {
	return r.ClassesForGroupFn(ctx, group)
}

func (r *OptionResolver) FamiliesForGroupAndClass(ctx context.Context, group, class string) ([]string, error) {
	return r.FamiliesForGroupAndClassFn(ctx, group, class)
}

func (r *OptionResolver) Options(ctx context.Context, sel catalogo.Selection) (*catalogo.FilterOptions, error) {
	return r.OptionsFn(ctx, sel)
}
