package mock

import (
	"context"

	"github.com/fwojciec/catalogo"
)

var (
	_ catalogo.SyncStateService = (*SyncStateService)(nil)
	_ catalogo.StatusTracker    = (*StatusTracker)(nil)
	_ catalogo.CatalogService   = (*CatalogService)(nil)
)

// SyncStateService is a mock implementation of catalogo.SyncStateService.
type SyncStateService struct {
	FindSyncStateFn func(ctx context.Context) (*catalogo.SyncState, error)
	SaveSyncStateFn func(ctx context.Context, state *catalogo.SyncState) error
}

func (s *SyncStateService) FindSyncState(ctx context.Context) (*catalogo.SyncState, error) {
	return s.FindSyncStateFn(ctx)
}

func (s *SyncStateService) SaveSyncState(ctx context.Context, state *catalogo.SyncState) error {
	return s.SaveSyncStateFn(ctx, state)
}

// StatusTracker is a mock implementation of catalogo.StatusTracker.
type StatusTracker struct {
	StatusFn func() catalogo.SyncStatus
	FireFn   func(ctx context.Context, event catalogo.StatusEvent) error
}

func (t *StatusTracker) Status() catalogo.SyncStatus {
	return t.StatusFn()
}

func (t *StatusTracker) Fire(ctx context.Context, event catalogo.StatusEvent) error {
	return t.FireFn(ctx, event)
}

// CatalogService is a mock implementation of catalogo.CatalogService.
type CatalogService struct {
	CheckReadinessFn func(ctx context.Context) catalogo.SyncStatus
	StartSyncFn      func(ctx context.Context, feed catalogo.FeedReader, progress catalogo.ProgressFunc) (*catalogo.SyncResult, error)
	QueryPageFn      func(ctx context.Context, c catalogo.Criteria) (*catalogo.Page, error)
	FilterOptionsFn  func(ctx context.Context, sel catalogo.Selection) (*catalogo.FilterOptions, error)
	FindRecordFn     func(ctx context.Context, code string) (*catalogo.Record, error)
	ResetFn          func(ctx context.Context) error
}

func (s *CatalogService) CheckReadiness(ctx context.Context) catalogo.SyncStatus {
	return s.CheckReadinessFn(ctx)
}

func (s *CatalogService) StartSync(ctx context.Context, feed catalogo.FeedReader, progress catalogo.ProgressFunc) (*catalogo.SyncResult, error) {
	return s.StartSyncFn(ctx, feed, progress)
}

func (s *CatalogService) QueryPage(ctx context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
	return s.QueryPageFn(ctx, c)
}

func (s *CatalogService) FilterOptions(ctx context.Context, sel catalogo.Selection) (*catalogo.FilterOptions, error) {
	return s.FilterOptionsFn(ctx, sel)
}

func (s *CatalogService) FindRecord(ctx context.Context, code string) (*catalogo.Record, error) {
	return s.FindRecordFn(ctx, code)
}

func (s *CatalogService) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}
