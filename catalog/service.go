package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/catalogo"
)

// Compile-time interface verification.
var _ catalogo.CatalogService = (*Service)(nil)

// Service implements catalogo.CatalogService. Storage failures are logged
// and reported as StatusError, empty results or a storage error code.
type Service struct {
	Store    catalogo.RecordStore
	States   catalogo.SyncStateService
	Tracker  catalogo.StatusTracker
	Engine   catalogo.QueryEngine
	Resolver catalogo.OptionResolver
	Syncer   *Syncer
	Logger   *slog.Logger
}

// NewService returns a Service with the default engine, resolver and
// syncer over store.
func NewService(store catalogo.RecordStore, states catalogo.SyncStateService, tracker catalogo.StatusTracker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	resolver := NewResolver(store)
	return &Service{
		Store:    store,
		States:   states,
		Tracker:  tracker,
		Engine:   NewEngine(store),
		Resolver: resolver,
		Syncer: &Syncer{
			Store:    store,
			States:   states,
			Resolver: resolver,
			Logger:   logger,
		},
		Logger: logger,
	}
}

// CheckReadiness inspects the store and the latest sync state. A running
// sync is reported as StatusSyncing without touching the store.
func (s *Service) CheckReadiness(ctx context.Context) catalogo.SyncStatus {
	if s.Tracker.Status() == catalogo.StatusSyncing {
		return catalogo.StatusSyncing
	}

	status := s.detect(ctx)
	event := catalogo.EventFoundBroken
	switch status {
	case catalogo.StatusEmpty:
		event = catalogo.EventFoundEmpty
	case catalogo.StatusReady:
		event = catalogo.EventFoundReady
	}
	if err := s.Tracker.Fire(ctx, event); err != nil {
		s.logger().Warn("cannot record catalog status", "status", status, "error", err)
	}
	return status
}

// detect derives the status from the record count and the sync state.
func (s *Service) detect(ctx context.Context) catalogo.SyncStatus {
	n, err := s.Store.Count(ctx)
	if err != nil {
		s.logger().Error("cannot count records", "error", err)
		return catalogo.StatusError
	}
	if n == 0 {
		return catalogo.StatusEmpty
	}

	state, err := s.States.FindSyncState(ctx)
	switch {
	case catalogo.ErrorCode(err) == catalogo.ENOTFOUND:
		// Populated before sync tracking existed.
		return catalogo.StatusReady
	case err != nil:
		s.logger().Error("cannot read sync state", "error", err)
		return catalogo.StatusError
	case state.Status == catalogo.StatusReady:
		return catalogo.StatusReady
	}
	s.logger().Warn("catalog holds an incomplete sync", "run", state.RunID, "status", state.Status, "records", n, "reason", state.Error)
	return catalogo.StatusError
}

// StartSync ingests feed into an empty catalog.
func (s *Service) StartSync(ctx context.Context, feed catalogo.FeedReader, progress catalogo.ProgressFunc) (*catalogo.SyncResult, error) {
	switch status := s.CheckReadiness(ctx); status {
	case catalogo.StatusEmpty:
	case catalogo.StatusSyncing:
		return nil, catalogo.Errorf(catalogo.ECONFLICT, "a sync is already running")
	default:
		return nil, catalogo.Errorf(catalogo.ECONFLICT, "catalog is %s; reset it before syncing", status)
	}
	if err := s.Tracker.Fire(ctx, catalogo.EventStartSync); err != nil {
		return nil, err
	}

	result, err := s.Syncer.Sync(ctx, feed, progress)
	if err != nil {
		if ferr := s.Tracker.Fire(context.WithoutCancel(ctx), catalogo.EventFailed); ferr != nil {
			s.logger().Error("cannot record sync failure", "error", ferr)
		}
		if catalogo.ErrorCode(err) == catalogo.EINTERNAL {
			s.logger().Error("sync aborted", "error", err)
			if isCanceled(err) {
				return nil, catalogo.Errorf(catalogo.EINTERNAL, "sync canceled")
			}
			return nil, catalogo.Errorf(catalogo.EINTERNAL, "sync aborted")
		}
		return nil, err
	}

	if err := s.Tracker.Fire(ctx, catalogo.EventCompleted); err != nil {
		return nil, err
	}
	return result, nil
}

// QueryPage resolves one page of records. Engine failures yield an empty
// page.
func (s *Service) QueryPage(ctx context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireReady(ctx); err != nil {
		return nil, err
	}

	page, err := s.Engine.Resolve(ctx, c)
	if err != nil {
		s.logger().Error("query failed", "term", c.Term(), "type", c.Type, "group", c.Group, "page", c.Page, "error", err)
		return &catalogo.Page{Number: c.Page, Records: []*catalogo.Record{}}, nil
	}
	return page, nil
}

// FilterOptions returns the filter choices scoped to sel. Resolver failures
// yield empty lists.
func (s *Service) FilterOptions(ctx context.Context, sel catalogo.Selection) (*catalogo.FilterOptions, error) {
	if err := s.requireReady(ctx); err != nil {
		return nil, err
	}

	opts, err := s.Resolver.Options(ctx, sel)
	if err != nil {
		s.logger().Error("cannot resolve filter options", "group", sel.Group, "class", sel.Class, "error", err)
		return &catalogo.FilterOptions{Groups: []string{}, Classes: []string{}, Families: []string{}}, nil
	}
	return opts, nil
}

// FindRecord retrieves a record by its SIGA code.
func (s *Service) FindRecord(ctx context.Context, code string) (*catalogo.Record, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, catalogo.Errorf(catalogo.EINVALID, "SIGA code required")
	}

	r, err := s.Store.FindRecordByCode(ctx, code)
	switch catalogo.ErrorCode(err) {
	case "":
		return r, nil
	case catalogo.ENOTFOUND:
		return nil, err
	}
	s.logger().Error("cannot read record", "code", code, "error", err)
	return nil, catalogo.Errorf(catalogo.ESTORE, "cannot read record %s", code)
}

// Reset removes every record and the sync state.
func (s *Service) Reset(ctx context.Context) error {
	if s.Tracker.Status() == catalogo.StatusSyncing {
		return catalogo.Errorf(catalogo.ECONFLICT, "cannot reset while a sync is running")
	}
	if err := s.Store.Reset(ctx); err != nil {
		s.logger().Error("cannot reset catalog", "error", err)
		return catalogo.Errorf(catalogo.ESTORE, "cannot reset catalog")
	}
	return s.Tracker.Fire(ctx, catalogo.EventReset)
}

// requireReady checks the status, inspecting the store on first use.
func (s *Service) requireReady(ctx context.Context) error {
	status := s.Tracker.Status()
	if status == catalogo.StatusChecking {
		status = s.CheckReadiness(ctx)
	}
	if status != catalogo.StatusReady {
		return catalogo.Errorf(catalogo.ECONFLICT, "catalog is not ready (%s)", status)
	}
	return nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
