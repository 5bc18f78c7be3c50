package catalogo

import (
	"context"
	"time"
)

// SyncStatus is the state of the local catalog as seen by the caller.
type SyncStatus string

// SyncStatus constants.
const (
	StatusChecking SyncStatus = "checking"
	StatusEmpty    SyncStatus = "empty"
	StatusSyncing  SyncStatus = "syncing"
	StatusReady    SyncStatus = "ready"
	StatusError    SyncStatus = "error"
)

// StatusEvent moves the catalog from one SyncStatus to another.
type StatusEvent string

// StatusEvent constants.
const (
	EventFoundEmpty  StatusEvent = "found_empty"
	EventFoundReady  StatusEvent = "found_ready"
	EventFoundBroken StatusEvent = "found_broken"
	EventStartSync   StatusEvent = "start_sync"
	EventCompleted   StatusEvent = "completed"
	EventFailed      StatusEvent = "failed"
	EventReset       StatusEvent = "reset"
)

// StatusTracker holds the current SyncStatus and applies events to it.
type StatusTracker interface {
	// Status returns the current status.
	Status() SyncStatus

	// Fire applies an event. Returns ECONFLICT if the event is not allowed
	// in the current status.
	Fire(ctx context.Context, event StatusEvent) error
}

// SyncState is the persisted record of the latest sync run.
type SyncState struct {
	RunID      string     `json:"runId"`
	Status     SyncStatus `json:"status"`
	Inserted   int        `json:"inserted"`
	FeedHash   string     `json:"feedHash"`
	Error      string     `json:"error"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// SyncStateService persists the state of the latest sync run.
type SyncStateService interface {
	// FindSyncState returns the latest sync state.
	// Returns ENOTFOUND if no sync was ever started.
	FindSyncState(ctx context.Context) (*SyncState, error)

	// SaveSyncState replaces the latest sync state.
	SaveSyncState(ctx context.Context, state *SyncState) error
}

// SyncResult summarizes a completed sync.
type SyncResult struct {
	RunID    string        `json:"runId"`
	Inserted int           `json:"inserted"`
	Groups   []string      `json:"groups"`
	FeedHash string        `json:"feedHash"`
	Duration time.Duration `json:"duration"`
}

// ProgressFunc receives the running total of inserted records after each
// committed batch.
type ProgressFunc func(inserted int)

// CatalogService is the boundary between the catalog core and a
// presentation layer. No raw storage error crosses it: failures surface as
// a StatusError or as empty results.
type CatalogService interface {
	// CheckReadiness inspects the store and returns its status.
	CheckReadiness(ctx context.Context) SyncStatus

	// StartSync ingests a feed into an empty store.
	StartSync(ctx context.Context, feed FeedReader, progress ProgressFunc) (*SyncResult, error)

	// QueryPage resolves one page of records.
	QueryPage(ctx context.Context, c Criteria) (*Page, error)

	// FilterOptions returns the filter choices scoped to the selection.
	FilterOptions(ctx context.Context, sel Selection) (*FilterOptions, error)

	// FindRecord retrieves a record by its SIGA code.
	FindRecord(ctx context.Context, code string) (*Record, error)

	// Reset empties the store so that a new sync can start.
	Reset(ctx context.Context) error
}
