package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/catalogo"
)

// Compile-time interface verification.
var _ catalogo.SyncStateService = (*SyncStateService)(nil)

// SyncStateService implements catalogo.SyncStateService using SQLite.
// The table holds at most one row describing the latest sync run.
type SyncStateService struct {
	db *DB
}

// NewSyncStateService creates a new SyncStateService.
func NewSyncStateService(db *DB) *SyncStateService {
	return &SyncStateService{db: db}
}

// FindSyncState returns the latest sync state.
func (s *SyncStateService) FindSyncState(ctx context.Context) (*catalogo.SyncState, error) {
	var state catalogo.SyncState
	var status, startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT run_id, status, inserted, feed_hash, error, started_at, finished_at
		FROM sync_state
		WHERE id = 1
	`).Scan(&state.RunID, &status, &state.Inserted, &state.FeedHash, &state.Error, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, catalogo.Errorf(catalogo.ENOTFOUND, "sync state not found")
	}
	if err != nil {
		return nil, err
	}

	state.Status = catalogo.SyncStatus(status)
	if state.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if state.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &state, nil
}

// SaveSyncState replaces the latest sync state.
func (s *SyncStateService) SaveSyncState(ctx context.Context, state *catalogo.SyncState) error {
	if state.RunID == "" {
		return catalogo.Errorf(catalogo.EINVALID, "sync run ID required")
	}
	if state.Status == "" {
		return catalogo.Errorf(catalogo.EINVALID, "sync status required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_state (id, run_id, status, inserted, feed_hash, error, started_at, finished_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id = excluded.run_id,
			status = excluded.status,
			inserted = excluded.inserted,
			feed_hash = excluded.feed_hash,
			error = excluded.error,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, state.RunID, string(state.Status), state.Inserted, state.FeedHash, state.Error,
		formatTime(state.StartedAt), formatTime(state.FinishedAt))

	return err
}
