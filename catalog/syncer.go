// Package catalog provides the catalog orchestration: ingestion of the
// feed, option resolution, query evaluation and the service exposed to the
// presentation layer.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/catalogo"
	"github.com/fwojciec/catalogo/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for duplicate code detection.
const (
	// defaultExpectedRecords is the expected catalog size.
	defaultExpectedRecords = 600_000
	// duplicateFalsePositiveRate is the rate at which a unique code needs a
	// confirmation lookup.
	duplicateFalsePositiveRate = 0.001
)

// Syncer ingests a feed into an empty record store.
type Syncer struct {
	Store    catalogo.RecordStore
	States   catalogo.SyncStateService
	Resolver catalogo.OptionResolver
	Logger   *slog.Logger

	// ExpectedRecords sizes the duplicate code filter.
	ExpectedRecords uint

	running atomic.Bool
}

// Sync reads the feed batch by batch and commits each batch before the
// next one is read. Any failure aborts the whole sync and is recorded in
// the sync state; committed batches are not rolled back.
//
// progress, if provided, is called with the running total after every
// commit, from a goroutine other than the caller's.
func (s *Syncer) Sync(ctx context.Context, feed catalogo.FeedReader, progress catalogo.ProgressFunc) (*catalogo.SyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, catalogo.Errorf(catalogo.ECONFLICT, "a sync is already running")
	}
	defer s.running.Store(false)

	n, err := s.Store.Count(ctx)
	if err != nil {
		return nil, s.storeError(s.logger(), catalogo.ESTORE, err, "cannot count records")
	}
	if n > 0 {
		return nil, catalogo.Errorf(catalogo.ECONFLICT, "catalog already holds %d records; reset it first", n)
	}

	started := time.Now()
	state := &catalogo.SyncState{
		RunID:     uuid.NewString(),
		Status:    catalogo.StatusSyncing,
		StartedAt: started.UTC(),
	}
	logger := s.logger().With("run", state.RunID)
	if err := s.States.SaveSyncState(ctx, state); err != nil {
		return nil, s.storeError(logger, catalogo.ESTORE, err, "cannot record sync start")
	}
	logger.Info("sync started")

	result, err := s.run(ctx, logger, feed, progress, state)
	state.FinishedAt = time.Now().UTC()
	if err != nil {
		state.Status = catalogo.StatusError
		state.Error = describe(err)
		// The caller's context may be the reason for the failure.
		if serr := s.States.SaveSyncState(context.WithoutCancel(ctx), state); serr != nil {
			logger.Error("cannot record sync failure", "error", serr)
		}
		logger.Error("sync failed", "inserted", state.Inserted, "error", err)
		return nil, err
	}

	state.Status = catalogo.StatusReady
	state.FeedHash = result.FeedHash
	if err := s.States.SaveSyncState(ctx, state); err != nil {
		return nil, s.storeError(logger, catalogo.ESTORE, err, "cannot record sync completion")
	}

	result.RunID = state.RunID
	result.Duration = time.Since(started)
	logger.Info("sync completed", "inserted", result.Inserted, "groups", len(result.Groups), "duration", result.Duration)
	return result, nil
}

// run ingests the feed and refreshes the top-level groups.
func (s *Syncer) run(ctx context.Context, logger *slog.Logger, feed catalogo.FeedReader, progress catalogo.ProgressFunc, state *catalogo.SyncState) (*catalogo.SyncResult, error) {
	if err := s.ingest(ctx, logger, feed, progress, state); err != nil {
		return nil, err
	}

	groups, err := s.Resolver.TopLevelGroups(ctx)
	if err != nil {
		return nil, s.storeError(logger, catalogo.ESTORE, err, "cannot load groups")
	}

	result := &catalogo.SyncResult{
		Inserted: state.Inserted,
		Groups:   groups,
	}
	if fp, ok := feed.(catalogo.Fingerprinter); ok {
		result.FeedHash = fp.Fingerprint()
	}
	return result, nil
}

// ingest pairs a producer reading the feed with a consumer committing its
// batches. The producer is paused after handing over a batch until the
// consumer acknowledges the commit, so at most one batch is held in memory.
func (s *Syncer) ingest(ctx context.Context, logger *slog.Logger, feed catalogo.FeedReader, progress catalogo.ProgressFunc, state *catalogo.SyncState) error {
	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan catalogo.RowBatch)
	resume := make(chan struct{})

	g.Go(func() error {
		defer close(batches)
		for {
			batch, err := feed.Next(gctx)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return s.feedError(logger, err)
			}

			select {
			case batches <- batch:
			case <-gctx.Done():
				return gctx.Err()
			}

			select {
			case <-resume:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		expected := s.ExpectedRecords
		if expected == 0 {
			expected = defaultExpectedRecords
		}
		seen := bloom.NewFilter(expected, duplicateFalsePositiveRate)

		for batch := range batches {
			n, err := s.commit(gctx, logger, batch, seen)
			if err != nil {
				return err
			}

			state.Inserted += n
			if progress != nil {
				progress(state.Inserted)
			}
			if err := s.States.SaveSyncState(gctx, state); err != nil {
				return s.storeError(logger, catalogo.ESTORE, err, "cannot record sync progress after %d records", state.Inserted)
			}

			select {
			case resume <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

// commit converts a batch to records and inserts it atomically.
func (s *Syncer) commit(ctx context.Context, logger *slog.Logger, batch catalogo.RowBatch, seen *bloom.Filter) (int, error) {
	records := make([]*catalogo.Record, 0, len(batch.Rows))
	inBatch := make(map[string]struct{}, len(batch.Rows))

	for i, row := range batch.Rows {
		r, err := catalogo.RecordFromRow(row)
		if err != nil {
			return 0, catalogo.Errorf(catalogo.EFEED, "row %d of batch at line %d: %s", i+1, batch.Line, catalogo.ErrorMessage(err))
		}

		code := r.SIGACode()
		if seen.TestAndAdd(code) {
			dup, err := s.duplicate(ctx, logger, code, inBatch)
			if err != nil {
				return 0, err
			}
			if dup {
				return 0, catalogo.Errorf(catalogo.EFEED, "duplicate SIGA code %s in batch at line %d", code, batch.Line)
			}
		}
		inBatch[code] = struct{}{}
		records = append(records, r)
	}

	if err := s.Store.BulkInsert(ctx, records); err != nil {
		if isCanceled(err) {
			return 0, err
		}
		return 0, s.storeError(logger, catalogo.EBATCH, err, "cannot insert batch at line %d", batch.Line)
	}
	return len(records), nil
}

// duplicate confirms a Bloom filter hit against the current batch and the
// committed records.
func (s *Syncer) duplicate(ctx context.Context, logger *slog.Logger, code string, inBatch map[string]struct{}) (bool, error) {
	if _, ok := inBatch[code]; ok {
		return true, nil
	}
	_, err := s.Store.FindRecordByCode(ctx, code)
	switch catalogo.ErrorCode(err) {
	case "":
		return true, nil
	case catalogo.ENOTFOUND:
		return false, nil
	}
	return false, s.storeError(logger, catalogo.ESTORE, err, "cannot look up code %s", code)
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// storeError logs err and returns an application error carrying only the
// formatted message.
func (s *Syncer) storeError(logger *slog.Logger, code string, err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	logger.Error(msg, "error", err)
	return catalogo.Errorf(code, "%s", msg)
}

// feedError classifies an error returned by the feed. Application errors
// keep their message; anything else is logged and reported as EFEED.
func (s *Syncer) feedError(logger *slog.Logger, err error) error {
	if isCanceled(err) || catalogo.ErrorCode(err) != catalogo.EINTERNAL {
		return err
	}
	return s.storeError(logger, catalogo.EFEED, err, "cannot read feed")
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// describe returns the message recorded for a failed sync. Errors without
// an application code are not described.
func describe(err error) string {
	switch {
	case isCanceled(err):
		return "sync canceled"
	case catalogo.ErrorCode(err) == catalogo.EINTERNAL:
		return "sync aborted"
	}
	return catalogo.ErrorMessage(err)
}
