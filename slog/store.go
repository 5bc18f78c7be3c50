// Package slog decorates catalog services with structured logging.
package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/catalogo"
)

// Ensure LoggingRecordStore implements catalogo.RecordStore.
var _ catalogo.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with logging. Writes are logged at
// info level and reads at debug level.
type LoggingRecordStore struct {
	next   catalogo.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next catalogo.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

func (s *LoggingRecordStore) Count(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("count records",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Count(ctx)
}

func (s *LoggingRecordStore) BulkInsert(ctx context.Context, records []*catalogo.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("bulk insert",
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BulkInsert(ctx, records)
}

func (s *LoggingRecordStore) ScanByIndex(ctx context.Context, index catalogo.Index, value string) iter.Seq2[*catalogo.Record, error] {
	return s.logScan(s.next.ScanByIndex(ctx, index, value), "scan by index", "index", string(index), "value", value)
}

func (s *LoggingRecordStore) ScanAll(ctx context.Context) iter.Seq2[*catalogo.Record, error] {
	return s.logScan(s.next.ScanAll(ctx), "scan all")
}

func (s *LoggingRecordStore) DistinctValues(ctx context.Context, index catalogo.Index) (values []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("distinct values",
			"index", string(index),
			"count", len(values),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DistinctValues(ctx, index)
}

func (s *LoggingRecordStore) FindRecordByCode(ctx context.Context, code string) (r *catalogo.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find record",
			"code", code,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecordByCode(ctx, code)
}

func (s *LoggingRecordStore) Reset(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("reset catalog",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Reset(ctx)
}

// logScan logs a scan once the consumer stops iterating, with the number of
// records it received.
func (s *LoggingRecordStore) logScan(seq iter.Seq2[*catalogo.Record, error], msg string, attrs ...any) iter.Seq2[*catalogo.Record, error] {
	return func(yield func(*catalogo.Record, error) bool) {
		begin := time.Now()
		var n int
		var scanErr error
		defer func() {
			s.logger.Debug(msg, append(attrs,
				"count", n,
				"duration", time.Since(begin),
				"err", scanErr,
			)...)
		}()

		for r, err := range seq {
			if err != nil {
				scanErr = err
			} else {
				n++
			}
			if !yield(r, err) {
				return
			}
		}
	}
}
