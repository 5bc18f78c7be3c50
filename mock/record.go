package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/catalogo"
)

var _ catalogo.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of catalogo.RecordStore.
type RecordStore struct {
	CountFn            func(ctx context.Context) (int, error)
	BulkInsertFn       func(ctx context.Context, records []*catalogo.Record) error
	ScanByIndexFn      func(ctx context.Context, index catalogo.Index, value string) iter.Seq2[*catalogo.Record, error]
	ScanAllFn          func(ctx context.Context) iter.Seq2[*catalogo.Record, error]
	DistinctValuesFn   func(ctx context.Context, index catalogo.Index) ([]string, error)
	FindRecordByCodeFn func(ctx context.Context, code string) (*catalogo.Record, error)
	ResetFn            func(ctx context.Context) error
}

func (s *RecordStore) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

func (s *RecordStore) BulkInsert(ctx context.Context, records []*catalogo.Record) error {
	return s.BulkInsertFn(ctx, records)
}

func (s *RecordStore) ScanByIndex(ctx context.Context, index catalogo.Index, value string) iter.Seq2[*catalogo.Record, error] {
	return s.ScanByIndexFn(ctx, index, value)
}

func (s *RecordStore) ScanAll(ctx context.Context) iter.Seq2[*catalogo.Record, error] {
	return s.ScanAllFn(ctx)
}

func (s *RecordStore) DistinctValues(ctx context.Context, index catalogo.Index) ([]string, error) {
	return s.DistinctValuesFn(ctx, index)
}

func (s *RecordStore) FindRecordByCode(ctx context.Context, code string) (*catalogo.Record, error) {
	return s.FindRecordByCodeFn(ctx, code)
}

func (s *RecordStore) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}

// Records returns a sequence yielding records in order.
func Records(records ...*catalogo.Record) iter.Seq2[*catalogo.Record, error] {
	return func(yield func(*catalogo.Record, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Failing returns a sequence yielding records and then err.
func Failing(err error, records ...*catalogo.Record) iter.Seq2[*catalogo.Record, error] {
	return func(yield func(*catalogo.Record, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
		yield(nil, err)
	}
}
