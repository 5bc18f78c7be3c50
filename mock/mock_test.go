package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/catalogo"
	"github.com/fwojciec/catalogo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore_Count(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CountFn", func(t *testing.T) {
		t.Parallel()

		s := &mock.RecordStore{
			CountFn: func(_ context.Context) (int, error) {
				return 42, nil
			},
		}

		n, err := s.Count(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 42, n)
	})
}

func TestRecords(t *testing.T) {
	t.Parallel()

	t.Run("yields records in order", func(t *testing.T) {
		t.Parallel()

		a, b := &catalogo.Record{ID: 1}, &catalogo.Record{ID: 2}

		var got []int64
		for r, err := range mock.Records(a, b) {
			require.NoError(t, err)
			got = append(got, r.ID)
		}

		assert.Equal(t, []int64{1, 2}, got)
	})

	t.Run("failing sequence ends with the error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")

		var lastErr error
		n := 0
		for r, err := range mock.Failing(boom, &catalogo.Record{ID: 1}) {
			if err != nil {
				lastErr = err
				break
			}
			assert.NotNil(t, r)
			n++
		}

		assert.Equal(t, 1, n)
		assert.Equal(t, boom, lastErr)
	})
}

func TestBatches(t *testing.T) {
	t.Parallel()

	t.Run("yields batches then EOF", func(t *testing.T) {
		t.Parallel()

		feed := mock.Batches(
			catalogo.RowBatch{Line: 2},
			catalogo.RowBatch{Line: 4},
		)
		ctx := context.Background()

		b, err := feed.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, b.Line)

		b, err = feed.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, b.Line)

		_, err = feed.Next(ctx)
		assert.Equal(t, io.EOF, err)
	})
}
