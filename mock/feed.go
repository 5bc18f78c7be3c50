package mock

import (
	"context"
	"io"

	"github.com/fwojciec/catalogo"
)

var _ catalogo.FeedReader = (*FeedReader)(nil)

// FeedReader is a mock implementation of catalogo.FeedReader.
type FeedReader struct {
	NextFn func(ctx context.Context) (catalogo.RowBatch, error)
}

func (r *FeedReader) Next(ctx context.Context) (catalogo.RowBatch, error) {
	return r.NextFn(ctx)
}

// Batches returns a FeedReader yielding batches in order and then io.EOF.
// It is not safe for concurrent use.
func Batches(batches ...catalogo.RowBatch) *FeedReader {
	i := 0
	return &FeedReader{
		NextFn: func(ctx context.Context) (catalogo.RowBatch, error) {
			if err := ctx.Err(); err != nil {
				return catalogo.RowBatch{}, err
			}
			if i >= len(batches) {
				return catalogo.RowBatch{}, io.EOF
			}
			b := batches[i]
			i++
			return b, nil
		},
	}
}
