package catalogo

import "context"

// Row is one header-keyed line of the catalog feed.
type Row map[string]string

// RowBatch is a bounded group of consecutive feed rows.
type RowBatch struct {
	// Rows holds the parsed rows in feed order.
	Rows []Row

	// Line is the input line number of the first row.
	Line int
}

// FeedReader produces the catalog feed as a sequence of row batches.
// Next is not called again until the previous batch has been committed,
// which bounds the number of rows held in memory.
type FeedReader interface {
	// Next returns the next batch. Returns io.EOF once the feed is exhausted
	// and EFEED if the feed is malformed.
	Next(ctx context.Context) (RowBatch, error)
}

// Fingerprinter is implemented by feeds able to report a digest of the data
// they have produced.
type Fingerprinter interface {
	Fingerprint() string
}
