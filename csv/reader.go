// Package csv reads the catalog CSV export as a sequence of header-mapped
// row batches.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/catalogo"
	"golang.org/x/text/encoding/charmap"
)

// Compile-time interface verification.
var (
	_ catalogo.FeedReader    = (*Reader)(nil)
	_ catalogo.Fingerprinter = (*Reader)(nil)
)

// DefaultBatchSize is the number of rows per batch when Options.BatchSize is unset.
const DefaultBatchSize = 1000

// Supported input encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// Options configures a Reader.
type Options struct {
	// BatchSize is the maximum number of rows per batch.
	BatchSize int

	// Encoding of the input, EncodingUTF8 (default) or EncodingLatin1.
	Encoding string

	// Comma is the field delimiter. Defaults to ','.
	Comma rune

	// LazyQuotes accepts quotes appearing inside unquoted fields.
	LazyQuotes bool
}

// Reader implements catalogo.FeedReader over CSV input with a header row.
type Reader struct {
	csv       *csv.Reader
	digest    *xxhash.Digest
	closer    io.Closer
	batchSize int

	header []string
	done   bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	digest := xxhash.New()
	src := io.TeeReader(r, digest)

	switch strings.ToLower(opts.Encoding) {
	case "", EncodingUTF8, "utf8":
	case EncodingLatin1, "iso-8859-1":
		src = charmap.ISO8859_1.NewDecoder().Reader(src)
	default:
		return nil, catalogo.Errorf(catalogo.EINVALID, "unsupported feed encoding %q", opts.Encoding)
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	cr := csv.NewReader(src)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.LazyQuotes = opts.LazyQuotes

	return &Reader{
		csv:       cr,
		digest:    digest,
		batchSize: batchSize,
	}, nil
}

// Open opens the feed file at path. The caller must Close the Reader.
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, catalogo.Errorf(catalogo.EFEED, "cannot open feed: %v", err)
	}
	r, err := NewReader(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Close closes the underlying file when the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Next returns up to BatchSize rows. Blank rows are skipped.
func (r *Reader) Next(ctx context.Context) (catalogo.RowBatch, error) {
	if err := ctx.Err(); err != nil {
		return catalogo.RowBatch{}, err
	}
	if r.done {
		return catalogo.RowBatch{}, io.EOF
	}
	if r.header == nil {
		if err := r.readHeader(); err != nil {
			return catalogo.RowBatch{}, err
		}
	}

	batch := catalogo.RowBatch{Rows: make([]catalogo.Row, 0, r.batchSize)}
	for len(batch.Rows) < r.batchSize {
		fields, err := r.csv.Read()
		if err == io.EOF {
			r.done = true
			break
		}
		if err != nil {
			return catalogo.RowBatch{}, parseError(err)
		}
		if blank(fields) {
			continue
		}
		if len(batch.Rows) == 0 {
			batch.Line, _ = r.csv.FieldPos(0)
		}

		row := make(catalogo.Row, len(r.header))
		for i, name := range r.header {
			row[name] = fields[i]
		}
		batch.Rows = append(batch.Rows, row)
	}

	if len(batch.Rows) == 0 {
		return catalogo.RowBatch{}, io.EOF
	}
	return batch, nil
}

// Fingerprint returns the xxhash of the raw bytes read so far. Once Next
// has returned io.EOF it identifies the whole feed.
func (r *Reader) Fingerprint() string {
	return fmt.Sprintf("%016x", r.digest.Sum64())
}

// readHeader reads the column names and checks the required ones.
func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err == io.EOF {
		return catalogo.Errorf(catalogo.EFEED, "feed is empty")
	}
	if err != nil {
		return parseError(err)
	}

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[i] = name
		seen[name] = true
	}
	for _, col := range catalogo.RequiredColumns {
		if !seen[col] {
			return catalogo.Errorf(catalogo.EFEED, "feed header is missing column %q", col)
		}
	}

	r.header = header
	return nil
}

// blank reports whether every field of a row is empty or whitespace.
func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseError converts a CSV parse error into an EFEED error.
func parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return catalogo.Errorf(catalogo.EFEED, "malformed feed at line %d: %v", pe.Line, pe.Err)
	}
	return catalogo.Errorf(catalogo.EFEED, "cannot read feed: %v", err)
}
