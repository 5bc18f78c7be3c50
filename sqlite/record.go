package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"iter"

	"github.com/fwojciec/catalogo"
)

// Compile-time interface verification.
var _ catalogo.RecordStore = (*RecordStore)(nil)

// RecordStore implements catalogo.RecordStore using SQLite.
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

const recordColumns = `id, tipo_bien, categoria, nombre_item, grupo_bien, clase_bien, familia_bien, item_bien,
	nombre_grupo, nombre_clase, nombre_familia, nombre_unidad_medida`

// Count returns the number of stored records.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// BulkInsert stores records in a single transaction. IDs are written back
// to the records only once the transaction has committed.
func (s *RecordStore) BulkInsert(ctx context.Context, records []*catalogo.Record) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog (tipo_bien, categoria, nombre_item, grupo_bien, clase_bien, familia_bien, item_bien,
			nombre_grupo, nombre_clase, nombre_familia, nombre_unidad_medida, siga_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	ids := make([]int64, len(records))
	for i, r := range records {
		category := r.Category
		if category == "" {
			category = catalogo.Classify(r.TypeCode, r.UnitName)
		}
		res, err := stmt.ExecContext(ctx, r.TypeCode, string(category), r.ItemName,
			r.GroupCode, r.ClassCode, r.FamilyCode, r.ItemCode,
			r.GroupName, r.ClassName, r.FamilyName, r.UnitName, r.SIGACode())
		if err != nil {
			return fmt.Errorf("insert record %s: %w", r.SIGACode(), err)
		}
		if ids[i], err = res.LastInsertId(); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for i, r := range records {
		r.ID = ids[i]
		if r.Category == "" {
			r.Category = catalogo.Classify(r.TypeCode, r.UnitName)
		}
	}
	return nil
}

// ScanByIndex yields the records whose indexed column equals value, in ID order.
func (s *RecordStore) ScanByIndex(ctx context.Context, index catalogo.Index, value string) iter.Seq2[*catalogo.Record, error] {
	if !index.Valid() {
		return failed(catalogo.Errorf(catalogo.EINVALID, "unknown index %q", index))
	}
	// The column name comes from the closed set of indexes, never from input.
	query := "SELECT " + recordColumns + " FROM catalog WHERE " + string(index) + " = ? ORDER BY id"
	return s.scan(ctx, query, value)
}

// ScanAll yields every record in ID order.
func (s *RecordStore) ScanAll(ctx context.Context) iter.Seq2[*catalogo.Record, error] {
	return s.scan(ctx, "SELECT "+recordColumns+" FROM catalog ORDER BY id")
}

// DistinctValues returns the distinct values of an index in ascending order.
func (s *RecordStore) DistinctValues(ctx context.Context, index catalogo.Index) ([]string, error) {
	if !index.Valid() {
		return nil, catalogo.Errorf(catalogo.EINVALID, "unknown index %q", index)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT "+string(index)+" FROM catalog ORDER BY 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// FindRecordByCode retrieves a record by its SIGA code.
func (s *RecordStore) FindRecordByCode(ctx context.Context, code string) (*catalogo.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM catalog WHERE siga_code = ?", code)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, catalogo.Errorf(catalogo.ENOTFOUND, "record %q not found", code)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Reset removes every record and the sync state and restarts the ID sequence.
func (s *RecordStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM catalog",
		"DELETE FROM sqlite_sequence WHERE name = 'catalog'",
		"DELETE FROM sync_state",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// scan runs query lazily. Rows are read as the consumer iterates and the
// cursor is closed when the consumer stops.
func (s *RecordStore) scan(ctx context.Context, query string, args ...any) iter.Seq2[*catalogo.Record, error] {
	return func(yield func(*catalogo.Record, error) bool) {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			r, err := scanRecord(rows)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// failed returns a sequence that yields err once.
func failed(err error) iter.Seq2[*catalogo.Record, error] {
	return func(yield func(*catalogo.Record, error) bool) {
		yield(nil, err)
	}
}
