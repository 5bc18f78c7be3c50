package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/fwojciec/catalogo"
	"github.com/fwojciec/catalogo/mock"
	"github.com/fwojciec/catalogo/sqlite"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("disk I/O error")

// setupStore opens an in-memory database and returns its services.
func setupStore(t *testing.T) (*sqlite.RecordStore, *sqlite.SyncStateService) {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	return sqlite.NewRecordStore(db), sqlite.NewSyncStateService(db)
}

// seed inserts records into store in one batch.
func seed(t *testing.T, store catalogo.RecordStore, records ...*catalogo.Record) {
	t.Helper()
	require.NoError(t, store.BulkInsert(context.Background(), records))
}

// laptop, work and service are the three records of the reference catalog.
func laptop() *catalogo.Record {
	return &catalogo.Record{
		TypeCode: "B", GroupCode: "23", ClassCode: "05", FamilyCode: "00", ItemCode: "05",
		ItemName: "LAPTOP HP", GroupName: "EQUIPOS", ClassName: "COMPUTO", FamilyName: "PORTATILES",
		UnitName: "UNIDAD",
	}
}

func work() *catalogo.Record {
	return &catalogo.Record{
		TypeCode: "B", GroupCode: "62", ClassCode: "01", FamilyCode: "00", ItemCode: "01",
		ItemName: "CONSTRUCCION DE LOSA DEPORTIVA", GroupName: "OBRAS", ClassName: "EDIFICACIONES", FamilyName: "DEPORTIVAS",
		UnitName: "OBRA",
	}
}

func service() *catalogo.Record {
	return &catalogo.Record{
		TypeCode: "S", GroupCode: "71", ClassCode: "01", FamilyCode: "00", ItemCode: "02",
		ItemName: "MANTENIMIENTO DE IMPRESORA", GroupName: "SERVICIOS", ClassName: "MANTENIMIENTO", FamilyName: "EQUIPOS DE COMPUTO",
		UnitName: "SERVICIO",
	}
}

// item returns a good of group EQUIPOS with a unique item code.
func item(n int, name, class, family string) *catalogo.Record {
	return &catalogo.Record{
		TypeCode: "B", GroupCode: "23", ClassCode: "05", FamilyCode: "00", ItemCode: fmt.Sprintf("%04d", n),
		ItemName: name, GroupName: "EQUIPOS", ClassName: class, FamilyName: family,
		UnitName: "UNIDAD",
	}
}

// rowOf returns the feed row a record was read from.
func rowOf(r *catalogo.Record) catalogo.Row {
	return catalogo.Row{
		catalogo.ColumnTypeCode:   r.TypeCode,
		catalogo.ColumnGroupCode:  r.GroupCode,
		catalogo.ColumnClassCode:  r.ClassCode,
		catalogo.ColumnFamilyCode: r.FamilyCode,
		catalogo.ColumnItemCode:   r.ItemCode,
		catalogo.ColumnItemName:   r.ItemName,
		catalogo.ColumnGroupName:  r.GroupName,
		catalogo.ColumnClassName:  r.ClassName,
		catalogo.ColumnFamilyName: r.FamilyName,
		catalogo.ColumnUnitName:   r.UnitName,
	}
}

// batchOf returns a feed batch holding the given records.
func batchOf(line int, records ...*catalogo.Record) catalogo.RowBatch {
	b := catalogo.RowBatch{Line: line}
	for _, r := range records {
		b.Rows = append(b.Rows, rowOf(r))
	}
	return b
}

// delegate returns a mock store forwarding every call to store.
func delegate(store catalogo.RecordStore) *mock.RecordStore {
	return &mock.RecordStore{
		CountFn:            store.Count,
		BulkInsertFn:       store.BulkInsert,
		ScanByIndexFn:      store.ScanByIndex,
		ScanAllFn:          store.ScanAll,
		DistinctValuesFn:   store.DistinctValues,
		FindRecordByCodeFn: store.FindRecordByCode,
		ResetFn:            store.Reset,
	}
}

// codes returns the SIGA codes of records.
func codes(records []*catalogo.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.SIGACode()
	}
	return out
}

// counting wraps a sequence and counts the records it yields.
func counting(seq iter.Seq2[*catalogo.Record, error], n *int) iter.Seq2[*catalogo.Record, error] {
	return func(yield func(*catalogo.Record, error) bool) {
		for r, err := range seq {
			*n++
			if !yield(r, err) {
				return
			}
		}
	}
}
