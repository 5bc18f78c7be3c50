package catalogo

import (
	"context"
	"iter"
	"strings"
)

// UnitWork is the unit-of-measure label that marks construction works.
const UnitWork = "OBRA"

// Category is the effective classification of a catalog record.
type Category string

// Category constants.
const (
	CategoryGood    Category = "B"
	CategoryService Category = "S"
	CategoryWork    Category = "O"
)

// Label returns the display label of the category.
func (c Category) Label() string {
	switch c {
	case CategoryGood:
		return "BIEN"
	case CategoryService:
		return "SERVICIO"
	case CategoryWork:
		return "OBRA"
	default:
		return string(c)
	}
}

// Classify derives the category of a record from its type code and unit of
// measure. A record measured in "OBRA" is a work whatever its type code.
func Classify(typeCode, unitName string) Category {
	if unitName == UnitWork {
		return CategoryWork
	}
	return Category(typeCode)
}

// Record represents one entry of the SIGA catalog.
type Record struct {
	ID         int64    `json:"id"`
	TypeCode   string   `json:"tipoBien"`
	Category   Category `json:"categoria"`
	ItemName   string   `json:"nombreItem"`
	GroupCode  string   `json:"grupoBien"`
	ClassCode  string   `json:"claseBien"`
	FamilyCode string   `json:"familiaBien"`
	ItemCode   string   `json:"itemBien"`
	GroupName  string   `json:"nombreGrupo"`
	ClassName  string   `json:"nombreClase"`
	FamilyName string   `json:"nombreFamilia"`
	UnitName   string   `json:"nombreUnidadMedida"`
}

// SIGACode returns the concatenation of the four hierarchy segments, which
// identifies the record outside of the store.
func (r *Record) SIGACode() string {
	return r.GroupCode + r.ClassCode + r.FamilyCode + r.ItemCode
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.TypeCode == "" {
		return Errorf(EINVALID, "record type code required")
	}
	if r.GroupCode == "" || r.ClassCode == "" || r.FamilyCode == "" || r.ItemCode == "" {
		return Errorf(EINVALID, "record code segments required")
	}
	return nil
}

// Source column names of the catalog export.
const (
	ColumnTypeCode   = "TIPO_BIEN"
	ColumnGroupCode  = "GRUPO_BIEN"
	ColumnClassCode  = "CLASE_BIEN"
	ColumnFamilyCode = "FAMILIA_BIEN"
	ColumnItemCode   = "ITEM_BIEN"
	ColumnItemName   = "NOMBRE_ITEM"
	ColumnGroupName  = "NOMBRE_GRUPO"
	ColumnClassName  = "NOMBRE_CLASE"
	ColumnFamilyName = "NOMBRE_FAMILIA"
	ColumnUnitName   = "NOMBRE_UNIDAD_MEDIDA"
)

// RequiredColumns lists the columns a feed header must contain.
var RequiredColumns = []string{
	ColumnTypeCode,
	ColumnGroupCode,
	ColumnClassCode,
	ColumnFamilyCode,
	ColumnItemCode,
	ColumnItemName,
}

// RecordFromRow maps a header-keyed feed row onto a validated record.
func RecordFromRow(row Row) (*Record, error) {
	r := &Record{
		TypeCode:   strings.TrimSpace(row[ColumnTypeCode]),
		ItemName:   row[ColumnItemName],
		GroupCode:  strings.TrimSpace(row[ColumnGroupCode]),
		ClassCode:  strings.TrimSpace(row[ColumnClassCode]),
		FamilyCode: strings.TrimSpace(row[ColumnFamilyCode]),
		ItemCode:   strings.TrimSpace(row[ColumnItemCode]),
		GroupName:  row[ColumnGroupName],
		ClassName:  row[ColumnClassName],
		FamilyName: row[ColumnFamilyName],
		UnitName:   row[ColumnUnitName],
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.Category = Classify(r.TypeCode, r.UnitName)
	return r, nil
}

// Index identifies a secondary index of the record store.
type Index string

// Index constants.
const (
	IndexTypeCode   Index = "tipo_bien"
	IndexCategory   Index = "categoria"
	IndexItemName   Index = "nombre_item"
	IndexGroupName  Index = "nombre_grupo"
	IndexClassName  Index = "nombre_clase"
	IndexFamilyName Index = "nombre_familia"
	IndexGroupCode  Index = "grupo_bien"
	IndexClassCode  Index = "clase_bien"
	IndexFamilyCode Index = "familia_bien"
	IndexItemCode   Index = "item_bien"
	IndexSIGACode   Index = "siga_code"
)

// Indexes lists every secondary index of the record store.
var Indexes = []Index{
	IndexTypeCode,
	IndexCategory,
	IndexItemName,
	IndexGroupName,
	IndexClassName,
	IndexFamilyName,
	IndexGroupCode,
	IndexClassCode,
	IndexFamilyCode,
	IndexItemCode,
	IndexSIGACode,
}

// Valid reports whether the index is known to the store.
func (i Index) Valid() bool {
	for _, idx := range Indexes {
		if idx == i {
			return true
		}
	}
	return false
}

// RecordStore represents the persistent, indexed collection of records.
//
// Records are created only in bulk during a sync and are never updated.
// Scans are ordered by record ID.
type RecordStore interface {
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// BulkInsert stores a batch of records and assigns their IDs.
	// Either every record of the batch is stored or none is.
	BulkInsert(ctx context.Context, records []*Record) error

	// ScanByIndex yields the records whose indexed value equals value.
	ScanByIndex(ctx context.Context, index Index, value string) iter.Seq2[*Record, error]

	// ScanAll yields every record.
	ScanAll(ctx context.Context) iter.Seq2[*Record, error]

	// DistinctValues returns the sorted distinct values of an index.
	DistinctValues(ctx context.Context, index Index) ([]string, error)

	// FindRecordByCode retrieves a record by its SIGA code.
	// Returns ENOTFOUND if no record has the code.
	FindRecordByCode(ctx context.Context, code string) (*Record, error)

	// Reset removes every record and the sync state.
	Reset(ctx context.Context) error
}
