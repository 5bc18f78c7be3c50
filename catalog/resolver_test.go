package catalog_test

import (
	"context"
	"iter"
	"testing"

	"github.com/fwojciec/catalogo"
	"github.com/fwojciec/catalogo/catalog"
	"github.com/fwojciec/catalogo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hierarchy seeds two groups whose classes and families overlap by name.
func hierarchy(t *testing.T) catalogo.RecordStore {
	t.Helper()

	store, _ := setupStore(t)
	seed(t, store,
		item(1, "LAPTOP", "COMPUTO", "PORTATILES"),
		item(2, "TORRE", "COMPUTO", "ESCRITORIO"),
		item(3, "NETBOOK", "COMPUTO", "PORTATILES"),
		item(4, "PROYECTOR", "AUDIOVISUAL", "PROYECTORES"),
		item(5, "PARLANTE", "AUDIOVISUAL", "AUDIO"),
		work(),
		service(),
	)
	return store
}

func TestResolver_TopLevelGroups(t *testing.T) {
	t.Parallel()

	t.Run("returns every group once", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		groups, err := r.TopLevelGroups(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"EQUIPOS", "OBRAS", "SERVICIOS"}, groups)
	})

	t.Run("sorts by Spanish collation", func(t *testing.T) {
		t.Parallel()

		store := &mock.RecordStore{
			DistinctValuesFn: func(_ context.Context, index catalogo.Index) ([]string, error) {
				assert.Equal(t, catalogo.IndexGroupName, index)
				return []string{"ARBOL", "OBRAS", "ÁGUILA", "ÑANDU", "NUBE"}, nil
			},
		}
		r := catalog.NewResolver(store)

		groups, err := r.TopLevelGroups(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"ÁGUILA", "ARBOL", "NUBE", "ÑANDU", "OBRAS"}, groups)
	})

	t.Run("returns the store error", func(t *testing.T) {
		t.Parallel()

		store := &mock.RecordStore{
			DistinctValuesFn: func(_ context.Context, _ catalogo.Index) ([]string, error) {
				return nil, errBoom
			},
		}
		r := catalog.NewResolver(store)

		_, err := r.TopLevelGroups(context.Background())

		assert.ErrorIs(t, err, errBoom)
	})
}

func TestResolver_ClassesForGroup(t *testing.T) {
	t.Parallel()

	t.Run("returns the distinct classes of the group sorted", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		classes, err := r.ClassesForGroup(context.Background(), "EQUIPOS")

		require.NoError(t, err)
		assert.Equal(t, []string{"AUDIOVISUAL", "COMPUTO"}, classes)
	})

	t.Run("unknown group has no classes", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		classes, err := r.ClassesForGroup(context.Background(), "VEHICULOS")

		require.NoError(t, err)
		assert.Empty(t, classes)
	})

	t.Run("scans only the group partition", func(t *testing.T) {
		t.Parallel()

		store := &mock.RecordStore{
			ScanByIndexFn: func(_ context.Context, index catalogo.Index, value string) iter.Seq2[*catalogo.Record, error] {
				assert.Equal(t, catalogo.IndexGroupName, index)
				assert.Equal(t, "EQUIPOS", value)
				return mock.Records(item(1, "A", "COMPUTO", "X"), item(2, "B", "COMPUTO", "Y"))
			},
		}
		r := catalog.NewResolver(store)

		classes, err := r.ClassesForGroup(context.Background(), "EQUIPOS")

		require.NoError(t, err)
		assert.Equal(t, []string{"COMPUTO"}, classes)
	})

	t.Run("returns the scan error", func(t *testing.T) {
		t.Parallel()

		store := &mock.RecordStore{
			ScanByIndexFn: func(_ context.Context, _ catalogo.Index, _ string) iter.Seq2[*catalogo.Record, error] {
				return mock.Failing(errBoom, laptop())
			},
		}
		r := catalog.NewResolver(store)

		_, err := r.ClassesForGroup(context.Background(), "EQUIPOS")

		assert.ErrorIs(t, err, errBoom)
	})
}

func TestResolver_FamiliesForGroupAndClass(t *testing.T) {
	t.Parallel()

	t.Run("returns the distinct families of the pair sorted", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		families, err := r.FamiliesForGroupAndClass(context.Background(), "EQUIPOS", "COMPUTO")

		require.NoError(t, err)
		assert.Equal(t, []string{"ESCRITORIO", "PORTATILES"}, families)
	})

	t.Run("class outside the group has no families", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		families, err := r.FamiliesForGroupAndClass(context.Background(), "SERVICIOS", "COMPUTO")

		require.NoError(t, err)
		assert.Empty(t, families)
	})
}

func TestResolver_Options(t *testing.T) {
	t.Parallel()

	t.Run("without a group only groups are listed", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		opts, err := r.Options(context.Background(), catalogo.Selection{})

		require.NoError(t, err)
		assert.Equal(t, []string{"EQUIPOS", "OBRAS", "SERVICIOS"}, opts.Groups)
		assert.Empty(t, opts.Classes)
		assert.Empty(t, opts.Families)
	})

	t.Run("a group lists its classes", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		opts, err := r.Options(context.Background(), catalogo.Selection{Group: "EQUIPOS"})

		require.NoError(t, err)
		assert.Equal(t, []string{"AUDIOVISUAL", "COMPUTO"}, opts.Classes)
		assert.Empty(t, opts.Families)
	})

	t.Run("a group and class list their families", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))

		opts, err := r.Options(context.Background(), catalogo.Selection{Group: "EQUIPOS", Class: "AUDIOVISUAL"})

		require.NoError(t, err)
		assert.Equal(t, []string{"AUDIO", "PROYECTORES"}, opts.Families)
	})

	t.Run("changing the group drops the previous class", func(t *testing.T) {
		t.Parallel()

		r := catalog.NewResolver(hierarchy(t))
		sel := catalogo.Selection{Group: "EQUIPOS", Class: "COMPUTO", Family: "PORTATILES"}.WithGroup("SERVICIOS")

		opts, err := r.Options(context.Background(), sel)

		require.NoError(t, err)
		assert.Equal(t, []string{"MANTENIMIENTO"}, opts.Classes)
		assert.Empty(t, opts.Families)
	})
}
