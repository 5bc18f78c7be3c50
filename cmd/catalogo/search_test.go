package main_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/catalogo"
	main "github.com/fwojciec/catalogo/cmd/catalogo"
	"github.com/fwojciec/catalogo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// laptop returns a goods record used across command tests.
func laptop() *catalogo.Record {
	return &catalogo.Record{
		ID:         1,
		TypeCode:   "B",
		Category:   catalogo.CategoryGood,
		ItemName:   "LAPTOP HP",
		GroupCode:  "23",
		ClassCode:  "05",
		FamilyCode: "00",
		ItemCode:   "0005",
		GroupName:  "EQUIPOS",
		ClassName:  "COMPUTO",
		FamilyName: "PORTATILES",
		UnitName:   "UNIDAD",
	}
}

// fullPage returns a page holding PageSize records.
func fullPage(number int) *catalogo.Page {
	page := &catalogo.Page{Number: number}
	for i := 0; i < catalogo.PageSize; i++ {
		r := laptop()
		r.ItemCode = fmt.Sprintf("%04d", i)
		page.Records = append(page.Records, r)
	}
	return page
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds criteria from flags and prints the page", func(t *testing.T) {
		t.Parallel()

		var got catalogo.Criteria
		catalog := &mock.CatalogService{
			QueryPageFn: func(_ context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
				got = c
				return &catalogo.Page{Number: c.Page, Records: []*catalogo.Record{laptop()}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Catalog: catalog}

		cmd := &main.SearchCmd{Term: "laptop", Type: "b", Group: "EQUIPOS", Class: "COMPUTO", Page: 2}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "laptop", got.SearchTerm)
		assert.Equal(t, catalogo.TypeGood, got.Type)
		assert.Equal(t, catalogo.Selection{Group: "EQUIPOS", Class: "COMPUTO"}, got.Selection)
		assert.Equal(t, 2, got.Page)
		assert.Contains(t, stdout.String(), "2305000005")
		assert.Contains(t, stdout.String(), "LAPTOP HP")
		assert.NotContains(t, stdout.String(), "More results")
	})

	t.Run("points to the next page when the page is full", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			QueryPageFn: func(_ context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
				return fullPage(c.Page), nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Catalog: catalog}

		require.NoError(t, (&main.SearchCmd{Type: "ALL", Page: 1}).Run(deps))

		assert.Contains(t, stdout.String(), "More results: --page 2")
	})

	t.Run("reports an empty page", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			QueryPageFn: func(_ context.Context, c catalogo.Criteria) (*catalogo.Page, error) {
				return &catalogo.Page{Number: c.Page}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Catalog: catalog}

		require.NoError(t, (&main.SearchCmd{Term: "zzz", Type: "ALL", Page: 1}).Run(deps))

		assert.Contains(t, stdout.String(), "No results on page 1.")
	})

	t.Run("rejects class without group", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		err := (&main.SearchCmd{Type: "ALL", Class: "COMPUTO", Page: 1}).Run(deps)

		assert.Equal(t, catalogo.EINVALID, catalogo.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--class requires --group")
	})

	t.Run("rejects unknown type filter", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		err := (&main.SearchCmd{Type: "X", Page: 1}).Run(deps)

		assert.Equal(t, catalogo.EINVALID, catalogo.ErrorCode(err))
	})

	t.Run("rejects page zero", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		err := (&main.SearchCmd{Type: "ALL", Page: 0}).Run(deps)

		assert.Equal(t, catalogo.EINVALID, catalogo.ErrorCode(err))
	})

	t.Run("hints at status when the catalog is not ready", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			QueryPageFn: func(context.Context, catalogo.Criteria) (*catalogo.Page, error) {
				return nil, catalogo.Errorf(catalogo.ECONFLICT, "catalog is not ready (empty)")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Catalog: catalog}

		err := (&main.SearchCmd{Type: "ALL", Page: 1}).Run(deps)

		assert.Equal(t, catalogo.ECONFLICT, catalogo.ErrorCode(err))
		assert.Contains(t, stderr.String(), "catalogo status")
	})
}
