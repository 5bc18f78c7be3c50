package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/catalogo"
	main "github.com/fwojciec/catalogo/cmd/catalogo"
	"github.com/fwojciec/catalogo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsCmd_Run(t *testing.T) {
	t.Parallel()

	options := func(got *catalogo.Selection) *mock.CatalogService {
		return &mock.CatalogService{
			FilterOptionsFn: func(_ context.Context, sel catalogo.Selection) (*catalogo.FilterOptions, error) {
				*got = sel
				return &catalogo.FilterOptions{
					Groups:   []string{"EQUIPOS", "SERVICIOS"},
					Classes:  []string{"COMPUTO"},
					Families: []string{"ESCRITORIO", "PORTATILES"},
				}, nil
			},
		}
	}

	t.Run("lists groups without flags", func(t *testing.T) {
		t.Parallel()

		var sel catalogo.Selection
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Catalog: options(&sel)}

		require.NoError(t, (&main.OptionsCmd{}).Run(deps))

		assert.Equal(t, catalogo.Selection{}, sel)
		assert.Contains(t, stdout.String(), "Groups (2)")
		assert.Contains(t, stdout.String(), "SERVICIOS")
		assert.NotContains(t, stdout.String(), "COMPUTO")
	})

	t.Run("lists the classes of a group", func(t *testing.T) {
		t.Parallel()

		var sel catalogo.Selection
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Catalog: options(&sel)}

		require.NoError(t, (&main.OptionsCmd{Group: "EQUIPOS"}).Run(deps))

		assert.Equal(t, catalogo.Selection{Group: "EQUIPOS"}, sel)
		assert.Contains(t, stdout.String(), "Classes of EQUIPOS (1)")
	})

	t.Run("lists the families of a class", func(t *testing.T) {
		t.Parallel()

		var sel catalogo.Selection
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Catalog: options(&sel)}

		require.NoError(t, (&main.OptionsCmd{Group: "EQUIPOS", Class: "COMPUTO"}).Run(deps))

		assert.Equal(t, catalogo.Selection{Group: "EQUIPOS", Class: "COMPUTO"}, sel)
		assert.Contains(t, stdout.String(), "Families of EQUIPOS / COMPUTO (2)")
		assert.Contains(t, stdout.String(), "PORTATILES")
	})

	t.Run("rejects class without group", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		err := (&main.OptionsCmd{Class: "COMPUTO"}).Run(deps)

		assert.Equal(t, catalogo.EINVALID, catalogo.ErrorCode(err))
	})
}
