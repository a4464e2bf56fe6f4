package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPathFor(t *testing.T) {
	path := CatalogPathFor(DefaultConfigPath())
	assert.Equal(t, "catalog.json", filepath.Base(path))
	assert.Equal(t, ".doorcut", filepath.Base(filepath.Dir(path)))

	assert.Equal(t, filepath.Join("a", "b", "catalog.json"), CatalogPathFor(filepath.Join("a", "b", "config.json")))
}

func TestSaveAndLoadCatalog_KeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	cat := model.NewSheetCatalog(
		model.SheetStock{Thickness: 2, Sizes: []model.Dim{{Width: 1500, Height: 3000}, {Width: 1000, Height: 2000}}},
		model.SheetStock{Thickness: 1, Sizes: []model.Dim{{Width: 1250, Height: 2500}}},
	)

	require.NoError(t, SaveCatalog(path, cat))
	loaded, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 1}, loaded.Thicknesses())
	sizes, ok := loaded.Sizes(2)
	require.True(t, ok)
	assert.Equal(t, []model.Dim{{Width: 1500, Height: 3000}, {Width: 1000, Height: 2000}}, sizes)
}

func TestLoadCatalog_MissingFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")

	cat, err := LoadCatalog(path)

	require.NoError(t, err)
	assert.Equal(t, model.DefaultSheetCatalog().Stocks(), cat.Stocks())
	_, err = os.Stat(path)
	assert.NoError(t, err, "default catalog should be written")
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"zero thickness", `[{"thickness":0,"sizes":[{"width":1,"height":1}]}]`},
		{"negative size", `[{"thickness":1.2,"sizes":[{"width":-1,"height":1}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			_, err := LoadCatalog(path)
			assert.Error(t, err)
		})
	}
}

func TestMergeCatalog(t *testing.T) {
	existing := model.NewSheetCatalog(model.SheetStock{Thickness: 1.2, Sizes: []model.Dim{{Width: 1000, Height: 2000}}})
	imported := model.NewSheetCatalog(
		model.SheetStock{Thickness: 1.2, Sizes: []model.Dim{{Width: 9999, Height: 9999}}},
		model.SheetStock{Thickness: 3, Sizes: []model.Dim{{Width: 1250, Height: 2500}}},
	)

	merged := MergeCatalog(existing, imported)

	assert.Equal(t, []float64{1.2, 3}, merged.Thicknesses())
	sizes, _ := merged.Sizes(1.2)
	assert.Equal(t, []model.Dim{{Width: 1000, Height: 2000}}, sizes, "existing entries win")
}
