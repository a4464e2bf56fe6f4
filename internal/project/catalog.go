package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/doorcut/internal/model"
)

// CatalogPathFor returns the catalog file kept next to the config file at
// configPath, e.g. ~/.doorcut/catalog.json for the default config.
func CatalogPathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "catalog.json")
}

// SaveCatalog writes the catalog entries to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, cat model.SheetCatalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat.Stocks(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog reads a catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it
// there so it can be edited.
func LoadCatalog(path string) (model.SheetCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := model.DefaultSheetCatalog()
			if saveErr := SaveCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return model.SheetCatalog{}, err
	}
	var stocks []model.SheetStock
	if err := json.Unmarshal(data, &stocks); err != nil {
		return model.SheetCatalog{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, s := range stocks {
		if s.Thickness <= 0 {
			return model.SheetCatalog{}, fmt.Errorf("%s: thickness must be positive, got %g", path, s.Thickness)
		}
		for _, d := range s.Sizes {
			if d.Width <= 0 || d.Height <= 0 {
				return model.SheetCatalog{}, fmt.Errorf("%s: sheet %s for %g mm must be positive", path, d, s.Thickness)
			}
		}
	}
	return model.NewSheetCatalog(stocks...), nil
}

// MergeCatalog adds the thicknesses of imported that existing does not stock.
// Entries already in existing are kept as they are.
func MergeCatalog(existing, imported model.SheetCatalog) model.SheetCatalog {
	return model.NewSheetCatalog(append(existing.Stocks(), imported.Stocks()...)...)
}
