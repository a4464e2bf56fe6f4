package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/doorcut/internal/model"
)

var (
	// ErrUnknownThickness means the catalog stocks no sheets of the
	// requested thickness.
	ErrUnknownThickness = errors.New("no stock sheets for thickness")
	// ErrNoFittingSheet means no stocked sheet is large enough for the
	// cutout plus its inset.
	ErrNoFittingSheet = errors.New("no fitting stock sheet")
)

// SheetLookupError reports a cutout that could not be assigned a sheet.
type SheetLookupError struct {
	Width     float64
	Height    float64
	Thickness float64
	Err       error // ErrUnknownThickness or ErrNoFittingSheet
}

func (e *SheetLookupError) Error() string {
	return fmt.Sprintf("%v: %g*%g*%g cut out", e.Err, e.Width, e.Height, e.Thickness)
}

func (e *SheetLookupError) Unwrap() error { return e.Err }

// Selector picks stock sheets for cutouts.
type Selector struct {
	Catalog model.SheetCatalog
	Inset   float64 // clearance on every edge, in mm
}

// NewSelector returns a selector over catalog with the standard cutout inset.
func NewSelector(catalog model.SheetCatalog) *Selector {
	return &Selector{Catalog: catalog, Inset: model.CutoutInset}
}

// Select returns the first sheet of the given thickness, in catalog order,
// that holds cutout with Inset clearance on all four edges. Catalog order is
// the preference order; sheets are never re-sorted by area.
func (s *Selector) Select(cutout model.Dim, thickness float64) (model.Dim, error) {
	sizes, ok := s.Catalog.Sizes(thickness)
	if !ok {
		return model.Dim{}, &SheetLookupError{
			Width: cutout.Width, Height: cutout.Height, Thickness: thickness, Err: ErrUnknownThickness,
		}
	}
	for _, sheet := range sizes {
		if s.fits(cutout, sheet) {
			return sheet, nil
		}
	}
	return model.Dim{}, &SheetLookupError{
		Width: cutout.Width, Height: cutout.Height, Thickness: thickness, Err: ErrNoFittingSheet,
	}
}

// SelectOptional is Select for a cutout that may be absent, as returned by
// the passive face accessors. An absent cutout needs no sheet.
func (s *Selector) SelectOptional(cutout model.Dim, present bool, thickness float64) (model.Dim, bool, error) {
	if !present {
		return model.Dim{}, false, nil
	}
	sheet, err := s.Select(cutout, thickness)
	if err != nil {
		return model.Dim{}, false, err
	}
	return sheet, true, nil
}

func (s *Selector) fits(cutout, sheet model.Dim) bool {
	return cutout.Width+2*s.Inset <= sheet.Width && cutout.Height+2*s.Inset <= sheet.Height
}
