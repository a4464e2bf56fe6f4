package model

// CutoutInset is the clearance in mm kept between a cutout edge and the
// stock sheet edge, on every side.
const CutoutInset = 10.0

// SheetStock lists the stock sheet sizes available for one material
// thickness, in preference order.
type SheetStock struct {
	Thickness float64 `json:"thickness"`
	Sizes     []Dim   `json:"sizes"`
}

// SheetCatalog maps material thickness to available stock sheet sizes.
// A catalog is immutable once built: accessors hand out copies.
type SheetCatalog struct {
	stocks []SheetStock
}

// NewSheetCatalog builds a catalog from stocks. Declared order of the sizes
// is kept; it is the order in which sheets are preferred. A thickness listed
// twice keeps its first entry.
func NewSheetCatalog(stocks ...SheetStock) SheetCatalog {
	seen := make(map[float64]bool, len(stocks))
	cat := SheetCatalog{stocks: make([]SheetStock, 0, len(stocks))}
	for _, s := range stocks {
		if seen[s.Thickness] {
			continue
		}
		seen[s.Thickness] = true
		cat.stocks = append(cat.stocks, SheetStock{Thickness: s.Thickness, Sizes: copyDims(s.Sizes)})
	}
	return cat
}

// DefaultSheetCatalog returns the standard metal sheet sizes, smallest
// usable first for each thickness.
func DefaultSheetCatalog() SheetCatalog {
	std := []Dim{{Width: 1250, Height: 2500}}
	return NewSheetCatalog(
		SheetStock{Thickness: 1.2, Sizes: []Dim{
			{Width: 1000, Height: 2100},
			{Width: 1000, Height: 2500},
			{Width: 1250, Height: 2100},
			{Width: 1250, Height: 2500},
			{Width: 1250, Height: 3000},
			{Width: 1500, Height: 2100},
			{Width: 1500, Height: 2500},
			{Width: 1500, Height: 3000},
		}},
		SheetStock{Thickness: 1.5, Sizes: []Dim{
			{Width: 1000, Height: 2500},
			{Width: 1250, Height: 2200},
			{Width: 1250, Height: 2500},
			{Width: 1250, Height: 3000},
		}},
		SheetStock{Thickness: 2, Sizes: std},
		SheetStock{Thickness: 3, Sizes: std},
		SheetStock{Thickness: 5, Sizes: std},
		SheetStock{Thickness: 8, Sizes: std},
	)
}

// Sizes returns the sheet sizes for thickness in preference order. ok is
// false when the thickness is not stocked.
func (c SheetCatalog) Sizes(thickness float64) (sizes []Dim, ok bool) {
	for _, s := range c.stocks {
		if s.Thickness == thickness {
			return copyDims(s.Sizes), true
		}
	}
	return nil, false
}

// Thicknesses returns every stocked thickness in declared order.
func (c SheetCatalog) Thicknesses() []float64 {
	out := make([]float64, len(c.stocks))
	for i, s := range c.stocks {
		out[i] = s.Thickness
	}
	return out
}

// Stocks returns a copy of all catalog entries.
func (c SheetCatalog) Stocks() []SheetStock {
	out := make([]SheetStock, len(c.stocks))
	for i, s := range c.stocks {
		out[i] = SheetStock{Thickness: s.Thickness, Sizes: copyDims(s.Sizes)}
	}
	return out
}

func copyDims(dims []Dim) []Dim {
	if dims == nil {
		return []Dim{}
	}
	cp := make([]Dim, len(dims))
	copy(cp, dims)
	return cp
}
