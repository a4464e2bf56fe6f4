package model

// BOMLine aggregates the stock sheets of one thickness and size.
type BOMLine struct {
	Thickness  float64 `json:"thickness"`
	Sheet      Dim     `json:"sheet"`
	Count      int     `json:"count"`       // Sheets to buy
	SheetArea  float64 `json:"sheet_area"`  // Total sheet area (sq mm)
	CutoutArea float64 `json:"cutout_area"` // Total cutout area (sq mm)
}

// Utilisation returns the cutout area as a percentage of the sheet area.
func (l BOMLine) Utilisation() float64 {
	if l.SheetArea == 0 {
		return 0
	}
	return l.CutoutArea / l.SheetArea * 100.0
}

// BOM is the sheet bill of materials for a set of doors.
type BOM struct {
	Lines []BOMLine `json:"lines"`
}

// TotalSheets returns the number of sheets across all lines.
func (b BOM) TotalSheets() int {
	var n int
	for _, l := range b.Lines {
		n += l.Count
	}
	return n
}

// TotalSheetArea returns the summed sheet area in sq mm.
func (b BOM) TotalSheetArea() float64 {
	var a float64
	for _, l := range b.Lines {
		a += l.SheetArea
	}
	return a
}

// Utilisation returns overall cutout area as a percentage of sheet area.
func (b BOM) Utilisation() float64 {
	var used, total float64
	for _, l := range b.Lines {
		used += l.CutoutArea
		total += l.SheetArea
	}
	if total == 0 {
		return 0
	}
	return used / total * 100.0
}

type bomKey struct {
	thickness float64
	sheet     Dim
}

// BuildBOM counts one sheet per planned face, multiplied by the door's
// quantity (zero counts as one). Lines keep the order in which each
// thickness/size pair first appears.
func BuildBOM(results []DoorResult) BOM {
	index := make(map[bomKey]int)
	var bom BOM
	for _, r := range results {
		qty := r.Quantity
		if qty <= 0 {
			qty = 1
		}
		for _, fl := range r.Faces {
			key := bomKey{thickness: fl.Thickness, sheet: fl.Sheet}
			i, ok := index[key]
			if !ok {
				i = len(bom.Lines)
				index[key] = i
				bom.Lines = append(bom.Lines, BOMLine{Thickness: fl.Thickness, Sheet: fl.Sheet})
			}
			line := &bom.Lines[i]
			line.Count += qty
			line.SheetArea += fl.Sheet.Area() * float64(qty)
			line.CutoutArea += fl.Cutout.Area() * float64(qty)
		}
	}
	return bom
}
