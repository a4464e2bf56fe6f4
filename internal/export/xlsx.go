package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetCutList = "Cut List"
	SheetSheets  = "Sheets"
	SheetSkipped = "Skipped"
)

var (
	cutListHeader = []interface{}{"Mark", "Face", "Quantity", "Thickness (mm)", "Cutout W", "Cutout H", "Sheet W", "Sheet H", "Features", "Utilisation %"}
	sheetsHeader  = []interface{}{"Thickness (mm)", "Sheet W", "Sheet H", "Count", "Sheet Area (m2)", "Cutout Area (m2)", "Utilisation %"}
	skippedHeader = []interface{}{"Mark", "Face", "Reason"}
)

// ExportXLSX writes a workbook with the per-face cut list, the sheet bill of
// materials, and the faces that could not be planned. Faces a door does not
// have are left out of the Skipped sheet.
func ExportXLSX(path string, results []model.DoorResult, bom model.BOM) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCutList); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetSheets, SheetSkipped} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	cutList := [][]interface{}{cutListHeader}
	skipped := [][]interface{}{skippedHeader}
	for _, r := range results {
		for _, fl := range r.Faces {
			cutList = append(cutList, []interface{}{
				doorLabel(r), fl.Face.String(), quantity(r), fl.Thickness,
				fl.Cutout.Width, fl.Cutout.Height, fl.Sheet.Width, fl.Sheet.Height,
				len(fl.Features), round1(fl.Utilisation()),
			})
		}
		for _, sk := range r.Skipped {
			if sk.NotApplicable() {
				continue
			}
			skipped = append(skipped, []interface{}{doorLabel(r), sk.Face.String(), sk.Reason})
		}
	}

	sheets := [][]interface{}{sheetsHeader}
	for _, l := range bom.Lines {
		sheets = append(sheets, []interface{}{
			l.Thickness, l.Sheet.Width, l.Sheet.Height, l.Count,
			round1(l.SheetArea / 1e6), round1(l.CutoutArea / 1e6), round1(l.Utilisation()),
		})
	}
	if len(bom.Lines) > 0 {
		sheets = append(sheets, []interface{}{
			"Total", "", "", bom.TotalSheets(), round1(bom.TotalSheetArea() / 1e6), "", round1(bom.Utilisation()),
		})
	}

	for name, rows := range map[string][][]interface{}{
		SheetCutList: cutList,
		SheetSheets:  sheets,
		SheetSkipped: skipped,
	} {
		if err := writeRows(f, name, rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, ref, err)
			}
		}
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
