package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/doorcut/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a preview document. Each planned face is rendered on
// its own page with the sheet, cutout and features to scale, followed by a
// summary page with the sheet bill of materials and any skipped faces.
func ExportPDF(path string, results []model.DoorResult) error {
	if countFaces(results) == 0 {
		return fmt.Errorf("no faces to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, r := range results {
		for _, fl := range r.Faces {
			pdf.AddPage()
			renderFacePage(pdf, r, fl)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, results, model.BuildBOM(results))

	return pdf.OutputFileAndClose(path)
}

// renderFacePage draws a single face layout on the current PDF page.
func renderFacePage(pdf *fpdf.Fpdf, r model.DoorResult, fl model.FaceLayout) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s (%s mm, %.1f mm)", doorLabel(r), fl.Face, fl.Sheet, fl.Thickness)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Cutout: %s mm | Features: %d | Quantity: %d | Utilisation: %.1f%%",
		fl.Cutout, len(fl.Features), quantity(r), fl.Utilisation())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/fl.Sheet.Width, drawHeight/fl.Sheet.Height)

	canvasW := fl.Sheet.Width * scale
	canvasH := fl.Sheet.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Stock sheet
	pdf.SetFillColor(220, 220, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Cutout
	cut := fl.CutoutShape()
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	view := previewFrame{offsetX: offsetX, offsetY: offsetY, canvasH: canvasH, scale: scale}
	x, y, w, h := view.rect(cut)
	pdf.Rect(x, y, w, h, "FD")

	// Features
	pdf.SetFillColor(244, 67, 54)
	pdf.SetDrawColor(160, 0, 0)
	pdf.SetLineWidth(0.2)
	for _, f := range fl.Features {
		style := "FD"
		if f.Colour == model.ColourReference {
			style = "D"
		}
		x, y, w, h := view.rect(f)
		pdf.Rect(x, y, w, h, style)
	}

	// Cutout dimensions in the middle of the cutout
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	dims := fmt.Sprintf("%.0f x %.0f", fl.Cutout.Width, fl.Cutout.Height)
	dimsW := pdf.GetStringWidth(dims)
	if dimsW < cut.Width*scale-2 {
		x, y, w, h := view.rect(cut)
		pdf.SetXY(x+w/2-dimsW/2, y+h/2-2)
		pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	}

	drawDimensionAnnotations(pdf, fl.Sheet, offsetX, offsetY, canvasW, canvasH)
}

// previewFrame maps drawing coordinates (origin lower left, Y up) onto the
// page canvas (origin upper left, Y down).
type previewFrame struct {
	offsetX, offsetY float64
	canvasH          float64
	scale            float64
}

// rect returns the page position and size of s.
func (f previewFrame) rect(s model.Shape) (x, y, w, h float64) {
	w = s.Width * f.scale
	h = s.Height * f.scale
	x = f.offsetX + s.Origin.X*f.scale
	y = f.offsetY + f.canvasH - (s.Origin.Y+s.Height)*f.scale
	return x, y, w, h
}

// drawDimensionAnnotations adds width and height dimension labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.Dim, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the sheet)
	widthLabel := fmt.Sprintf("%.0f mm", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the sheet, rotated)
	heightLabel := fmt.Sprintf("%.0f mm", sheet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final page with the sheet bill of materials.
func renderSummaryPage(pdf *fpdf.Fpdf, results []model.DoorResult, bom model.BOM) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Door Cutout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Doors", fmt.Sprintf("%d", len(results))},
		{"Faces Planned", fmt.Sprintf("%d", countFaces(results))},
		{"Total Sheets", fmt.Sprintf("%d", bom.TotalSheets())},
		{"Total Sheet Area", fmt.Sprintf("%.2f m2", bom.TotalSheetArea()/1e6)},
		{"Overall Utilisation", fmt.Sprintf("%.1f%%", bom.Utilisation())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheets Required", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{35, 55, 30, 60, 50}
	headers := []string{"Thickness", "Sheet", "Count", "Cutout / Sheet Area", "Utilisation"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, line := range bom.Lines {
		rowData := []string{
			fmt.Sprintf("%.1f mm", line.Thickness),
			fmt.Sprintf("%.0f x %.0f mm", line.Sheet.Width, line.Sheet.Height),
			fmt.Sprintf("%d", line.Count),
			fmt.Sprintf("%.2f / %.2f m²", line.CutoutArea/1e6, line.SheetArea/1e6),
			fmt.Sprintf("%.1f%%", line.Utilisation()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Skipped faces that exist on the door
	var skipped []string
	for _, r := range results {
		for _, sk := range r.Skipped {
			if sk.NotApplicable() {
				continue
			}
			skipped = append(skipped, fmt.Sprintf("- %s %s: %s", doorLabel(r), sk.Face, sk.Reason))
		}
	}
	if len(skipped) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Skipped Faces", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, text := range skipped {
			if y > pageHeight-marginBottom-8 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight-5, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by doorcut", "", 0, "C", false, 0, "")
}

// countFaces returns the number of planned faces across all doors.
func countFaces(results []model.DoorResult) int {
	total := 0
	for _, r := range results {
		total += len(r.Faces)
	}
	return total
}

func doorLabel(r model.DoorResult) string {
	if r.Mark != "" {
		return r.Mark
	}
	return "Door"
}

func quantity(r model.DoorResult) int {
	if r.Quantity <= 0 {
		return 1
	}
	return r.Quantity
}
