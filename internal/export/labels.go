package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/doorcut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each panel label's QR code.
type LabelInfo struct {
	Mark      string  `json:"mark"`
	Face      string  `json:"face"`
	CutoutW   float64 `json:"cutout_w_mm"`
	CutoutH   float64 `json:"cutout_h_mm"`
	SheetW    float64 `json:"sheet_w_mm"`
	SheetH    float64 `json:"sheet_h_mm"`
	Thickness float64 `json:"thickness_mm"`
	Copy      int     `json:"copy"`
	Of        int     `json:"of"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one for every face panel
// to be cut (a door of quantity 3 gets three labels per face). Labels are
// laid out on a standard label sheet (Avery 5160, 3 x 10 on US Letter).
func ExportLabels(path string, results []model.DoorResult) error {
	labels := CollectLabelInfos(results)
	if len(labels) == 0 {
		return fmt.Errorf("no face panels to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, i, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %s %s: %w", label.Mark, label.Face, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, index int, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Door mark (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	mark := info.Mark
	if pdf.GetStringWidth(mark) > textW {
		for len(mark) > 0 && pdf.GetStringWidth(mark+"...") > textW {
			mark = mark[:len(mark)-1]
		}
		mark += "..."
	}
	pdf.CellFormat(textW, 4.5, mark, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, info.Face, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+8.5)
	dims := fmt.Sprintf("%.0f x %.0f mm", info.CutoutW, info.CutoutH)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+12)
	sheet := fmt.Sprintf("Sheet %.0fx%.0f / %.1f mm", info.SheetW, info.SheetH, info.Thickness)
	pdf.CellFormat(textW, 3, sheet, "", 1, "L", false, 0, "")

	if info.Of > 1 {
		pdf.SetXY(textX, y+labelPadding+15)
		pdf.CellFormat(textW, 3, fmt.Sprintf("%d of %d", info.Copy, info.Of), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos expands results into one label per face panel, doors in
// order, each door's copies together.
func CollectLabelInfos(results []model.DoorResult) []LabelInfo {
	var labels []LabelInfo
	for _, r := range results {
		qty := quantity(r)
		for _, fl := range r.Faces {
			for c := 1; c <= qty; c++ {
				labels = append(labels, LabelInfo{
					Mark:      doorLabel(r),
					Face:      fl.Face.String(),
					CutoutW:   fl.Cutout.Width,
					CutoutH:   fl.Cutout.Height,
					SheetW:    fl.Sheet.Width,
					SheetH:    fl.Sheet.Height,
					Thickness: fl.Thickness,
					Copy:      c,
					Of:        qty,
				})
			}
		}
	}
	return labels
}
