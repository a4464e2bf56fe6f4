// Package export writes planned door faces to DXF cutting drawings and to
// PDF, label and spreadsheet documents for the shop floor.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/piwi3910/doorcut/internal/rules"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerSheet    = "SHEET"    // stock sheet boundary, never cut
	LayerCutout   = "CUTOUT"   // cutout boundary
	LayerFeatures = "FEATURES" // rule geometry such as hinge mortises
)

var layerColours = []struct {
	name   string
	colour color.ColorNumber
}{
	{LayerSheet, color.ColorNumber(8)}, // grey
	{LayerCutout, dxf.DefaultColor},
	{LayerFeatures, color.ColorNumber(1)}, // red
}

// Canvas is a rules.Surface backed by a DXF drawing. Plain rectangles go to
// the current layer; reference rectangles always go to LayerSheet.
type Canvas struct {
	drawing *drawing.Drawing
	layer   string
}

// NewCanvas creates a drawing with the sheet, cutout and feature layers.
// The cutout layer is current.
func NewCanvas() (*Canvas, error) {
	d := dxf.NewDrawing()
	for _, l := range layerColours {
		if _, err := d.AddLayer(l.name, l.colour, dxf.DefaultLineType, false); err != nil {
			return nil, fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}
	return &Canvas{drawing: d, layer: LayerCutout}, nil
}

// SetLayer selects the layer for subsequent plain rectangles.
func (c *Canvas) SetLayer(name string) {
	c.layer = name
}

// Rectangle draws a closed LWPOLYLINE.
func (c *Canvas) Rectangle(origin model.Point2D, w, h float64, colour model.Colour) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("degenerate rectangle %gx%g at (%g, %g)", w, h, origin.X, origin.Y)
	}
	layer := c.layer
	if colour == model.ColourReference {
		layer = LayerSheet
	}
	if err := c.drawing.ChangeLayer(layer); err != nil {
		return fmt.Errorf("select layer %s: %w", layer, err)
	}

	var vertices [][]float64
	for _, p := range (model.Shape{Origin: origin, Width: w, Height: h}).Outline() {
		vertices = append(vertices, []float64{p.X, p.Y})
	}
	if _, err := c.drawing.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("draw rectangle: %w", err)
	}
	return nil
}

// SaveAs writes the drawing to path.
func (c *Canvas) SaveAs(path string) error {
	return c.drawing.SaveAs(path)
}

// WriteFaceDXF writes one face drawing: the sheet boundary at the origin, the
// cutout boundary inset from it, then the feature rectangles.
func WriteFaceDXF(path string, fl model.FaceLayout) error {
	c, err := NewCanvas()
	if err != nil {
		return err
	}

	if err := c.Rectangle(model.Point2D{}, fl.Sheet.Width, fl.Sheet.Height, model.ColourReference); err != nil {
		return fmt.Errorf("%s sheet: %w", fl.Face, err)
	}
	cut := fl.CutoutShape()
	c.SetLayer(LayerCutout)
	if err := c.Rectangle(cut.Origin, cut.Width, cut.Height, cut.Colour); err != nil {
		return fmt.Errorf("%s cutout: %w", fl.Face, err)
	}
	c.SetLayer(LayerFeatures)
	if err := rules.Replay(c, fl.Features); err != nil {
		return fmt.Errorf("%s features: %w", fl.Face, err)
	}

	if err := c.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// FaceFileName returns the drawing file name for face.
func FaceFileName(face model.Face) string {
	return face.String() + ".dxf"
}

// ExportDXF writes one drawing per planned face of result into dir and
// returns the paths written. Skipped faces produce no file. A failed face
// does not stop the others; all failures are returned joined.
func ExportDXF(dir string, result model.DoorResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	var errs []error
	for _, fl := range result.Faces {
		path := filepath.Join(dir, FaceFileName(fl.Face))
		if err := WriteFaceDXF(path, fl); err != nil {
			errs = append(errs, err)
			continue
		}
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}
