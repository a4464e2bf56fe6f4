package importer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ErrNoSheet means a drawing has no rectangle that could be the stock sheet.
var ErrNoSheet = errors.New("no rectangles found in drawing")

const pointTolerance = 0.01 // mm

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// Inspection is the face geometry recovered from a DXF drawing. Positions
// are relative to the sheet's lower-left corner.
type Inspection struct {
	Sheet    model.Dim
	Cutout   model.Shape
	Features []model.Shape
	Warnings []string
}

// HasCutout reports whether a second rectangle was found.
func (in Inspection) HasCutout() bool {
	return in.Cutout.Width > 0 && in.Cutout.Height > 0
}

// Inset returns the distance from the sheet edges to the cutout on each axis.
func (in Inspection) Inset() (x, y float64) {
	return in.Cutout.Origin.X, in.Cutout.Origin.Y
}

// Matches reports whether the drawing agrees with fl to within tolerance.
func (in Inspection) Matches(fl model.FaceLayout, tolerance float64) bool {
	near := func(a, b float64) bool { return math.Abs(a-b) <= tolerance }
	want := fl.CutoutShape()
	if !near(in.Sheet.Width, fl.Sheet.Width) || !near(in.Sheet.Height, fl.Sheet.Height) {
		return false
	}
	if !near(in.Cutout.Width, want.Width) || !near(in.Cutout.Height, want.Height) ||
		!near(in.Cutout.Origin.X, want.Origin.X) || !near(in.Cutout.Origin.Y, want.Origin.Y) {
		return false
	}
	return len(in.Features) == len(fl.Features)
}

// InspectDXF reads a face drawing back. Closed axis-aligned rectangles from
// LWPOLYLINE entities or chained LINE entities are collected; the largest
// is the sheet, the next largest the cutout, the rest features in drawing
// order. Anything else is reported in Warnings.
func InspectDXF(path string) (Inspection, error) {
	var in Inspection

	drawing, err := dxf.Open(path)
	if err != nil {
		return in, fmt.Errorf("cannot open DXF file: %w", err)
	}

	var rects []model.Shape
	var segments []segment
	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			rect, ok := lwPolylineToRect(e)
			if !ok {
				in.Warnings = append(in.Warnings, "Skipped LWPOLYLINE that is not an axis-aligned rectangle")
				continue
			}
			rects = append(rects, rect)

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			in.Warnings = append(in.Warnings, fmt.Sprintf("Skipped unsupported entity %T", ent))
		}
	}

	for _, o := range chainSegments(segments, pointTolerance) {
		if rect, ok := outlineToRect(o); ok {
			rects = append(rects, rect)
		} else {
			in.Warnings = append(in.Warnings, "Skipped closed LINE chain that is not a rectangle")
		}
	}

	if len(rects) == 0 {
		return in, fmt.Errorf("%s: %w", path, ErrNoSheet)
	}

	// Rank by area, ties in drawing order.
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rects[order[a]].Width*rects[order[a]].Height > rects[order[b]].Width*rects[order[b]].Height
	})

	sheet := rects[order[0]]
	in.Sheet = model.Dim{Width: sheet.Width, Height: sheet.Height}
	relative := func(s model.Shape) model.Shape {
		s.Origin = model.Point2D{X: s.Origin.X - sheet.Origin.X, Y: s.Origin.Y - sheet.Origin.Y}
		return s
	}

	cutoutIdx := -1
	if len(order) > 1 {
		cutoutIdx = order[1]
		in.Cutout = relative(rects[cutoutIdx])
	}
	for i, r := range rects {
		if i == order[0] || i == cutoutIdx {
			continue
		}
		in.Features = append(in.Features, relative(r))
	}

	return in, nil
}

// lwPolylineToRect converts a LWPOLYLINE to a rectangle. Vertices with a
// bulge describe arcs and never form a rectangle.
func lwPolylineToRect(lw *entity.LwPolyline) (model.Shape, bool) {
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return model.Shape{}, false
		}
	}
	var outline model.Outline
	for _, v := range lw.Vertices {
		outline = append(outline, model.Point2D{X: v[0], Y: v[1]})
	}
	return outlineToRect(outline)
}

// outlineToRect reports whether o is an axis-aligned rectangle and returns
// it. A repeated closing vertex is allowed.
func outlineToRect(o model.Outline) (model.Shape, bool) {
	if len(o) == 5 && pointsClose(o[0], o[4], pointTolerance) {
		o = o[:4]
	}
	if len(o) != 4 {
		return model.Shape{}, false
	}
	min, max := o.BoundingBox()
	w, h := max.X-min.X, max.Y-min.Y
	if w < pointTolerance || h < pointTolerance {
		return model.Shape{}, false
	}
	corners := [4]bool{}
	for _, p := range o {
		onLeft := math.Abs(p.X-min.X) <= pointTolerance
		onRight := math.Abs(p.X-max.X) <= pointTolerance
		onBottom := math.Abs(p.Y-min.Y) <= pointTolerance
		onTop := math.Abs(p.Y-max.Y) <= pointTolerance
		switch {
		case onLeft && onBottom:
			corners[0] = true
		case onRight && onBottom:
			corners[1] = true
		case onRight && onTop:
			corners[2] = true
		case onLeft && onTop:
			corners[3] = true
		default:
			return model.Shape{}, false
		}
	}
	if !(corners[0] && corners[1] && corners[2] && corners[3]) {
		return model.Shape{}, false
	}
	return model.Shape{Origin: min, Width: w, Height: h}, math.Abs(outlineArea(o)-w*h) <= pointTolerance*(w+h)
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them
// connected. Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) []model.Outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, model.Outline(chain[:len(chain)-1]))
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o model.Outline) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}
