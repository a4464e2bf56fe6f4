package model

import (
	"errors"
	"fmt"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Dim is a width/height pair in mm.
type Dim struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Area returns Width * Height.
func (d Dim) Area() float64 {
	return d.Width * d.Height
}

func (d Dim) String() string {
	return fmt.Sprintf("%gx%g", d.Width, d.Height)
}

// Colour tags drawn geometry. Reference geometry is informational only and
// is never cut.
type Colour int

const (
	ColourPlain     Colour = iota // Cut geometry
	ColourReference               // Stock sheet boundary and other non-cut markings
)

func (c Colour) String() string {
	if c == ColourReference {
		return "Reference"
	}
	return "Plain"
}

// Shape is a closed axis-aligned rectangle on a drawing.
type Shape struct {
	Origin Point2D `json:"origin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Colour Colour  `json:"colour"`
}

// Outline returns the four corners of the rectangle, counter-clockwise from
// the origin.
func (s Shape) Outline() Outline {
	x, y := s.Origin.X, s.Origin.Y
	return Outline{
		{X: x, Y: y},
		{X: x + s.Width, Y: y},
		{X: x + s.Width, Y: y + s.Height},
		{X: x, Y: y + s.Height},
	}
}

// FaceLayout is the planned geometry for one leaf face: the stock sheet it is
// cut from, the cutout boundary, and the feature rectangles added by rules.
type FaceLayout struct {
	Face      Face    `json:"face"`
	Thickness float64 `json:"thickness"`
	Cutout    Dim     `json:"cutout"`
	Sheet     Dim     `json:"sheet"`
	Features  []Shape `json:"features"`
}

// SheetShape returns the stock sheet boundary at the drawing origin.
func (fl FaceLayout) SheetShape() Shape {
	return Shape{Width: fl.Sheet.Width, Height: fl.Sheet.Height, Colour: ColourReference}
}

// CutoutShape returns the cutout boundary, inset from the sheet edge by
// CutoutInset on both axes.
func (fl FaceLayout) CutoutShape() Shape {
	return Shape{
		Origin: Point2D{X: CutoutInset, Y: CutoutInset},
		Width:  fl.Cutout.Width,
		Height: fl.Cutout.Height,
		Colour: ColourPlain,
	}
}

// Shapes returns every rectangle on the face drawing in draw order:
// sheet, cutout, then features.
func (fl FaceLayout) Shapes() []Shape {
	shapes := make([]Shape, 0, len(fl.Features)+2)
	shapes = append(shapes, fl.SheetShape(), fl.CutoutShape())
	return append(shapes, fl.Features...)
}

// Utilisation returns the cutout area as a percentage of the sheet area.
func (fl FaceLayout) Utilisation() float64 {
	sa := fl.Sheet.Area()
	if sa == 0 {
		return 0
	}
	return fl.Cutout.Area() / sa * 100.0
}

// ErrNotApplicable marks a face that does not exist on the door, such as the
// passive faces of a single door.
var ErrNotApplicable = errors.New("not applicable")

// SkippedFace records a face that produced no drawing and why.
type SkippedFace struct {
	Face   Face   `json:"face"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// NotApplicable reports whether the face was skipped only because the door
// does not have it. Reason is checked too so results loaded from JSON still
// answer correctly.
func (s SkippedFace) NotApplicable() bool {
	return errors.Is(s.Err, ErrNotApplicable) || s.Reason == ErrNotApplicable.Error()
}

// DoorResult holds the planned faces of one door.
type DoorResult struct {
	DoorID   string        `json:"door_id"`
	Mark     string        `json:"mark"`
	Quantity int           `json:"quantity"`
	Faces    []FaceLayout  `json:"faces"`
	Skipped  []SkippedFace `json:"skipped"`
}

// Layout returns the layout for face, if it was planned.
func (dr DoorResult) Layout(face Face) (FaceLayout, bool) {
	for _, fl := range dr.Faces {
		if fl.Face == face {
			return fl, true
		}
	}
	return FaceLayout{}, false
}
