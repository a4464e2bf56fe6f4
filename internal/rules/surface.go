package rules

import (
	"fmt"

	"github.com/piwi3910/doorcut/internal/model"
)

// Surface is a drawing a rule adds geometry to.
type Surface interface {
	// Rectangle adds a closed rectangle with its lower-left corner at origin.
	Rectangle(origin model.Point2D, w, h float64, colour model.Colour) error
}

// Recorder is a Surface that keeps every rectangle in draw order, so one set
// of rule output can be replayed onto several real drawings.
type Recorder struct {
	Shapes []model.Shape
}

// Rectangle records the rectangle. Non-positive sizes are rejected.
func (r *Recorder) Rectangle(origin model.Point2D, w, h float64, colour model.Colour) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("rectangle at (%g, %g) has non-positive size %gx%g", origin.X, origin.Y, w, h)
	}
	r.Shapes = append(r.Shapes, model.Shape{Origin: origin, Width: w, Height: h, Colour: colour})
	return nil
}

// Replay draws shapes onto s in order.
func Replay(s Surface, shapes []model.Shape) error {
	for i, sh := range shapes {
		if err := s.Rectangle(sh.Origin, sh.Width, sh.Height, sh.Colour); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}
