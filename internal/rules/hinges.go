package rules

import "github.com/piwi3910/doorcut/internal/model"

// Hinge mortise layout (mm).
const (
	HingeWidth  = 30.0
	HingeHeight = 80.0
	HingeInsetX = 40.0  // from the cutout's vertical edge
	HingeInsetY = 100.0 // from the cutout's top and bottom edges
)

// Hinges returns the three-point hinge rule: top, bottom and centre mortises
// along the hinge edge of the active leaf, measured from the cutout origin.
func Hinges() Rule {
	return RuleFunc{RuleName: "hinges", Fn: drawHinges}
}

func drawHinges(door *model.DoorGeometry, s Surface) error {
	x := model.CutoutInset + HingeInsetX
	leafY := door.ActiveLeafY()
	ys := []float64{
		model.CutoutInset + HingeInsetY,                       // top
		model.CutoutInset + leafY - HingeInsetY - HingeHeight, // bottom
		model.CutoutInset + (leafY-HingeHeight)/2,             // centre
	}
	for _, y := range ys {
		if err := s.Rectangle(model.Point2D{X: x, Y: y}, HingeWidth, HingeHeight, model.ColourPlain); err != nil {
			return err
		}
	}
	return nil
}
