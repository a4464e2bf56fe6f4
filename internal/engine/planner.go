// Package engine turns door geometry into per-face sheet layouts: it picks a
// stock sheet for every cutout and runs the face's rules to add features.
package engine

import (
	"fmt"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/piwi3910/doorcut/internal/rules"
)

// Planner lays out every face of a door.
type Planner struct {
	Selector *Selector
	Registry *rules.Registry
}

// NewPlanner returns a planner over the given catalog and rule registry.
func NewPlanner(catalog model.SheetCatalog, registry *rules.Registry) *Planner {
	return &Planner{Selector: NewSelector(catalog), Registry: registry}
}

// DefaultPlanner uses the default catalog and rule set.
func DefaultPlanner() *Planner {
	return NewPlanner(model.DefaultSheetCatalog(), rules.DefaultRegistry())
}

// Plan lays out the four faces in export order. A face that cannot be laid
// out is recorded in Skipped and never stops the others.
func (p *Planner) Plan(door *model.DoorGeometry) model.DoorResult {
	var result model.DoorResult
	for _, face := range model.Faces {
		fl, err := p.PlanFace(door, face)
		if err != nil {
			result.Skipped = append(result.Skipped, model.SkippedFace{
				Face:   face,
				Reason: err.Error(),
				Err:    err,
			})
			continue
		}
		result.Faces = append(result.Faces, fl)
	}
	return result
}

// PlanSpec builds the door described by spec and plans it. The result
// carries the schedule line's ID, mark and quantity.
func (p *Planner) PlanSpec(spec model.DoorSpec) (model.DoorResult, error) {
	door, err := spec.Geometry()
	if err != nil {
		return model.DoorResult{}, err
	}
	result := p.Plan(door)
	result.DoorID = spec.ID
	result.Mark = spec.Mark
	result.Quantity = spec.Quantity
	return result, nil
}

// PlanFace lays out a single face. All faces are cut from leaf stock.
func (p *Planner) PlanFace(door *model.DoorGeometry, face model.Face) (model.FaceLayout, error) {
	cutout, ok := door.Cutout(face)
	if !ok && !face.Passive() {
		// Active faces always have a cutout.
		return model.FaceLayout{}, fmt.Errorf("%w: %d", model.ErrInvalidFace, int(face))
	}
	sheet, ok, err := p.Selector.SelectOptional(cutout, ok, door.LeafThickness)
	if err != nil {
		return model.FaceLayout{}, err
	}
	if !ok {
		return model.FaceLayout{}, model.ErrNotApplicable
	}

	rec := &rules.Recorder{}
	if p.Registry != nil {
		if err := p.Registry.Apply(face, door, rec); err != nil {
			return model.FaceLayout{}, fmt.Errorf("draw features: %w", err)
		}
	}
	return model.FaceLayout{
		Face:      face,
		Thickness: door.LeafThickness,
		Cutout:    cutout,
		Sheet:     sheet,
		Features:  rec.Shapes,
	}, nil
}
