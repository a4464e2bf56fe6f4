package export

import (
	"testing"

	"github.com/piwi3910/doorcut/internal/engine"
	"github.com/piwi3910/doorcut/internal/model"
	"github.com/stretchr/testify/require"
)

// planTestDoors returns a single door (two faces, two not applicable) and a
// double door of quantity 2 (four faces).
func planTestDoors(t *testing.T) []model.DoorResult {
	t.Helper()
	p := engine.DefaultPlanner()

	single, err := p.PlanSpec(model.DoorSpec{ID: "a", Mark: "D01", Type: model.DoorSingle, SOX: 1000, SOY: 2100, Quantity: 1})
	require.NoError(t, err)
	double, err := p.PlanSpec(model.DoorSpec{ID: "b", Mark: "D02", Type: model.DoorDouble, SOX: 2000, SOY: 2100, Quantity: 2})
	require.NoError(t, err)
	return []model.DoorResult{single, double}
}
