package rules

import (
	"errors"
	"testing"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// markRule draws a 1x1 square at (n, n) so draw order is visible.
func markRule(name string, n float64) Rule {
	return RuleFunc{RuleName: name, Fn: func(_ *model.DoorGeometry, s Surface) error {
		return s.Rectangle(model.Point2D{X: n, Y: n}, 1, 1, model.ColourPlain)
	}}
}

func TestRegistry_FacesAreIndependent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(model.FaceFrontActive, markRule("fa", 1)))
	require.NoError(t, r.Register(model.FaceRearActive, markRule("ra", 2)))
	require.NoError(t, r.Register(model.FaceFrontPassive, markRule("fp", 3)))
	require.NoError(t, r.Register(model.FaceRearPassive, markRule("rp", 4)))

	for i, face := range model.Faces {
		list := r.Rules(face)
		require.Len(t, list, 1, face.String())
		rec := &Recorder{}
		require.NoError(t, r.Apply(face, model.DefaultDoorGeometry(), rec))
		require.Len(t, rec.Shapes, 1)
		assert.Equal(t, float64(i+1), rec.Shapes[0].Origin.X, "face %s ran the wrong rule", face)
	}
	assert.Equal(t, 4, r.Len())
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, r.Register(model.FaceRearActive, markRule(name, float64(i))))
	}

	names := []string{}
	for _, rule := range r.Rules(model.FaceRearActive) {
		names = append(names, rule.Name())
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)

	rec := &Recorder{}
	require.NoError(t, r.Apply(model.FaceRearActive, model.DefaultDoorGeometry(), rec))
	require.Len(t, rec.Shapes, 3)
	for i, sh := range rec.Shapes {
		assert.Equal(t, float64(i), sh.Origin.X)
	}
}

func TestRegistry_RulesReturnsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(model.FaceFrontActive, markRule("a", 0)))

	list := r.Rules(model.FaceFrontActive)
	list[0] = markRule("b", 0)

	assert.Equal(t, "a", r.Rules(model.FaceFrontActive)[0].Name())
}

func TestRegistry_RejectsInvalidFaceAndNilRule(t *testing.T) {
	r := NewRegistry()

	err := r.Register(model.Face(7), markRule("x", 0))
	assert.True(t, errors.Is(err, model.ErrInvalidFace))
	assert.Error(t, r.Register(model.FaceFrontActive, nil))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ApplyStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	require.NoError(t, r.Register(model.FaceFrontActive, RuleFunc{RuleName: "bad", Fn: func(*model.DoorGeometry, Surface) error { return boom }}))
	require.NoError(t, r.Register(model.FaceFrontActive, markRule("after", 5)))

	rec := &Recorder{}
	err := r.Apply(model.FaceFrontActive, model.DefaultDoorGeometry(), rec)

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "bad")
	assert.Empty(t, rec.Shapes)
}

func TestRegistry_ApplyEmptyFace(t *testing.T) {
	rec := &Recorder{}
	require.NoError(t, NewRegistry().Apply(model.FaceRearPassive, model.DefaultDoorGeometry(), rec))
	assert.Empty(t, rec.Shapes)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	require.Len(t, r.Rules(model.FaceFrontActive), 1)
	assert.Equal(t, "hinges", r.Rules(model.FaceFrontActive)[0].Name())
	assert.Empty(t, r.Rules(model.FaceRearActive))
	assert.Empty(t, r.Rules(model.FaceFrontPassive))
	assert.Empty(t, r.Rules(model.FaceRearPassive))
}

func TestRecorder_RejectsDegenerate(t *testing.T) {
	rec := &Recorder{}
	assert.Error(t, rec.Rectangle(model.Point2D{}, 0, 10, model.ColourPlain))
	assert.Error(t, rec.Rectangle(model.Point2D{}, 10, -1, model.ColourPlain))
	assert.Empty(t, rec.Shapes)
}

func TestReplay(t *testing.T) {
	shapes := []model.Shape{
		{Width: 100, Height: 200, Colour: model.ColourReference},
		{Origin: model.Point2D{X: 10, Y: 10}, Width: 50, Height: 60},
	}
	rec := &Recorder{}

	require.NoError(t, Replay(rec, shapes))
	assert.Equal(t, shapes, rec.Shapes)
}
