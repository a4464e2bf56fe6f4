// Package rules holds the secondary cutout features (hinge mortises and the
// like) drawn on top of each face's base cutout rectangle.
package rules

import (
	"fmt"

	"github.com/piwi3910/doorcut/internal/model"
)

// Rule adds feature geometry for one face. Rules read the door and never
// modify it.
type Rule interface {
	Name() string
	Draw(door *model.DoorGeometry, s Surface) error
}

// RuleFunc adapts a plain function to a Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(door *model.DoorGeometry, s Surface) error
}

func (f RuleFunc) Name() string { return f.RuleName }

func (f RuleFunc) Draw(door *model.DoorGeometry, s Surface) error {
	return f.Fn(door, s)
}

// Registry keeps an independent, ordered rule list per face. It is built
// once at startup and passed to whatever draws faces.
type Registry struct {
	rules map[model.Face][]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[model.Face][]Rule, len(model.Faces))}
}

// DefaultRegistry returns the standard rule set: a three-point hinge layout
// on the front face of the active leaf.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(model.FaceFrontActive, Hinges())
	return r
}

// Register appends rule to face's list.
func (r *Registry) Register(face model.Face, rule Rule) error {
	if !face.Valid() {
		return fmt.Errorf("%w: %d", model.ErrInvalidFace, int(face))
	}
	if rule == nil {
		return fmt.Errorf("nil rule for face %s", face)
	}
	r.rules[face] = append(r.rules[face], rule)
	return nil
}

// Rules returns a copy of face's rules in registration order.
func (r *Registry) Rules(face model.Face) []Rule {
	list := r.rules[face]
	out := make([]Rule, len(list))
	copy(out, list)
	return out
}

// Len returns the total number of registered rules.
func (r *Registry) Len() int {
	var n int
	for _, list := range r.rules {
		n += len(list)
	}
	return n
}

// Apply runs face's rules in order against s, stopping at the first error.
func (r *Registry) Apply(face model.Face, door *model.DoorGeometry, s Surface) error {
	for _, rule := range r.rules[face] {
		if err := rule.Draw(door, s); err != nil {
			return fmt.Errorf("rule %s on %s: %w", rule.Name(), face, err)
		}
	}
	return nil
}
