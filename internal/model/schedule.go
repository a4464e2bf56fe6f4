package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidMark means a door mark cannot name an output directory.
	ErrInvalidMark = errors.New("invalid door mark")
	// ErrDuplicateMark means two doors in one schedule share a mark.
	ErrDuplicateMark = errors.New("duplicate door mark")
)

// DoorSpec is one line of a door schedule.
type DoorSpec struct {
	ID             string   `json:"id" yaml:"id" toml:"id"`
	Mark           string   `json:"mark" yaml:"mark" toml:"mark"`
	Type           DoorType `json:"type" yaml:"type" toml:"type"`
	SOX            float64  `json:"so_x" yaml:"so_x" toml:"so_x"`
	SOY            float64  `json:"so_y" yaml:"so_y" toml:"so_y"`
	FrameThickness float64  `json:"frame_thickness,omitempty" yaml:"frame_thickness,omitempty" toml:"frame_thickness,omitempty"`
	LeafThickness  float64  `json:"leaf_thickness,omitempty" yaml:"leaf_thickness,omitempty" toml:"leaf_thickness,omitempty"`
	ActiveLeafX    float64  `json:"active_leaf_x,omitempty" yaml:"active_leaf_x,omitempty" toml:"active_leaf_x,omitempty"` // Double only; 0 = even split
	Quantity       int      `json:"quantity" yaml:"quantity" toml:"quantity"`
}

// NewDoorSpec creates a schedule line with a generated ID and quantity 1.
func NewDoorSpec(mark string, t DoorType, soX, soY float64) DoorSpec {
	return DoorSpec{
		ID:       uuid.New().String()[:8],
		Mark:     mark,
		Type:     t,
		SOX:      soX,
		SOY:      soY,
		Quantity: 1,
	}
}

// Validate checks that the line describes a buildable door.
func (s DoorSpec) Validate() error {
	if err := checkMark(s.Mark); err != nil {
		return err
	}
	if s.SOX <= 0 || s.SOY <= 0 {
		return fmt.Errorf("door %q: structural opening must be positive, got %gx%g", s.Mark, s.SOX, s.SOY)
	}
	if s.Quantity < 0 {
		return fmt.Errorf("door %q: quantity must not be negative, got %d", s.Mark, s.Quantity)
	}
	if s.ActiveLeafX != 0 && s.Type != DoorDouble {
		return fmt.Errorf("door %q: active leaf width only applies to double doors", s.Mark)
	}
	return nil
}

// Geometry builds the door described by this line. An explicit active leaf
// width is applied after the opening is set so the split reset in SetSOX
// does not discard it.
func (s DoorSpec) Geometry() (*DoorGeometry, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	d := NewDoorGeometry(DoorOptions{
		Type:           s.Type,
		SOX:            s.SOX,
		SOY:            s.SOY,
		FrameThickness: s.FrameThickness,
		LeafThickness:  s.LeafThickness,
	})
	if s.ActiveLeafX != 0 {
		if err := d.SetActiveLeafX(s.ActiveLeafX); err != nil {
			return nil, fmt.Errorf("door %q: %w", s.Mark, err)
		}
	}
	return d, nil
}

// checkMark rejects marks that would escape or alias the door's output
// directory. An empty mark is allowed; Schedule.Add assigns one.
func checkMark(mark string) error {
	if strings.ContainsAny(mark, `/\`) || strings.Contains(mark, "..") || strings.TrimSpace(mark) == "." {
		return fmt.Errorf("%w %q: must not contain path separators or \"..\"", ErrInvalidMark, mark)
	}
	return nil
}

// Schedule is a named list of doors processed together.
type Schedule struct {
	Name  string     `json:"name" yaml:"name" toml:"name"`
	Doors []DoorSpec `json:"doors" yaml:"doors" toml:"doors"`
}

// NewSchedule creates an empty schedule.
func NewSchedule(name string) Schedule {
	return Schedule{Name: name, Doors: []DoorSpec{}}
}

// Add appends a door, assigning an ID and mark when missing.
func (s *Schedule) Add(spec DoorSpec) {
	if spec.ID == "" {
		spec.ID = uuid.New().String()[:8]
	}
	if strings.TrimSpace(spec.Mark) == "" {
		spec.Mark = fmt.Sprintf("D%02d", len(s.Doors)+1)
	}
	s.Doors = append(s.Doors, spec)
}

// FindByMark returns a pointer to the first door with the given mark, or nil.
func (s *Schedule) FindByMark(mark string) *DoorSpec {
	for i := range s.Doors {
		if s.Doors[i].Mark == mark {
			return &s.Doors[i]
		}
	}
	return nil
}

// Marks returns the door marks in schedule order.
func (s *Schedule) Marks() []string {
	marks := make([]string, len(s.Doors))
	for i, d := range s.Doors {
		marks[i] = d.Mark
	}
	return marks
}

// Validate checks every door and that marks are unique, since each door is
// written to a directory named after its mark. All problems are returned
// joined.
func (s *Schedule) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(s.Doors))
	for _, d := range s.Doors {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
		key := strings.ToLower(strings.TrimSpace(d.Mark))
		if seen[key] {
			errs = append(errs, fmt.Errorf("%w %q", ErrDuplicateMark, d.Mark))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}
