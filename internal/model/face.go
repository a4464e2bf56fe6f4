package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFace is returned for a face identity outside the four leaf faces.
var ErrInvalidFace = errors.New("invalid face")

// Face identifies one side of one leaf.
type Face int

const (
	FaceFrontActive Face = iota
	FaceRearActive
	FaceFrontPassive
	FaceRearPassive
)

// Faces lists every face in export order.
var Faces = []Face{FaceFrontActive, FaceRearActive, FaceFrontPassive, FaceRearPassive}

var faceNames = map[Face]string{
	FaceFrontActive:  "front_active",
	FaceRearActive:   "rear_active",
	FaceFrontPassive: "front_passive",
	FaceRearPassive:  "rear_passive",
}

// String returns the face identity used for output file names.
func (f Face) String() string {
	if name, ok := faceNames[f]; ok {
		return name
	}
	return fmt.Sprintf("face(%d)", int(f))
}

// Valid reports whether f is one of the four leaf faces.
func (f Face) Valid() bool {
	_, ok := faceNames[f]
	return ok
}

// Passive reports whether the face belongs to the passive leaf.
func (f Face) Passive() bool {
	return f == FaceFrontPassive || f == FaceRearPassive
}

// ParseFace converts a face identity ("front_active", "front-active", ...)
// to a Face.
func ParseFace(s string) (Face, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for f, name := range faceNames {
		if name == norm {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFace, s)
}

func (f Face) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFace, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Face) UnmarshalText(text []byte) error {
	parsed, err := ParseFace(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
