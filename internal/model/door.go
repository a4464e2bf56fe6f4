package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLeafOutOfRange is returned when an explicit leaf width on a double door
// would leave the other leaf with a non-positive width.
var ErrLeafOutOfRange = errors.New("leaf width out of range")

// DoorType selects a single or double leaf door set.
type DoorType int

const (
	DoorSingle DoorType = iota
	DoorDouble
)

func (t DoorType) String() string {
	if t == DoorDouble {
		return "Double"
	}
	return "Single"
}

// ParseDoorType accepts "single"/"double" (any case) and the short forms
// "s"/"d".
func ParseDoorType(s string) (DoorType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s", "1":
		return DoorSingle, nil
	case "double", "d", "2":
		return DoorDouble, nil
	default:
		return DoorSingle, fmt.Errorf("unknown door type %q", s)
	}
}

func (t DoorType) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(t.String())), nil
}

func (t *DoorType) UnmarshalText(text []byte) error {
	parsed, err := ParseDoorType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Offsets fixed by the door set manufacturing standard (mm).
const (
	FrameSODiffX            = 15.0 // structural opening width - frame width
	FrameSODiffY            = 10.0 // structural opening height - frame height
	LeafSumFrameDiffXSingle = 92.0 // frame width - leaf width, single leaf
	LeafSumFrameDiffXDouble = 95.0 // frame width - leaf sum, double leaf
	LeafSumFrameDiffY       = 50.0 // frame height - leaf height

	FrontActiveCutoutAllowance  = 120.0
	RearActiveCutoutAllowance   = 87.0
	FrontPassiveCutoutAllowance = 148.0
	RearPassiveCutoutAllowance  = 59.0
)

// Construction defaults.
const (
	DefaultSOX            = 1000.0
	DefaultSOY            = 2100.0
	DefaultFrameThickness = 1.5
	DefaultLeafThickness  = 1.2
)

// LeafSumFrameDiffX returns the frame-to-leaf-sum width offset for t.
func LeafSumFrameDiffX(t DoorType) float64 {
	if t == DoorDouble {
		return LeafSumFrameDiffXDouble
	}
	return LeafSumFrameDiffXSingle
}

// FrameXFromSOX and SOXFromFrameX are inverses.
func FrameXFromSOX(soX float64) float64 { return soX - FrameSODiffX }
func SOXFromFrameX(frameX float64) float64 { return frameX + FrameSODiffX }

// FrameYFromSOY and SOYFromFrameY are inverses.
func FrameYFromSOY(soY float64) float64 { return soY - FrameSODiffY }
func SOYFromFrameY(frameY float64) float64 { return frameY + FrameSODiffY }

// LeafSumXFromFrameX and FrameXFromLeafSumX are inverses for a given door type.
func LeafSumXFromFrameX(t DoorType, frameX float64) float64 {
	return frameX - LeafSumFrameDiffX(t)
}

func FrameXFromLeafSumX(t DoorType, leafSumX float64) float64 {
	return leafSumX + LeafSumFrameDiffX(t)
}

// LeafYFromFrameY derives the leaf height from the frame height.
func LeafYFromFrameY(frameY float64) float64 { return frameY - LeafSumFrameDiffY }

// DoorOptions configures NewDoorGeometry. Zero values take the defaults; a
// zero opening or thickness is never a buildable door, so zero cannot be
// requested explicitly.
type DoorOptions struct {
	Type           DoorType
	SOX            float64
	SOY            float64
	FrameThickness float64
	LeafThickness  float64
}

// DoorGeometry is one door-and-frame unit. Only the structural opening, the
// door type, the material thicknesses and (for double doors) the leaf split
// are stored; every other dimension is derived on read.
type DoorGeometry struct {
	doorType DoorType
	soX      float64
	soY      float64

	// split holds (active, passive) leaf widths for double doors and always
	// sums to LeafSumX. Unused for single doors.
	split [2]float64

	FrameThickness float64
	LeafThickness  float64
}

// NewDoorGeometry builds a door from opts.
func NewDoorGeometry(opts DoorOptions) *DoorGeometry {
	d := &DoorGeometry{
		doorType:       opts.Type,
		soX:            opts.SOX,
		soY:            opts.SOY,
		FrameThickness: opts.FrameThickness,
		LeafThickness:  opts.LeafThickness,
	}
	if d.soX == 0 {
		d.soX = DefaultSOX
	}
	if d.soY == 0 {
		d.soY = DefaultSOY
	}
	if d.FrameThickness == 0 {
		d.FrameThickness = DefaultFrameThickness
	}
	if d.LeafThickness == 0 {
		d.LeafThickness = DefaultLeafThickness
	}
	d.resetSplit()
	return d
}

// DefaultDoorGeometry returns a single door with the default opening.
func DefaultDoorGeometry() *DoorGeometry {
	return NewDoorGeometry(DoorOptions{})
}

// Clone returns an independent copy of d.
func (d *DoorGeometry) Clone() *DoorGeometry {
	cp := *d
	return &cp
}

// Type returns the door type.
func (d *DoorGeometry) Type() DoorType { return d.doorType }

// IsDouble reports whether the door has a passive leaf.
func (d *DoorGeometry) IsDouble() bool { return d.doorType == DoorDouble }

// SOX returns the structural opening width.
func (d *DoorGeometry) SOX() float64 { return d.soX }

// SOY returns the structural opening height.
func (d *DoorGeometry) SOY() float64 { return d.soY }

// SetSOX sets the structural opening width.
//
// On a double door this resets the leaf split to two equal halves. Any
// asymmetric split set earlier through SetActiveLeafX or SetPassiveLeafX is
// discarded.
func (d *DoorGeometry) SetSOX(v float64) {
	d.soX = v
	d.resetSplit()
}

// SetSOY sets the structural opening height. The leaf split is unaffected.
func (d *DoorGeometry) SetSOY(v float64) {
	d.soY = v
}

// FrameX returns the frame width.
func (d *DoorGeometry) FrameX() float64 { return FrameXFromSOX(d.soX) }

// SetFrameX back-solves the structural opening width. Like SetSOX it resets
// a double door's leaf split to equal halves.
func (d *DoorGeometry) SetFrameX(v float64) {
	d.SetSOX(SOXFromFrameX(v))
}

// FrameY returns the frame height.
func (d *DoorGeometry) FrameY() float64 { return FrameYFromSOY(d.soY) }

// SetFrameY back-solves the structural opening height.
func (d *DoorGeometry) SetFrameY(v float64) {
	d.SetSOY(SOYFromFrameY(v))
}

// LeafSumX returns the total width of all leaves.
func (d *DoorGeometry) LeafSumX() float64 {
	return LeafSumXFromFrameX(d.doorType, d.FrameX())
}

// ActiveLeafX returns the active leaf width. A single door's active leaf is
// the whole leaf sum.
func (d *DoorGeometry) ActiveLeafX() float64 {
	if d.doorType == DoorDouble {
		return d.split[0]
	}
	return d.LeafSumX()
}

// SetActiveLeafX sets the active leaf width.
//
// Single doors back-solve the structural opening width. Double doors keep
// the opening and move the split, so the passive leaf takes the remainder;
// the value must lie strictly between 0 and LeafSumX.
func (d *DoorGeometry) SetActiveLeafX(v float64) error {
	if d.doorType != DoorDouble {
		d.SetFrameX(FrameXFromLeafSumX(d.doorType, v))
		return nil
	}
	sum := d.LeafSumX()
	if err := checkLeafWidth("active", v, sum); err != nil {
		return err
	}
	d.split = [2]float64{v, sum - v}
	return nil
}

// PassiveLeafX returns the passive leaf width. ok is false for single doors.
func (d *DoorGeometry) PassiveLeafX() (width float64, ok bool) {
	if d.doorType != DoorDouble {
		return 0, false
	}
	return d.split[1], true
}

// SetPassiveLeafX sets the passive leaf width of a double door; the active
// leaf takes the remainder. Like SetActiveLeafX the value must lie strictly
// between 0 and LeafSumX, so neither leaf can be zero or negative; an out of
// range value returns ErrLeafOutOfRange and leaves the split unchanged. It
// does nothing on a single door.
func (d *DoorGeometry) SetPassiveLeafX(v float64) error {
	if d.doorType != DoorDouble {
		return nil
	}
	sum := d.LeafSumX()
	if err := checkLeafWidth("passive", v, sum); err != nil {
		return err
	}
	d.split = [2]float64{sum - v, v}
	return nil
}

// ActiveLeafY returns the active leaf height.
func (d *DoorGeometry) ActiveLeafY() float64 {
	return LeafYFromFrameY(d.FrameY())
}

// PassiveLeafY returns the passive leaf height. ok is false for single doors.
func (d *DoorGeometry) PassiveLeafY() (height float64, ok bool) {
	if d.doorType != DoorDouble {
		return 0, false
	}
	return LeafYFromFrameY(d.FrameY()), true
}

// FrontActiveCutout returns the front face cutout of the active leaf.
func (d *DoorGeometry) FrontActiveCutout() Dim {
	return Dim{Width: d.ActiveLeafX() + FrontActiveCutoutAllowance, Height: d.ActiveLeafY()}
}

// RearActiveCutout returns the rear face cutout of the active leaf.
func (d *DoorGeometry) RearActiveCutout() Dim {
	return Dim{Width: d.ActiveLeafX() + RearActiveCutoutAllowance, Height: d.ActiveLeafY()}
}

// FrontPassiveCutout returns the front face cutout of the passive leaf, if
// the door has one.
func (d *DoorGeometry) FrontPassiveCutout() (Dim, bool) {
	return d.passiveCutout(FrontPassiveCutoutAllowance)
}

// RearPassiveCutout returns the rear face cutout of the passive leaf, if the
// door has one.
func (d *DoorGeometry) RearPassiveCutout() (Dim, bool) {
	return d.passiveCutout(RearPassiveCutoutAllowance)
}

func (d *DoorGeometry) passiveCutout(allowance float64) (Dim, bool) {
	x, ok := d.PassiveLeafX()
	if !ok {
		return Dim{}, false
	}
	y, _ := d.PassiveLeafY()
	return Dim{Width: x + allowance, Height: y}, true
}

// Cutout returns the cutout for face. ok is false when the face does not
// exist on this door or face is not a leaf face.
func (d *DoorGeometry) Cutout(face Face) (Dim, bool) {
	switch face {
	case FaceFrontActive:
		return d.FrontActiveCutout(), true
	case FaceRearActive:
		return d.RearActiveCutout(), true
	case FaceFrontPassive:
		return d.FrontPassiveCutout()
	case FaceRearPassive:
		return d.RearPassiveCutout()
	default:
		return Dim{}, false
	}
}

func (d *DoorGeometry) resetSplit() {
	if d.doorType != DoorDouble {
		d.split = [2]float64{}
		return
	}
	half := d.LeafSumX() / 2
	d.split = [2]float64{half, half}
}

func checkLeafWidth(leaf string, v, sum float64) error {
	if v >= sum || v <= 0 {
		return fmt.Errorf("%w: %s leaf width %g must be between 0 and leaf sum %g",
			ErrLeafOutOfRange, leaf, v, sum)
	}
	return nil
}
