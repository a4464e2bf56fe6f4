package cli

import (
	"fmt"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/spf13/cobra"
)

// doorFlags defines one door on the command line. Zero values fall back to
// the config defaults.
type doorFlags struct {
	doorType       string
	soX, soY       float64
	frameX, frameY float64
	activeX        float64
	passiveX       float64
	frameThickness float64
	leafThickness  float64
}

func (f *doorFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.doorType, "type", "t", "", "door type: single or double (default from config)")
	fs.Float64Var(&f.soX, "so-x", model.DefaultSOX, "structural opening width (mm)")
	fs.Float64Var(&f.soY, "so-y", model.DefaultSOY, "structural opening height (mm)")
	fs.Float64Var(&f.frameX, "frame-x", 0, "frame width (mm), instead of --so-x")
	fs.Float64Var(&f.frameY, "frame-y", 0, "frame height (mm), instead of --so-y")
	fs.Float64Var(&f.activeX, "active-x", 0, "active leaf width (mm)")
	fs.Float64Var(&f.passiveX, "passive-x", 0, "passive leaf width (mm), double doors only")
	fs.Float64Var(&f.frameThickness, "frame-thickness", 0, "frame material thickness (mm)")
	fs.Float64Var(&f.leafThickness, "leaf-thickness", 0, "leaf material thickness (mm)")
	cmd.MarkFlagsMutuallyExclusive("so-x", "frame-x")
	cmd.MarkFlagsMutuallyExclusive("so-y", "frame-y")
	cmd.MarkFlagsMutuallyExclusive("active-x", "passive-x")
}

// build creates the door. Leaf widths are applied last because setting the
// opening resets a double door's split.
func (f *doorFlags) build(cmd *cobra.Command, cfg model.AppConfig) (*model.DoorGeometry, error) {
	t := cfg.DefaultDoorType
	if f.doorType != "" {
		parsed, err := model.ParseDoorType(f.doorType)
		if err != nil {
			return nil, err
		}
		t = parsed
	}

	opts := model.DoorOptions{
		Type:           t,
		SOX:            f.soX,
		SOY:            f.soY,
		FrameThickness: f.frameThickness,
		LeafThickness:  f.leafThickness,
	}
	cfg.ApplyToOptions(&opts)
	if opts.SOX <= 0 || opts.SOY <= 0 {
		return nil, fmt.Errorf("structural opening must be positive, got %gx%g", opts.SOX, opts.SOY)
	}
	door := model.NewDoorGeometry(opts)

	changed := cmd.Flags().Changed
	if changed("frame-x") {
		door.SetFrameX(f.frameX)
	}
	if changed("frame-y") {
		door.SetFrameY(f.frameY)
	}
	if door.SOX() <= 0 || door.SOY() <= 0 {
		return nil, fmt.Errorf("frame %gx%g is too small", door.FrameX(), door.FrameY())
	}
	if changed("active-x") {
		if err := door.SetActiveLeafX(f.activeX); err != nil {
			return nil, err
		}
	}
	if changed("passive-x") {
		if !door.IsDouble() {
			return nil, fmt.Errorf("--passive-x only applies to double doors")
		}
		if err := door.SetPassiveLeafX(f.passiveX); err != nil {
			return nil, err
		}
	}
	// A single door's active width back-solves the opening.
	if door.SOX() <= 0 {
		return nil, fmt.Errorf("active leaf %g mm gives a non-positive opening width %g", door.ActiveLeafX(), door.SOX())
	}
	return door, nil
}
