package cli

import (
	"fmt"
	"io"

	"github.com/piwi3910/doorcut/internal/engine"
	"github.com/piwi3910/doorcut/internal/model"
	"github.com/piwi3910/doorcut/internal/rules"
	"github.com/spf13/cobra"
)

func newDimsCmd(a *app) *cobra.Command {
	var door doorFlags

	cmd := &cobra.Command{
		Use:   "dims",
		Short: "Print the derived dimensions, cutouts and sheets of one door",
		Example: `  doorcut dims --so-x 1000 --so-y 2100
  doorcut dims -t double --frame-x 1985 --active-x 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := door.build(cmd, a.config)
			if err != nil {
				return err
			}
			planner := engine.NewPlanner(a.catalog, rules.DefaultRegistry())
			printDims(cmd.OutOrStdout(), d, planner.Plan(d))
			return nil
		},
	}
	door.register(cmd)
	return cmd
}

func printDims(w io.Writer, d *model.DoorGeometry, result model.DoorResult) {
	printTitle(w, "%s door", d.Type())
	printKeyValue(w, "Opening", mm(d.SOX())+" x "+mm(d.SOY()))
	printKeyValue(w, "Frame", mm(d.FrameX())+" x "+mm(d.FrameY()))
	printKeyValue(w, "Leaf sum", mm(d.LeafSumX()))
	printKeyValue(w, "Active leaf", mm(d.ActiveLeafX())+" x "+mm(d.ActiveLeafY()))
	if x, ok := d.PassiveLeafX(); ok {
		y, _ := d.PassiveLeafY()
		printKeyValue(w, "Passive leaf", mm(x)+" x "+mm(y))
	}
	printKeyValue(w, "Thickness", fmt.Sprintf("frame %g mm, leaf %g mm", d.FrameThickness, d.LeafThickness))

	fmt.Fprintln(w)
	printTitle(w, "Faces")
	for _, face := range model.Faces {
		if fl, ok := result.Layout(face); ok {
			printKeyValue(w, face.String(), fmt.Sprintf("cutout %s on sheet %s (%.1f%%)", fl.Cutout, fl.Sheet, fl.Utilisation()))
			continue
		}
		for _, sk := range result.Skipped {
			if sk.Face != face {
				continue
			}
			if sk.NotApplicable() {
				printKeyValue(w, face.String(), styleDim.Render("n/a"))
				continue
			}
			if c, ok := d.Cutout(face); ok {
				printKeyValue(w, face.String(), "cutout "+c.String())
			}
			printWarning(w, "%s: %s", face, sk.Reason)
		}
	}
}
