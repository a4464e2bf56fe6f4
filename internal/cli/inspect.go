package cli

import (
	"fmt"

	"github.com/piwi3910/doorcut/internal/importer"
	"github.com/piwi3910/doorcut/internal/model"
	"github.com/spf13/cobra"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.dxf>",
		Short: "Read a face drawing back and print its sheet, cutout and features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			w := cmd.OutOrStdout()

			in, err := importer.InspectDXF(args[0])
			if err != nil {
				return err
			}
			for _, warn := range in.Warnings {
				logger.Warn(warn, "file", args[0])
			}

			printTitle(w, "%s", args[0])
			printKeyValue(w, "Sheet", in.Sheet.String())
			if !in.HasCutout() {
				printWarning(w, "no cutout found")
				return nil
			}
			x, y := in.Inset()
			printKeyValue(w, "Cutout", model.Dim{Width: in.Cutout.Width, Height: in.Cutout.Height}.String())
			printKeyValue(w, "Inset", fmt.Sprintf("%s, %s", mm(x), mm(y)))
			if x != model.CutoutInset || y != model.CutoutInset {
				printWarning(w, "cutout inset differs from %s", mm(model.CutoutInset))
			}
			printKeyValue(w, "Features", fmt.Sprintf("%d", len(in.Features)))
			for i, f := range in.Features {
				printDetail(w, "%d: %s x %s at (%s, %s)", i+1, mm(f.Width), mm(f.Height), mm(f.Origin.X), mm(f.Origin.Y))
			}
			return nil
		},
	}
}
