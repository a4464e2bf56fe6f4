package cli

import (
	"fmt"
	"strings"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/spf13/cobra"
)

func newSheetsCmd(a *app) *cobra.Command {
	var thickness float64

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List the stock sheet catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			stocks := a.catalog.Stocks()
			if cmd.Flags().Changed("thickness") {
				sizes, ok := a.catalog.Sizes(thickness)
				if !ok {
					return fmt.Errorf("no stock sheets for thickness %g mm", thickness)
				}
				stocks = []model.SheetStock{{Thickness: thickness, Sizes: sizes}}
			}

			source := "built-in"
			if a.config.CatalogFile != "" {
				source = a.config.CatalogFile
			}
			printTitle(w, "Sheet catalog (%s)", source)
			for _, s := range stocks {
				names := make([]string, len(s.Sizes))
				for i, d := range s.Sizes {
					names[i] = d.String()
				}
				printKeyValue(w, fmt.Sprintf("%g mm", s.Thickness), strings.Join(names, ", "))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&thickness, "thickness", 0, "only list sheets of this thickness (mm)")
	return cmd
}
