package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/doorcut/internal/importer"
	"github.com/piwi3910/doorcut/internal/project"
	"github.com/spf13/cobra"
)

func newImportCmd(_ *app) *cobra.Command {
	var output, name string

	cmd := &cobra.Command{
		Use:   "import <file.csv|file.xlsx>",
		Short: "Convert a spreadsheet door list into a schedule file",
		Long: `Import reads a door list from CSV or Excel and writes it as a schedule that
generate --schedule accepts. Columns are matched by header name (Mark, Type,
SO X, SO Y, Qty, Frame Thickness, Leaf Thickness, Active X) or, without a
header row, by position in that order.`,
		Example: `  doorcut import doors.csv -o doors.yaml
  doorcut import schedule.xlsx -o doors.toml --name "Block A"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			w := cmd.OutOrStdout()
			src := args[0]

			if _, err := project.ScheduleFormat(output); err != nil {
				return err
			}

			var res importer.ImportResult
			switch strings.ToLower(filepath.Ext(src)) {
			case ".csv", ".tsv", ".txt":
				res = importer.ImportCSV(src)
			case ".xlsx", ".xlsm":
				res = importer.ImportExcel(src)
			default:
				return fmt.Errorf("unsupported import file %s: want .csv or .xlsx", src)
			}

			for _, warn := range res.Warnings {
				logger.Warn(warn)
			}
			for _, e := range res.Errors {
				printError(w, "%s", e)
			}
			if len(res.Doors) == 0 {
				return fmt.Errorf("no doors imported from %s", src)
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			}
			sched := res.Schedule(name)
			if err := sched.Validate(); err != nil {
				return fmt.Errorf("invalid schedule from %s: %w", src, err)
			}
			if err := project.SaveSchedule(output, sched); err != nil {
				return err
			}

			printSuccess(w, "Imported %d door(s) from %s", len(sched.Doors), src)
			if len(res.Errors) > 0 {
				printWarning(w, "%d row(s) skipped", len(res.Errors))
			}
			printFile(w, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "schedule file to write (.json, .yaml or .toml)")
	cmd.Flags().StringVar(&name, "name", "", "schedule name (default: input file name)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
