package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/piwi3910/doorcut/internal/engine"
	"github.com/piwi3910/doorcut/internal/export"
	"github.com/piwi3910/doorcut/internal/model"
	"github.com/piwi3910/doorcut/internal/project"
	"github.com/piwi3910/doorcut/internal/rules"
	"github.com/spf13/cobra"
)

type generateOpts struct {
	door     doorFlags
	schedule string
	output   string
	mark     string
	pdf      bool
	labels   bool
	xlsx     bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one DXF cutting drawing per door face",
		Long: `Generate plans every leaf face of a door, picks a stock sheet for each
cutout and writes one DXF drawing per face. With --schedule every door in the
schedule is generated into its own sub-directory named after the door mark.`,
		Example: `  doorcut generate --so-x 1000 --so-y 2100 -o out
  doorcut generate --schedule doors.yaml --pdf --xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				opts.output = a.config.OutputDir
			}
			if !cmd.Flags().Changed("pdf") {
				opts.pdf = a.config.ExportPDF
			}
			if !cmd.Flags().Changed("labels") {
				opts.labels = a.config.ExportLabels
			}
			if !cmd.Flags().Changed("xlsx") {
				opts.xlsx = a.config.ExportXLSX
			}
			return runGenerate(cmd, a, opts)
		},
	}

	opts.door.register(cmd)
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", "door schedule file (.json, .yaml or .toml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.mark, "mark", "D01", "door mark used in reports; with --schedule, generate only this door")
	cmd.Flags().BoolVar(&opts.pdf, "pdf", false, "also write a PDF cut list")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "also write PDF panel labels")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also write an Excel cut list")
	for _, name := range []string{"type", "so-x", "so-y", "frame-x", "frame-y", "active-x", "passive-x"} {
		cmd.MarkFlagsMutuallyExclusive("schedule", name)
	}

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	w := cmd.OutOrStdout()
	planner := engine.NewPlanner(a.catalog, rules.DefaultRegistry())
	run := newRunLog(logger)

	var results []model.DoorResult

	if opts.schedule != "" {
		sched, err := project.LoadSchedule(opts.schedule)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("mark") {
			spec := sched.FindByMark(opts.mark)
			if spec == nil {
				return fmt.Errorf("no door %q in schedule %s", opts.mark, opts.schedule)
			}
			sched.Doors = []model.DoorSpec{*spec}
		}
		logger.Debug("Schedule loaded", "path", opts.schedule, "doors", len(sched.Doors))
		printInfo(w, "Schedule %s: %d door(s)", sched.Name, len(sched.Doors))
		for _, spec := range sched.Doors {
			if err := ctx.Err(); err != nil {
				return err
			}
			if spec.FrameThickness == 0 {
				spec.FrameThickness = a.config.DefaultFrameThickness
			}
			if spec.LeafThickness == 0 {
				spec.LeafThickness = a.config.DefaultLeafThickness
			}
			result, err := planner.PlanSpec(spec)
			if err != nil {
				return err
			}
			if err := writeDoor(run, filepath.Join(opts.output, spec.Mark), result); err != nil {
				return err
			}
			results = append(results, result)
		}
		a.config.AddRecentSchedule(opts.schedule)
		if err := a.saveConfig(); err != nil {
			logger.Warn("Could not record recent schedule", "err", err)
		}
	} else {
		door, err := opts.door.build(cmd, a.config)
		if err != nil {
			return err
		}
		result := planner.Plan(door)
		result.Mark = opts.mark
		result.Quantity = 1
		if err := writeDoor(run, opts.output, result); err != nil {
			return err
		}
		results = append(results, result)
	}

	if err := writeReports(run, opts, results); err != nil {
		return err
	}

	run.finish()
	printSuccess(w, "Generated %d door(s) into %s", len(results), opts.output)
	for _, f := range run.files {
		printFile(w, f)
	}
	return nil
}

// writeDoor writes the face drawings of one door into dir.
func writeDoor(run *runLog, dir string, result model.DoorResult) error {
	written, err := export.ExportDXF(dir, result)
	run.door(result, dir, written)
	if err != nil {
		return fmt.Errorf("door %s: %w", result.Mark, err)
	}
	return nil
}

// writeReports writes the optional PDF, label and XLSX artefacts. A failed
// report does not stop the others.
func writeReports(run *runLog, opts generateOpts, results []model.DoorResult) error {
	reports := []struct {
		enabled bool
		name    string
		write   func(path string) error
	}{
		{opts.pdf, "cutlist.pdf", func(p string) error { return export.ExportPDF(p, results) }},
		{opts.labels, "labels.pdf", func(p string) error { return export.ExportLabels(p, results) }},
		{opts.xlsx, "cutlist.xlsx", func(p string) error { return export.ExportXLSX(p, results, model.BuildBOM(results)) }},
	}

	var errs []error
	for _, r := range reports {
		if !r.enabled {
			continue
		}
		path := filepath.Join(opts.output, r.name)
		if err := r.write(path); err != nil {
			errs = append(errs, err)
			continue
		}
		run.report(path)
	}
	return errors.Join(errs...)
}
