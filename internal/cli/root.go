package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/piwi3910/doorcut/internal/model"
	"github.com/piwi3910/doorcut/internal/project"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by main with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// app holds state shared by every command: the persistent flags and the
// configuration loaded before the command runs.
type app struct {
	configPath string
	verbose    bool

	config  model.AppConfig
	catalog model.SheetCatalog
}

// saveConfig writes the current configuration back to the config file.
func (a *app) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}

// NewRootCommand builds the doorcut command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "doorcut",
		Short:        "doorcut derives door and frame cutouts and writes DXF cutting drawings",
		Long:         `doorcut computes the frame and leaf dimensions of single and double doors from the structural opening, selects a stock sheet for every leaf face, and writes one DXF cutting drawing per face.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if a.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := project.LoadAppConfig(a.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cat, err := project.LoadCatalogFor(cfg)
			if err != nil {
				return fmt.Errorf("load sheet catalog: %w", err)
			}
			a.config = cfg
			a.catalog = cat
			logger.Debug("config loaded", "path", a.configPath, "catalog", cfg.CatalogFile)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("doorcut %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVar(&a.configPath, "config", project.DefaultConfigPath(), "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDimsCmd(a))
	root.AddCommand(newSheetsCmd(a))
	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newBackupCmd(a))

	return root
}

// Execute runs the doorcut CLI with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	return root.ExecuteContext(ctx)
}
