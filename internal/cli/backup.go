package cli

import (
	"github.com/piwi3910/doorcut/internal/project"
	"github.com/spf13/cobra"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the configuration and sheet catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file.json>",
		Short: "Write the configuration and sheet catalog to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ExportAllData(args[0], a.config, a.catalog); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Backup written")
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	})

	var merge bool
	importCmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Restore the configuration and sheet catalog from a backup",
		Long: `Import restores the configuration from a backup and writes its sheet
catalog next to the config file. With --merge the thicknesses in the
backup are added to the catalog in use instead of replacing it; sizes
already stocked are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}

			cat := backup.CatalogOf()
			if merge {
				cat = project.MergeCatalog(a.catalog, cat)
			}
			catalogPath := project.CatalogPathFor(a.configPath)
			if err := project.SaveCatalog(catalogPath, cat); err != nil {
				return err
			}
			a.config = backup.Config
			a.config.CatalogFile = catalogPath
			if err := a.saveConfig(); err != nil {
				return err
			}
			logger.Debug("Backup restored", "version", backup.Version, "created", backup.CreatedAt, "merge", merge)

			printSuccess(cmd.OutOrStdout(), "Restored backup from %s", args[0])
			printFile(cmd.OutOrStdout(), a.configPath)
			printFile(cmd.OutOrStdout(), catalogPath)
			return nil
		},
	}
	importCmd.Flags().BoolVar(&merge, "merge", false, "add the backup's thicknesses to the current catalog instead of replacing it")
	cmd.AddCommand(importCmd)

	return cmd
}
