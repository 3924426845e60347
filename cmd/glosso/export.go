package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glosso-dev/glosso/internal/controller"
	"github.com/glosso-dev/glosso/internal/export"
	"github.com/glosso-dev/glosso/internal/glossary"
)

func newExportCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "export",
		Short: "Write the glossary to a file",
	}

	rootCommand.AddCommand(&cobra.Command{
		Use:   "json",
		Short: "Export the glossary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctrl := controller.New(newAPIClient(cfg))
			blob, err := ctrl.ExportJSON(cmd.Context())
			if err != nil {
				return fmt.Errorf("controller.ExportJSON > %w", err)
			}
			path, err := export.WriteJSONBlob(cfg.Exports.Directory, blob)
			if err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", path)
			return nil
		},
	})

	rootCommand.AddCommand(newExportFileCommand("yaml", "Export the glossary as YAML", export.WriteYAML))
	rootCommand.AddCommand(newExportFileCommand("pdf", "Export the glossary as a printable PDF sheet", export.WritePDF))

	return &rootCommand
}

func newExportFileCommand(use, short string, write func(string, []glossary.Entry) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			entries, err := newAPIClient(cfg).GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("client.GetAll > %w", err)
			}
			path, err := write(cfg.Exports.Directory, entries)
			if err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", path)
			return nil
		},
	}
}
