package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glosso-dev/glosso/internal/cli"
	"github.com/glosso-dev/glosso/internal/controller"
)

func newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit the glossary interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			browserCLI, err := cli.NewGlossaryBrowserCLI(
				ctx,
				controller.New(newAPIClient(cfg)),
				cfg.Table.RowsPerPage,
				cfg.Table.ColumnOrder,
				cfg.Exports.Directory,
			)
			if err != nil {
				return err
			}

			fmt.Println("Glossary browser started. Type 'help' for commands, 'quit' to exit.")
			return browserCLI.Run(ctx, browserCLI)
		},
	}
}
