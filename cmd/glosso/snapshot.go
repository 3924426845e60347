package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glosso-dev/glosso/internal/database"
	"github.com/glosso-dev/glosso/internal/snapshot"
)

func newSnapshotCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "snapshot",
		Short: "Archive point-in-time copies of the glossary in a local database",
	}
	flags := rootCommand.PersistentFlags()

	var force bool
	flags.BoolVar(&force, "force", false, "archive even when nothing changed")

	rootCommand.AddCommand(&cobra.Command{
		Use:   "take",
		Short: "Fetch the glossary and archive it as a new snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()
			if err := database.Migrate(ctx, db); err != nil {
				return fmt.Errorf("database.Migrate > %w", err)
			}

			archiver := snapshot.NewArchiver(newAPIClient(cfg), snapshot.NewDBRepository(db), os.Stdout)
			if _, err := archiver.Take(ctx, snapshot.TakeOptions{Force: force}); err != nil {
				return fmt.Errorf("archiver.Take > %w", err)
			}
			return nil
		},
	})

	rootCommand.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "List archived snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			snapshots, err := snapshot.NewDBRepository(db).FindAll(ctx)
			if err != nil {
				return fmt.Errorf("repository.FindAll > %w", err)
			}
			for _, s := range snapshots {
				fmt.Printf("%6d  %s  %d entries\n", s.ID, s.TakenAt.Format("2006-01-02 15:04:05"), s.EntryCount)
			}
			fmt.Printf("%d snapshots\n", len(snapshots))
			return nil
		},
	})

	return &rootCommand
}
