package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pms/internal/platform/config"
	"pms/internal/platform/db"
)

func newSeedCmd() *cobra.Command {
	var (
		dsn    string
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the user directory from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = config.Load().SeedDirectoryFile
			}
			dir, err := db.LoadSeedDirectory(file)
			if err != nil {
				return err
			}
			if dryRun {
				for _, user := range dir.Users {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.ID, user.Role, user.Department)
				}
				return nil
			}

			url := databaseURL(dsn)
			if url == "" {
				return fmt.Errorf("DATABASE_URL or --database-url is required")
			}
			pool, err := db.Connect(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()

			if err := db.Seed(cmd.Context(), pool, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users\n", len(dir.Users))
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "database-url", "", "Postgres URL (defaults to DATABASE_URL)")
	cmd.Flags().StringVar(&file, "file", "", "Directory YAML (defaults to SEED_DIRECTORY_FILE)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and print the directory without writing")
	return cmd
}
