package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pms/internal/platform/config"
	"pms/internal/platform/db"
)

func newMigrateCmd() *cobra.Command {
	var (
		dsn           string
		migrationsDir string
	)

	cmd := &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Apply, roll back or inspect schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{db.MigrateUp, db.MigrateDown, db.MigrateVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			url := databaseURL(dsn)
			if url == "" {
				return fmt.Errorf("DATABASE_URL or --database-url is required")
			}
			dir := migrationsDir
			if dir == "" {
				dir = config.Load().MigrationsDir
			}
			if err := db.Migrate(args[0], dir, url); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "database-url", "", "Postgres URL (defaults to DATABASE_URL)")
	cmd.Flags().StringVar(&migrationsDir, "dir", "", "Migrations directory (defaults to MIGRATIONS_DIR)")
	return cmd
}
