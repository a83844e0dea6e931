package main

import (
	"github.com/spf13/cobra"

	"pms/internal/platform/config"
)

func newRootCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:           "pmsctl",
		Short:         "Operator tools for the performance management service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.LoadDotEnv(envFile)
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file to load before reading configuration")
	cmd.AddCommand(newMigrateCmd(), newSeedCmd(), newBandsCmd())
	return cmd
}

func databaseURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.Load().DatabaseURL
}
