/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/indextuple/pkg/config"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file with the default page geometry and an
example schema, unless one already exists.

Example:
  itupctl init --config ./itupctl.yaml --data-dir ./data`,
		Annotations: map[string]string{"skipEnv": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")

			existed := config.ConfigExists(configPath)
			cfg, err := config.BootstrapConfig(configPath, dataDir)
			if err != nil {
				return err
			}
			if existed {
				cmd.Printf("Configuration already exists: %s\n", configPath)
			} else {
				cmd.Printf("Wrote configuration: %s\n", configPath)
			}
			cmd.Printf("Data directory: %s\n", cfg.DataDir)
			cmd.Printf("Schemas: %v\n", cfg.SchemaNames())
			return nil
		},
	}
	cmd.Flags().String("data-dir", "", "Data directory to record in the new configuration")
	return cmd
}
