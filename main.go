package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-layergroups/cmd"
	"github.com/mattsolo1/grove-layergroups/cmd/config"
	"github.com/mattsolo1/grove-layergroups/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:           "lg",
		Short:         "Manage nestable layer groups in an ordered layer store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		var err error
		svc, err = config.InitService()
		return err
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewGroupCmd(&svc))
	rootCmd.AddCommand(cmd.NewLayerCmd(&svc))
	rootCmd.AddCommand(cmd.NewImportCmd(&svc))
	rootCmd.AddCommand(cmd.NewExportCmd(&svc))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
