package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "show or initialize the servers file",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var (
	configPath bool
	configInit bool
)

func runConfig(_ *cobra.Command, _ []string) error {
	if configInit {
		created, err := deps.Servers.Init()
		if err != nil {
			return err
		}
		if created {
			writer().Success("Configuration initialized successfully.")
		} else {
			writer().Info("Configuration file already exists.")
		}
	}

	if configPath {
		writer().Printf("Configuration file: %s\n", deps.Servers.Path())
	}

	if configPath || configInit {
		return nil
	}

	writer().Printf("Configuration file: %s\n", deps.Servers.Path())
	if !deps.Servers.Exists() {
		writer().Println("Configuration file does not exist. Use --init to create it.")
		return nil
	}

	list, err := deps.Servers.Load()
	if err != nil {
		return err
	}

	writer().Printf("Servers configured: %d\n", len(list.List()))
	return nil
}

func init() {
	configCmd.Flags().BoolVarP(&configPath, "path", "p", false, "Show the path to the servers file")
	configCmd.Flags().BoolVarP(&configInit, "init", "i", false, "Create an empty servers file")

	rootCmd.AddCommand(configCmd)
}
