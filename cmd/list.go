package cmd

import (
	tablewriterservice "github.com/hopcli/hop/internal/cmdLineWriters/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list all configured servers",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var listVerbose bool

func runList(_ *cobra.Command, _ []string) error {
	list, err := deps.Servers.Load()
	if err != nil {
		return err
	}

	if list.IsEmpty() {
		writer().Info("No servers configured. Use 'hop add' to add a server.")
		return nil
	}

	if listVerbose {
		return tablewriterservice.DisplayServerDetails(writer().Out(), list.List())
	}

	return tablewriterservice.DisplayServersTable(writer().Out(), list.List())
}

func init() {
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "Show detailed information")

	rootCmd.AddCommand(listCmd)
}
