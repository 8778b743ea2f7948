package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [server-name]",
	Aliases: []string{"rm"},
	Short:   "remove a server",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var removeForce bool

func runRemove(_ *cobra.Command, args []string) error {
	list, server, err := loadServer(args[0])
	if err != nil {
		return err
	}

	if !removeForce {
		confirmed, err := deps.Prompt.Confirm(fmt.Sprintf("Remove server '%s'?", server))
		if err != nil {
			return err
		}
		if !confirmed {
			writer().Info("Operation cancelled.")
			return nil
		}
	}

	removed, err := list.Remove(args[0])
	if err != nil {
		return err
	}

	if err := deps.Servers.Save(list); err != nil {
		return err
	}

	writer().Success(fmt.Sprintf("Removed server: %s", removed))
	return nil
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Remove without confirmation")

	rootCmd.AddCommand(removeCmd)
}
