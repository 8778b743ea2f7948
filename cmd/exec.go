package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec [server] [command]",
	Short: "run a command on a server",
	Args:  cobra.ExactArgs(2),
	RunE:  runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	_, server, err := loadServer(args[0])
	if err != nil {
		return err
	}

	if err := requireSsh(); err != nil {
		return err
	}

	writer().Info(fmt.Sprintf("Executing command on %s: %s", server, args[1]))
	output, err := deps.Ssh.Execute(cmd.Context(), server, args[1])
	if err != nil {
		return err
	}

	writer().Printf("%s", output)
	return nil
}

func init() {
	rootCmd.AddCommand(execCmd)
}
