package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy [server] [source] [destination]",
	Short: "copy files to or from a server using scp",
	Long: `copy sends source on this machine to destination on the server.
With --from the direction is reversed: source is a path on the server.`,
	Args: cobra.ExactArgs(3),
	RunE: runCopy,
}

var copyFrom bool

func runCopy(cmd *cobra.Command, args []string) error {
	_, server, err := loadServer(args[0])
	if err != nil {
		return err
	}

	if err := requireSsh(); err != nil {
		return err
	}

	source, destination := args[1], args[2]
	if copyFrom {
		writer().Info(fmt.Sprintf("Copying %s:%s to %s", server, source, destination))
		err = deps.Ssh.CopyFrom(cmd.Context(), server, source, destination)
	} else {
		writer().Info(fmt.Sprintf("Copying %s to %s:%s", source, server, destination))
		err = deps.Ssh.CopyTo(cmd.Context(), server, source, destination)
	}
	if err != nil {
		return err
	}

	writer().Success("File copied successfully")
	return nil
}

func init() {
	copyCmd.Flags().BoolVarP(&copyFrom, "from", "f", false, "Copy from the server to this machine")

	rootCmd.AddCommand(copyCmd)
}
