package cmd

import (
	"fmt"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/extensions"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [server-name]",
	Short: "edit a server",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var (
	editName string
	editUser string
	editIp   string
)

func runEdit(cmd *cobra.Command, args []string) error {
	list, server, err := loadServer(args[0])
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("name") {
		if !extensions.IsValidServerName(editName) {
			return apperrors.Newf(apperrors.KindConfig, "validate server", invalidNameMessage)
		}
		server.Name = editName
		changed = true
	}

	if cmd.Flags().Changed("user") {
		server.User = editUser
		changed = true
	}

	if cmd.Flags().Changed("ip") {
		if !extensions.IsValidIp(editIp) {
			return apperrors.Newf(apperrors.KindConfig, "validate server", invalidIpMessage)
		}
		server.Ip = editIp
		changed = true
	}

	if !changed {
		writer().Warning("No changes specified. Use --name, --user, or --ip to edit the server.")
		return nil
	}

	if err := list.Replace(args[0], server); err != nil {
		return err
	}

	if err := deps.Servers.Save(list); err != nil {
		return err
	}

	writer().Success(fmt.Sprintf("Updated server: %s", server))
	return nil
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "New name for the server")
	editCmd.Flags().StringVar(&editUser, "user", "", "New user for the SSH connection")
	editCmd.Flags().StringVar(&editIp, "ip", "", "New IP address")

	rootCmd.AddCommand(editCmd)
}
