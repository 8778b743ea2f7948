package cmd

import (
	"fmt"

	"github.com/hopcli/hop/internal/models"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "add a new server",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var (
	addName string
	addUser string
	addIp   string
)

func runAdd(_ *cobra.Command, _ []string) error {
	server := models.NewServer(addName, addUser, addIp)
	if err := validateServer(server); err != nil {
		return err
	}

	list, err := deps.Servers.Load()
	if err != nil {
		return err
	}

	if err := list.Add(server); err != nil {
		return err
	}

	if err := deps.Servers.Save(list); err != nil {
		return err
	}

	writer().Success(fmt.Sprintf("Added server: %s", server))
	return nil
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Name of the server")
	addCmd.Flags().StringVarP(&addUser, "user", "u", "", "User for the SSH connection")
	addCmd.Flags().StringVarP(&addIp, "ip", "i", "", "IP address of the server")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("user")
	_ = addCmd.MarkFlagRequired("ip")

	rootCmd.AddCommand(addCmd)
}
