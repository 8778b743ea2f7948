package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "log in to the hop service from this machine",
	Long: `login starts a device login: it prints a url to approve this machine,
opens it in your browser and waits up to two minutes for the approval.
The access token is saved locally once the login succeeds.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, _ []string) error {
	service, err := deps.NewLogin()
	if err != nil {
		return err
	}

	result, err := service.Login(cmd.Context())
	if err != nil {
		if result.Token != "" {
			writer().Warning(fmt.Sprintf("Keep this access token, it could not be saved: %s", result.Token))
		}
		return err
	}

	writer().Success(fmt.Sprintf("Access token saved to %s", result.Location))
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
