package cmd

import (
	"errors"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/extensions"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "show whether this machine holds an access token",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	credential, err := deps.Credentials.Load()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writer().Info("Not logged in. Run 'hop login' to log in.")
			return nil
		}
		return err
	}

	writer().Success("Logged in")
	writer().Printf("Credential: %s\n", deps.Credentials.Location())
	writer().Printf("Token: %s\n", extensions.MaskToken(credential.AccessToken))
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
