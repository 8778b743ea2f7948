package cmd

import (
	"fmt"

	"github.com/hopcli/hop/internal/configuration"
	setupservice "github.com/hopcli/hop/internal/services/setupService"
	"github.com/spf13/cobra"
)

var setUpCmd = &cobra.Command{
	Use:   "setup",
	Short: "save the hop service url so 'hop login' can use it",
	Long: `setup writes a hop.yaml settings file with the url of the hop service.
Environment variables (HOP_SERVER_URL and friends) still win over the file.`,
	Args: cobra.NoArgs,
	// setup must work when the current settings are the thing that is broken,
	// so it does not load them
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE:              runSetUp,
}

const (
	UrlFlag     = "url"
	StorageFlag = "token-storage"
)

var (
	setupNoBrowser bool
	setupForce     bool
)

func runSetUp(cmd *cobra.Command, _ []string) error {
	url, _ := cmd.Flags().GetString(UrlFlag)
	storage, _ := cmd.Flags().GetString(StorageFlag)

	path := configFileFlag
	if path == "" {
		path = configuration.DefaultSettingsFile()
	}

	options := setupservice.SetupOptions{
		ServerUrl:    url,
		TokenStorage: storage,
		NoBrowser:    setupNoBrowser,
	}
	if err := setupservice.CreateSettingsFile(path, options, setupForce); err != nil {
		return err
	}

	writer().Success(fmt.Sprintf("Settings saved to %s, run 'hop login' to log in", path))
	return nil
}

func init() {
	setUpCmd.Flags().StringP(UrlFlag, "u", "", "Url of the hop service")
	setUpCmd.Flags().StringP(StorageFlag, "s", "", "Where to keep the access token: file or keychain")
	setUpCmd.Flags().BoolVar(&setupNoBrowser, "no-browser", false, "Never open a browser during login")
	setUpCmd.Flags().BoolVarP(&setupForce, "force", "f", false, "Replace existing settings")
	_ = setUpCmd.MarkFlagRequired(UrlFlag)

	rootCmd.AddCommand(setUpCmd)
}
