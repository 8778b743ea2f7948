package cmd

import (
	"errors"
	"fmt"

	tablewriterservice "github.com/hopcli/hop/internal/cmdLineWriters/tablewriter"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect [server-name]",
	Short: "connect to a server via SSH",
	Long: `connect opens an interactive SSH session to the named server.

With --test a short non-interactive probe is run instead, and --test --all
probes every configured server at once.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConnect,
}

var (
	connectTest bool
	connectAll  bool
)

func runConnect(cmd *cobra.Command, args []string) error {
	if connectAll {
		if !connectTest {
			return errors.New("--all can only be used together with --test")
		}
		return runProbeAll(cmd)
	}

	if len(args) != 1 {
		return errors.New("a server name is required")
	}

	_, server, err := loadServer(args[0])
	if err != nil {
		return err
	}

	if err := requireSsh(); err != nil {
		return err
	}

	if connectTest {
		writer().Info(fmt.Sprintf("Testing connection to %s...", server))
		if err := deps.Ssh.TestConnection(cmd.Context(), server); err != nil {
			return err
		}
		writer().Success("Connection test successful")
		return nil
	}

	writer().Info(fmt.Sprintf("Connecting to %s...", server))
	writer().Info(fmt.Sprintf("Running: %s", server.SshCommand()))
	if err := deps.Ssh.Connect(cmd.Context(), server); err != nil {
		return err
	}

	writer().Success("SSH connection closed successfully")
	return nil
}

func runProbeAll(cmd *cobra.Command) error {
	list, err := deps.Servers.Load()
	if err != nil {
		return err
	}

	if list.IsEmpty() {
		writer().Info("No servers configured. Use 'hop add' to add a server.")
		return nil
	}

	if err := requireSsh(); err != nil {
		return err
	}

	results := deps.Ssh.TestAll(cmd.Context(), list.List())
	if err := tablewriterservice.DisplayProbeResults(writer().Out(), results); err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d servers failed the connection test", failed, len(results))
	}

	writer().Success("All servers reachable")
	return nil
}

func init() {
	connectCmd.Flags().BoolVarP(&connectTest, "test", "t", false, "Test the connection without opening a session")
	connectCmd.Flags().BoolVarP(&connectAll, "all", "a", false, "With --test, probe every configured server")

	rootCmd.AddCommand(connectCmd)
}
