package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	consolewriter "github.com/hopcli/hop/internal/cmdLineWriters/consoleWriter"
	"github.com/hopcli/hop/internal/configuration"
	credentialstore "github.com/hopcli/hop/internal/credentialStore"
	serverstore "github.com/hopcli/hop/internal/serverStore"
	loginservice "github.com/hopcli/hop/internal/services/loginService"
	promptservice "github.com/hopcli/hop/internal/services/promptService"
	transferservice "github.com/hopcli/hop/internal/services/transferService"
	sshcommands "github.com/hopcli/hop/internal/thirdPartyCommands/sshCommands"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

// Dependencies is everything the commands need, built once per invocation by
// the bootstrap function main registers.
type Dependencies struct {
	Config      *configuration.Config
	Logger      *zap.Logger
	Writer      *consolewriter.ConsoleWriter
	Servers     serverstore.ServerManagerService
	Ssh         sshcommands.SshCommandService
	Prompt      promptservice.PromptService
	Transfer    transferservice.TransferService
	Credentials credentialstore.CredentialStore
	// NewLogin is lazy so a missing server url only fails `hop login`.
	NewLogin func() (loginservice.LoginService, error)
}

type Options struct {
	ConfigFile string
	Verbose    bool
}

type BootstrapFunc func(opts Options) (*Dependencies, error)

var (
	bootstrap BootstrapFunc
	deps      *Dependencies
	output    *consolewriter.ConsoleWriter

	configFileFlag string
	debugFlag      bool
)

var rootCmd = &cobra.Command{
	Use:               "hop",
	Short:             "A fast and minimal CLI tool to manage and connect to frequently used SSH servers",
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadDependencies,
}

// cant DI directly into the commands so main hands us a bootstrap through a setter
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetWriter is used for output when no dependencies were loaded, e.g. by
// commands that skip the bootstrap.
func SetWriter(w *consolewriter.ConsoleWriter) {
	output = w
}

func loadDependencies(cmd *cobra.Command, _ []string) error {
	if bootstrap == nil {
		return errors.New("hop was started without a bootstrap")
	}

	loaded, err := bootstrap(Options{ConfigFile: configFileFlag, Verbose: debugFlag})
	if err != nil {
		return err
	}

	deps = loaded
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		writer().Error(err.Error())
		if deps != nil && deps.Logger != nil {
			_ = deps.Logger.Sync()
		}
		os.Exit(1)
	}
}

func writer() *consolewriter.ConsoleWriter {
	if deps != nil && deps.Writer != nil {
		return deps.Writer
	}
	if output != nil {
		return output
	}
	return consolewriter.Default()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "Path to a hop.yaml settings file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug diagnostics to stderr")
}
