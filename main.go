package main

import (
	"github.com/hopcli/hop/cmd"
	"github.com/hopcli/hop/internal/browser"
	deviceauthclient "github.com/hopcli/hop/internal/clients/deviceAuthClient"
	consolewriter "github.com/hopcli/hop/internal/cmdLineWriters/consoleWriter"
	"github.com/hopcli/hop/internal/configuration"
	credentialstore "github.com/hopcli/hop/internal/credentialStore"
	"github.com/hopcli/hop/internal/logging"
	serverstore "github.com/hopcli/hop/internal/serverStore"
	deviceloginservice "github.com/hopcli/hop/internal/services/deviceLoginService"
	loginservice "github.com/hopcli/hop/internal/services/loginService"
	promptservice "github.com/hopcli/hop/internal/services/promptService"
	transferservice "github.com/hopcli/hop/internal/services/transferService"
	sshcommands "github.com/hopcli/hop/internal/thirdPartyCommands/sshCommands"
)

var writer = consolewriter.Default()

func main() {
	// cant DI directly into the commands so we use a setter
	cmd.SetWriter(writer)
	cmd.SetBootstrap(bootstrap)
	cmd.Execute()
}

func bootstrap(opts cmd.Options) (*cmd.Dependencies, error) {
	config, err := configuration.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	logger := logging.MustLogger(opts.Verbose || config.Verbose)

	credentials, err := credentialstore.NewCredentialStore(config)
	if err != nil {
		return nil, err
	}

	servers := serverstore.NewServerManager(config.ServersFile)

	newLogin := func() (loginservice.LoginService, error) {
		settings, err := config.AuthClientSettings()
		if err != nil {
			return nil, err
		}

		client, err := deviceauthclient.NewDeviceAuthClient(settings, logger)
		if err != nil {
			return nil, err
		}

		var launcher browser.Launcher = browser.NewSystemLauncher()
		if settings.NoBrowser {
			launcher = browser.DisabledLauncher{}
		}

		flow := deviceloginservice.NewDeviceLoginFlow(client, launcher, writer.Out(), logger)
		return loginservice.NewLoginService(flow, credentials, logger), nil
	}

	return &cmd.Dependencies{
		Config:      config,
		Logger:      logger,
		Writer:      writer,
		Servers:     servers,
		Ssh:         sshcommands.NewSshCommandExecutor(logger),
		Prompt:      promptservice.NewSurveyPrompt(),
		Transfer:    transferservice.NewTransferService(servers),
		Credentials: credentials,
		NewLogin:    newLogin,
	}, nil
}
