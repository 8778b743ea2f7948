package cmd

import (
	"fmt"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/extensions"
	"github.com/hopcli/hop/internal/models"
	serverstore "github.com/hopcli/hop/internal/serverStore"
)

const (
	invalidNameMessage = "invalid server name, use only alphanumeric characters, hyphens, and underscores"
	invalidIpMessage   = "invalid IP address format"
)

func validateServer(server models.Server) error {
	if !extensions.IsValidServerName(server.Name) {
		return apperrors.Newf(apperrors.KindConfig, "validate server", invalidNameMessage)
	}
	if !extensions.IsValidIp(server.Ip) {
		return apperrors.Newf(apperrors.KindConfig, "validate server", invalidIpMessage)
	}
	return nil
}

func loadServer(identifier string) (*serverstore.ServerList, models.Server, error) {
	list, err := deps.Servers.Load()
	if err != nil {
		return nil, models.Server{}, err
	}

	server, err := list.Get(identifier)
	if err != nil {
		return nil, models.Server{}, err
	}

	return list, server, nil
}

func requireSsh() error {
	if err := deps.Ssh.CheckAvailable(); err != nil {
		return fmt.Errorf("ssh is not available: %w", err)
	}
	return nil
}
