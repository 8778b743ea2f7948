package loginservice

import (
	"context"
	"fmt"

	credentialstore "github.com/hopcli/hop/internal/credentialStore"
	deviceloginservice "github.com/hopcli/hop/internal/services/deviceLoginService"
	"go.uber.org/zap"
)

const storeAttempts = 2

type LoginResult struct {
	Token    string
	Location string
}

type LoginService interface {
	Login(ctx context.Context) (LoginResult, error)
}

type Login struct {
	flow   deviceloginservice.DeviceLoginService
	store  credentialstore.CredentialStore
	logger *zap.Logger
}

func NewLoginService(flow deviceloginservice.DeviceLoginService, store credentialstore.CredentialStore, logger *zap.Logger) *Login {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Login{
		flow:   flow,
		store:  store,
		logger: logger,
	}
}

// Login runs initiate, poll and store in order and stops at the first failure.
// When the token was obtained but could not be persisted, the returned result
// still carries it so the caller can hand it to the user.
func (l *Login) Login(ctx context.Context) (LoginResult, error) {
	deviceCode, err := l.flow.Initiate(ctx)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := l.flow.Poll(ctx, deviceCode)
	if err != nil {
		return LoginResult{}, err
	}

	result := LoginResult{Token: token, Location: l.store.Location()}

	var storeErr error
	for attempt := 1; attempt <= storeAttempts; attempt++ {
		if storeErr = l.store.Store(token); storeErr == nil {
			l.logger.Debug("credential stored", zap.String("location", result.Location))
			return result, nil
		}
		l.logger.Debug("storing credential failed", zap.Int("attempt", attempt), zap.Error(storeErr))
	}

	return result, fmt.Errorf("login succeeded but the token could not be saved to %s: %w", result.Location, storeErr)
}
