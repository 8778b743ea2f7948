package credentialstore

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/configuration"
)

var ErrEmptyToken = errors.New("access token must not be empty")

// StoredCredential is the single credential slot. A new login replaces it.
type StoredCredential struct {
	AccessToken string `json:"access_token"`
}

type CredentialStore interface {
	Store(token string) error
	Load() (StoredCredential, error)
	Location() string
}

func NewCredentialStore(config *configuration.Config) (CredentialStore, error) {
	switch strings.ToLower(config.TokenStorage) {
	case "", configuration.TokenStorageFile:
		return NewFileCredentialStore(config.CredentialsFile), nil
	case configuration.TokenStorageKeychain:
		return NewKeyringCredentialStore(), nil
	default:
		return nil, apperrors.Newf(apperrors.KindConfig, "select credential store",
			"unknown token storage %q", config.TokenStorage)
	}
}

func encodeCredential(token string) ([]byte, error) {
	return json.MarshalIndent(StoredCredential{AccessToken: token}, "", "  ")
}

func decodeCredential(op string, data []byte) (StoredCredential, error) {
	var credential StoredCredential
	if err := json.Unmarshal(data, &credential); err != nil {
		return StoredCredential{}, apperrors.New(apperrors.KindSchema, op, err)
	}

	if credential.AccessToken == "" {
		return StoredCredential{}, apperrors.Newf(apperrors.KindSchema, op, "stored credential has no access_token")
	}

	return credential, nil
}
