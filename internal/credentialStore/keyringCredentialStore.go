package credentialstore

import (
	"errors"
	"fmt"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/zalando/go-keyring"
)

const (
	KeyringService = "hop"
	KeyringAccount = "access_token"
)

type KeyringCredentialStore struct {
	service string
	account string
}

func NewKeyringCredentialStore() *KeyringCredentialStore {
	return &KeyringCredentialStore{service: KeyringService, account: KeyringAccount}
}

func (s *KeyringCredentialStore) Location() string {
	return fmt.Sprintf("system keychain (service %q)", s.service)
}

func (s *KeyringCredentialStore) Store(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	data, err := encodeCredential(token)
	if err != nil {
		return apperrors.New(apperrors.KindIO, "encode credential", err)
	}

	if err := keyring.Set(s.service, s.account, string(data)); err != nil {
		return apperrors.New(apperrors.KindIO, "store credential in keychain", err)
	}

	return nil
}

func (s *KeyringCredentialStore) Load() (StoredCredential, error) {
	data, err := keyring.Get(s.service, s.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return StoredCredential{}, apperrors.New(apperrors.KindNotFound, "load credential from keychain", err)
		}
		return StoredCredential{}, apperrors.New(apperrors.KindIO, "load credential from keychain", err)
	}

	return decodeCredential("load credential from keychain", []byte(data))
}
