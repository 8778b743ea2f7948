package credentialstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hopcli/hop/internal/apperrors"
)

const (
	credentialDirPerm  = 0o700
	credentialFilePerm = 0o600
)

type FileCredentialStore struct {
	path string
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

func (s *FileCredentialStore) Location() string {
	return s.path
}

// Store writes the token to a temp file next to the target and renames it into
// place, so a crash never leaves a half written credential behind.
func (s *FileCredentialStore) Store(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	data, err := encodeCredential(token)
	if err != nil {
		return apperrors.New(apperrors.KindIO, "encode credential", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, credentialDirPerm); err != nil {
		return apperrors.New(apperrors.KindIO, "create credential directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return apperrors.New(apperrors.KindIO, "create temp credential file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(credentialFilePerm); err != nil {
		tmp.Close()
		return apperrors.New(apperrors.KindIO, "set credential file mode", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.New(apperrors.KindIO, "write credential", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.New(apperrors.KindIO, "sync credential", err)
	}

	if err := tmp.Close(); err != nil {
		return apperrors.New(apperrors.KindIO, "close credential file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return apperrors.New(apperrors.KindIO, "replace credential file",
			fmt.Errorf("error moving credential into %s, %w", s.path, err))
	}

	return nil
}

func (s *FileCredentialStore) Load() (StoredCredential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StoredCredential{}, apperrors.Newf(apperrors.KindNotFound, "load credential",
				"no credential stored at %s", s.path)
		}
		return StoredCredential{}, apperrors.New(apperrors.KindIO, "load credential", err)
	}

	return decodeCredential("load credential", data)
}
