package serverstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/models"
)

type ServerManagerService interface {
	Load() (*ServerList, error)
	Save(list *ServerList) error
	Init() (bool, error)
	Exists() bool
	Path() string
}

type ServerManager struct {
	path string
}

func NewServerManager(path string) *ServerManager {
	return &ServerManager{path: path}
}

func (m *ServerManager) Path() string {
	return m.path
}

func (m *ServerManager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Load treats a missing or blank file as an empty list.
func (m *ServerManager) Load() (*ServerList, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewServerList(), nil
		}
		return nil, apperrors.New(apperrors.KindIO, "read servers file",
			fmt.Errorf("failed to read config file %s, %w", m.path, err))
	}

	if strings.TrimSpace(string(data)) == "" {
		return NewServerList(), nil
	}

	list := NewServerList()
	if err := json.Unmarshal(data, list); err != nil {
		return nil, apperrors.New(apperrors.KindSchema, "parse servers file",
			fmt.Errorf("failed to parse config file %s, %w", m.path, err))
	}

	if list.Servers == nil {
		list.Servers = []models.Server{}
	}

	return list, nil
}

func (m *ServerManager) Save(list *ServerList) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return apperrors.New(apperrors.KindIO, "create servers directory", err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return apperrors.New(apperrors.KindIO, "encode servers", err)
	}

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return apperrors.New(apperrors.KindIO, "write servers file",
			fmt.Errorf("failed to write config file %s, %w", m.path, err))
	}

	return nil
}

// Init writes an empty list when no file exists yet and reports whether it did.
func (m *ServerManager) Init() (bool, error) {
	if m.Exists() {
		return false, nil
	}

	if err := m.Save(NewServerList()); err != nil {
		return false, err
	}

	return true, nil
}
