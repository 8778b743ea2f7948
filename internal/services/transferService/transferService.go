package transferservice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/extensions"
	"github.com/hopcli/hop/internal/models"
	serverstore "github.com/hopcli/hop/internal/serverStore"
	excelexportservice "github.com/hopcli/hop/internal/services/excelExportService"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJson  Format = "json"
	FormatYaml  Format = "yaml"
	FormatExcel Format = "xlsx"
)

type ImportSummary struct {
	Added   []models.Server
	Skipped []models.Server
	Invalid []models.Server
}

type TransferService interface {
	Import(path string, merge bool) (ImportSummary, error)
	Export(path string, pretty bool) (int, error)
}

type Transfer struct {
	manager serverstore.ServerManagerService
}

func NewTransferService(manager serverstore.ServerManagerService) *Transfer {
	return &Transfer{manager: manager}
}

func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYaml
	case ".xlsx":
		return FormatExcel
	default:
		return FormatJson
	}
}

// Import reads a list of servers and either replaces the stored list or merges
// into it. Servers whose name is already taken are skipped, not overwritten.
func (t *Transfer) Import(path string, merge bool) (ImportSummary, error) {
	imported, err := readServers(path)
	if err != nil {
		return ImportSummary{}, err
	}

	list := serverstore.NewServerList()
	if merge {
		if list, err = t.manager.Load(); err != nil {
			return ImportSummary{}, err
		}
	}

	var summary ImportSummary
	for _, server := range imported {
		if !extensions.IsValidServerName(server.Name) || !extensions.IsValidIp(server.Ip) {
			summary.Invalid = append(summary.Invalid, server)
			continue
		}

		if err := list.Add(server); err != nil {
			summary.Skipped = append(summary.Skipped, server)
			continue
		}
		summary.Added = append(summary.Added, server)
	}

	if err := t.manager.Save(list); err != nil {
		return summary, err
	}

	return summary, nil
}

func (t *Transfer) Export(path string, pretty bool) (int, error) {
	list, err := t.manager.Load()
	if err != nil {
		return 0, err
	}

	servers := list.List()
	switch FormatFor(path) {
	case FormatExcel:
		err = excelexportservice.ExportServers(servers, path)
	case FormatYaml:
		err = writeYaml(servers, path)
	default:
		err = writeJson(servers, path, pretty)
	}
	if err != nil {
		return 0, err
	}

	return len(servers), nil
}

func readServers(path string) ([]models.Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.New(apperrors.KindIO, "read import file",
			fmt.Errorf("failed to read file '%s', %w", path, err))
	}

	var servers []models.Server
	switch FormatFor(path) {
	case FormatYaml:
		err = yaml.Unmarshal(data, &servers)
	case FormatExcel:
		return nil, apperrors.Newf(apperrors.KindConfig, "read import file", "importing from .xlsx is not supported")
	default:
		err = json.Unmarshal(data, &servers)
	}
	if err != nil {
		return nil, apperrors.New(apperrors.KindSchema, "parse import file",
			fmt.Errorf("failed to parse '%s', %w", path, err))
	}

	return servers, nil
}

func writeJson(servers []models.Server, path string, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(servers, "", "  ")
	} else {
		data, err = json.Marshal(servers)
	}
	if err != nil {
		return fmt.Errorf("error encoding servers, %w", err)
	}

	return writeFile(path, data)
}

func writeYaml(servers []models.Server, path string) error {
	data, err := yaml.Marshal(servers)
	if err != nil {
		return fmt.Errorf("error encoding servers, %w", err)
	}

	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.New(apperrors.KindIO, "write export file",
			fmt.Errorf("failed to write file '%s', %w", path, err))
	}
	return nil
}
