package setupservice

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/configuration"
	"gopkg.in/yaml.v3"
)

type SetupOptions struct {
	ServerUrl    string `yaml:"server_url"`
	TokenStorage string `yaml:"token_storage,omitempty"`
	NoBrowser    bool   `yaml:"no_browser,omitempty"`
}

// CreateSettingsFile writes the hop.yaml that configuration.Load reads. An
// existing file is only replaced when overwrite is set.
func CreateSettingsFile(path string, options SetupOptions, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return apperrors.Newf(apperrors.KindConfig, "create settings", "settings already exist at %s, use --force to replace them", path)
	}

	parsedUrl, err := url.Parse(strings.TrimSpace(options.ServerUrl))
	if err != nil || parsedUrl.Scheme == "" || parsedUrl.Host == "" {
		return apperrors.Newf(apperrors.KindConfig, "create settings", "url %q seems to be in an incorrect format", options.ServerUrl)
	}
	options.ServerUrl = strings.TrimRight(parsedUrl.String(), "/")

	switch strings.ToLower(options.TokenStorage) {
	case "":
	case configuration.TokenStorageFile, configuration.TokenStorageKeychain:
		options.TokenStorage = strings.ToLower(options.TokenStorage)
	default:
		return apperrors.Newf(apperrors.KindConfig, "create settings",
			"unknown token storage %q, expected %q or %q", options.TokenStorage, configuration.TokenStorageFile, configuration.TokenStorageKeychain)
	}

	yamlData, err := yaml.Marshal(options)
	if err != nil {
		return fmt.Errorf("error marshalling settings, %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.New(apperrors.KindIO, "create settings", err)
	}

	if err := os.WriteFile(path, yamlData, 0o644); err != nil {
		return apperrors.New(apperrors.KindIO, "create settings", fmt.Errorf("error writing file at %s, %w", path, err))
	}

	return nil
}
