package configuration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hopcli/hop/internal/apperrors"
	"github.com/spf13/viper"
)

const (
	ServerUrlKey       = "server_url"
	RequestTimeoutKey  = "request_timeout"
	TokenStorageKey    = "token_storage"
	NoBrowserKey       = "no_browser"
	ServersFileKey     = "servers_file"
	CredentialsFileKey = "credentials_file"
	VerboseKey         = "verbose"
)

const (
	TokenStorageFile     = "file"
	TokenStorageKeychain = "keychain"
)

const DefaultRequestTimeout = 10 * time.Second

type Config struct {
	ServerUrl       string        `mapstructure:"server_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	TokenStorage    string        `mapstructure:"token_storage"`
	NoBrowser       bool          `mapstructure:"no_browser"`
	ServersFile     string        `mapstructure:"servers_file"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Verbose         bool          `mapstructure:"verbose"`
}

func defaults() map[string]any {
	return map[string]any{
		ServerUrlKey:       "",
		RequestTimeoutKey:  DefaultRequestTimeout,
		TokenStorageKey:    TokenStorageFile,
		NoBrowserKey:       false,
		ServersFileKey:     DefaultServersPath(),
		CredentialsFileKey: DefaultCredentialsPath(),
		VerboseKey:         false,
	}
}

// Load resolves settings from defaults, an optional hop.yaml and HOP_* environment
// variables, in increasing order of precedence. An empty configFile searches the
// user config directory and a missing file there is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("hop")
		v.AddConfigPath(DefaultSettingsDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, apperrors.New(apperrors.KindConfig, "read settings", err)
		}
	}

	v.SetEnvPrefix("hop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// SERVER_URL is the name older installs export, HOP_SERVER_URL wins when both are set.
	if err := v.BindEnv(ServerUrlKey, "HOP_SERVER_URL", "SERVER_URL"); err != nil {
		return nil, apperrors.New(apperrors.KindConfig, "bind environment", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, apperrors.New(apperrors.KindConfig, "unmarshal settings", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.TokenStorage) {
	case TokenStorageFile, TokenStorageKeychain:
		c.TokenStorage = strings.ToLower(c.TokenStorage)
	case "":
		c.TokenStorage = TokenStorageFile
	default:
		return apperrors.Newf(apperrors.KindConfig, "validate settings",
			"unknown token storage %q, expected %q or %q", c.TokenStorage, TokenStorageFile, TokenStorageKeychain)
	}

	if c.RequestTimeout <= 0 {
		return apperrors.Newf(apperrors.KindConfig, "validate settings",
			"request timeout must be positive, got %s", c.RequestTimeout)
	}

	if c.ServersFile == "" || c.CredentialsFile == "" {
		return apperrors.New(apperrors.KindConfig, "validate settings", fmt.Errorf("servers and credentials file paths are required"))
	}

	return nil
}
