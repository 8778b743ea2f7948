package configuration

import (
	"net/url"
	"strings"
	"time"

	"github.com/hopcli/hop/internal/apperrors"
)

// AuthClientSettings is the explicit value handed to the device auth client,
// so nothing below the command layer reads the environment.
type AuthClientSettings struct {
	BaseUrl        string
	RequestTimeout time.Duration
	NoBrowser      bool
}

func (c *Config) AuthClientSettings() (AuthClientSettings, error) {
	baseUrl := strings.TrimSpace(c.ServerUrl)
	if baseUrl == "" {
		return AuthClientSettings{}, apperrors.Newf(apperrors.KindConfig, "resolve auth settings",
			"server url is not configured, set HOP_SERVER_URL (or SERVER_URL)")
	}

	parsed, err := url.Parse(baseUrl)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return AuthClientSettings{}, apperrors.Newf(apperrors.KindConfig, "resolve auth settings",
			"server url %q is not an absolute url", baseUrl)
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return AuthClientSettings{
		BaseUrl:        strings.TrimRight(baseUrl, "/"),
		RequestTimeout: timeout,
		NoBrowser:      c.NoBrowser,
	}, nil
}
