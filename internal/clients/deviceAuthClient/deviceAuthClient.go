package deviceauthclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hopcli/hop/internal/apperrors"
	deviceauthmodels "github.com/hopcli/hop/internal/clients/models/deviceAuthentication"
	"github.com/hopcli/hop/internal/configuration"
	"github.com/hopcli/hop/internal/extensions"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	deviceCodePath   = "auth/device-code"
	tokenPath        = "auth/token"
	maxResponseBytes = 1 << 20
)

// ErrAuthorizationPending is returned by RequestToken when the server answered
// with a non-success status, which during polling means the user has not approved yet.
var ErrAuthorizationPending = errors.New("authorization pending")

type DeviceAuthClient struct {
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	baseUrl *url.URL
	logger  *zap.Logger
}

type DeviceAuthClientService interface {
	RequestDeviceCode(ctx context.Context) (deviceauthmodels.DeviceInitResponse, error)
	RequestToken(ctx context.Context, deviceCode string) (deviceauthmodels.TokenResponse, error)
}

func NewDeviceAuthClient(settings configuration.AuthClientSettings, logger *zap.Logger) (*DeviceAuthClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(settings.BaseUrl) == "" {
		return nil, apperrors.Newf(apperrors.KindConfig, "create device auth client", "server url is not configured")
	}

	baseUrl, err := url.Parse(settings.BaseUrl)
	if err != nil {
		return nil, apperrors.New(apperrors.KindConfig, "create device auth client",
			fmt.Errorf("error parsing base url to a url type, %w", err))
	}

	timeout := settings.RequestTimeout
	if timeout <= 0 {
		timeout = configuration.DefaultRequestTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 10
	transport.MaxIdleConnsPerHost = 2
	transport.IdleConnTimeout = 90 * time.Second

	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	cbSettings := gobreaker.Settings{
		Name:        "device-auth-client",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     20 * time.Second,
		// one login only asks for a device code once, the breaker trips for
		// callers that keep one client and call Initiate repeatedly
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Debug("circuit breaker state changed",
				zap.String("breaker", name), zap.Stringer("from", from), zap.Stringer("to", to))
		},
	}

	return &DeviceAuthClient{
		client:  client,
		cb:      gobreaker.NewCircuitBreaker(cbSettings),
		baseUrl: baseUrl,
		logger:  logger,
	}, nil
}

func (c *DeviceAuthClient) RequestDeviceCode(ctx context.Context) (deviceauthmodels.DeviceInitResponse, error) {
	endpoint := c.endpoint(deviceCodePath)

	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
		if err != nil {
			return nil, apperrors.New(apperrors.KindTransport, "request device code",
				fmt.Errorf("error creating http request for device code, %w", err))
		}
		request.Header.Set("Accept", "application/json")

		c.logger.Debug("requesting device code", zap.String("url", endpoint))
		response, err := c.client.Do(request)
		if err != nil {
			return nil, apperrors.New(apperrors.KindTransport, "request device code",
				fmt.Errorf("error sending device code request, %w", err))
		}
		defer response.Body.Close()

		if !isSuccess(response.StatusCode) {
			return nil, apperrors.Newf(apperrors.KindTransport, "request device code",
				"server responded with status %d: %s", response.StatusCode, readErrorBody(response))
		}

		var result deviceauthmodels.DeviceInitResponse
		if err := json.NewDecoder(io.LimitReader(response.Body, maxResponseBytes)).Decode(&result); err != nil {
			return nil, apperrors.New(apperrors.KindSchema, "decode device code response", err)
		}

		if err := result.Validate(); err != nil {
			return nil, apperrors.New(apperrors.KindSchema, "decode device code response", err)
		}

		return result, nil
	})
	if err != nil {
		if _, ok := apperrors.KindOf(err); ok {
			return deviceauthmodels.DeviceInitResponse{}, err
		}
		return deviceauthmodels.DeviceInitResponse{}, apperrors.New(apperrors.KindTransport, "request device code", err)
	}

	result, ok := cbResult.(deviceauthmodels.DeviceInitResponse)
	if !ok {
		return deviceauthmodels.DeviceInitResponse{}, apperrors.Newf(apperrors.KindSchema, "request device code",
			"unexpected response type when converting response")
	}

	return result, nil
}

// RequestToken performs a single poll. It deliberately bypasses the circuit
// breaker: every poll attempt has to reach the server, an open breaker would
// burn the attempt budget without asking.
func (c *DeviceAuthClient) RequestToken(ctx context.Context, deviceCode string) (deviceauthmodels.TokenResponse, error) {
	payload, err := json.Marshal(deviceauthmodels.TokenRequest{DeviceCode: deviceCode})
	if err != nil {
		return deviceauthmodels.TokenResponse{}, fmt.Errorf("error marshalling token request %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(tokenPath), bytes.NewReader(payload))
	if err != nil {
		return deviceauthmodels.TokenResponse{}, apperrors.New(apperrors.KindTransport, "request token",
			fmt.Errorf("error creating http request for token, %w", err))
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return deviceauthmodels.TokenResponse{}, apperrors.New(apperrors.KindTransport, "request token",
			fmt.Errorf("error sending token request, %w", err))
	}
	defer response.Body.Close()

	if !isSuccess(response.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxResponseBytes))
		return deviceauthmodels.TokenResponse{}, fmt.Errorf("%w: server responded with status %d", ErrAuthorizationPending, response.StatusCode)
	}

	var result deviceauthmodels.TokenResponse
	if err := json.NewDecoder(io.LimitReader(response.Body, maxResponseBytes)).Decode(&result); err != nil {
		return deviceauthmodels.TokenResponse{}, apperrors.New(apperrors.KindSchema, "decode token response", err)
	}

	if err := result.Validate(); err != nil {
		return deviceauthmodels.TokenResponse{}, apperrors.New(apperrors.KindSchema, "decode token response", err)
	}

	return result, nil
}

func (c *DeviceAuthClient) endpoint(path string) string {
	return c.baseUrl.JoinPath(path).String()
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func readErrorBody(response *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(response.Body, 4096))
	if err != nil || len(body) == 0 {
		return http.StatusText(response.StatusCode)
	}

	return extensions.TruncateString(strings.TrimSpace(string(body)), 200)
}
