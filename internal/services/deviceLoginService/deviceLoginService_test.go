package deviceloginservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hopcli/hop/internal/apperrors"
	deviceauthclient "github.com/hopcli/hop/internal/clients/deviceAuthClient"
	deviceauthmodels "github.com/hopcli/hop/internal/clients/models/deviceAuthentication"
	"github.com/hopcli/hop/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu          sync.Mutex
	initResp    deviceauthmodels.DeviceInitResponse
	initErr     error
	tokenCalls  int
	tokenResult func(call int) (deviceauthmodels.TokenResponse, error)
	codes       []string
}

func (f *fakeClient) RequestDeviceCode(context.Context) (deviceauthmodels.DeviceInitResponse, error) {
	return f.initResp, f.initErr
}

func (f *fakeClient) RequestToken(_ context.Context, deviceCode string) (deviceauthmodels.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls++
	f.codes = append(f.codes, deviceCode)
	return f.tokenResult(f.tokenCalls)
}

type recordingSleeper struct {
	sleeps []time.Duration
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.sleeps = append(r.sleeps, d)
	return nil
}

type fakeLauncher struct {
	opened chan string
	err    error
}

func (l *fakeLauncher) Open(url string) error {
	l.opened <- url
	return l.err
}

func pendingUntil(success int, token string) func(int) (deviceauthmodels.TokenResponse, error) {
	return func(call int) (deviceauthmodels.TokenResponse, error) {
		if call >= success {
			return deviceauthmodels.TokenResponse{AccessToken: token}, nil
		}
		return deviceauthmodels.TokenResponse{}, deviceauthclient.ErrAuthorizationPending
	}
}

func TestInitiateReturnsDeviceCodeAndOpensBrowser(t *testing.T) {
	client := &fakeClient{
		initResp: deviceauthmodels.DeviceInitResponse{DeviceCode: "abc123", VerificationUri: "https://x/verify"},
	}
	launcher := &fakeLauncher{opened: make(chan string, 1)}
	var out bytes.Buffer

	flow := NewDeviceLoginFlow(client, launcher, &out, nil)
	code, err := flow.Initiate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
	assert.Equal(t, AwaitingCode, flow.State())
	assert.False(t, flow.State().Terminal())
	assert.Contains(t, out.String(), "https://x/verify")

	select {
	case url := <-launcher.opened:
		assert.Equal(t, "https://x/verify", url)
	case <-time.After(2 * time.Second):
		t.Fatal("browser was never launched")
	}
}

func TestInitiateIgnoresBrowserFailure(t *testing.T) {
	client := &fakeClient{
		initResp: deviceauthmodels.DeviceInitResponse{DeviceCode: "abc123", VerificationUri: "https://x/verify"},
	}
	launcher := &fakeLauncher{opened: make(chan string, 1), err: errors.New("no display")}

	flow := NewDeviceLoginFlow(client, launcher, nil, nil)
	code, err := flow.Initiate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
	<-launcher.opened
}

func TestInitiateFailures(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		kind  error
		state FlowState
	}{
		{
			name:  "server unreachable",
			err:   apperrors.Newf(apperrors.KindTransport, "request device code", "connection refused"),
			kind:  apperrors.ErrTransport,
			state: TransportFailed,
		},
		{
			name:  "missing field",
			err:   apperrors.Newf(apperrors.KindSchema, "decode device code response", "missing device_code"),
			kind:  apperrors.ErrSchema,
			state: SchemaFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{initErr: tt.err}
			launcher := &fakeLauncher{opened: make(chan string, 1)}

			flow := NewDeviceLoginFlow(client, launcher, nil, nil)
			code, err := flow.Initiate(context.Background())

			require.Error(t, err)
			assert.Empty(t, code)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.state, flow.State())
			assert.Zero(t, client.tokenCalls)
			assert.Empty(t, launcher.opened)
		})
	}
}

func TestPollSucceedsOnFirstAttempt(t *testing.T) {
	client := &fakeClient{tokenResult: pendingUntil(1, "tok_xyz")}
	sleeper := &recordingSleeper{}

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(sleeper)
	token, err := flow.Poll(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "tok_xyz", token)
	assert.Equal(t, 1, client.tokenCalls)
	assert.Empty(t, sleeper.sleeps)
	assert.Equal(t, Succeeded, flow.State())
	assert.Equal(t, []string{"abc123"}, client.codes)
}

func TestPollSucceedsAfterPending(t *testing.T) {
	client := &fakeClient{tokenResult: pendingUntil(3, "tok_late")}
	sleeper := &recordingSleeper{}

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(sleeper)
	token, err := flow.Poll(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "tok_late", token)
	assert.Equal(t, 3, client.tokenCalls)
	assert.Equal(t, []time.Duration{DefaultPollInterval, DefaultPollInterval}, sleeper.sleeps)
}

func TestPollRetriesPendingAndTransportFailures(t *testing.T) {
	failures := []error{
		apperrors.Newf(apperrors.KindTransport, "request token", "connection reset"),
		deviceauthclient.ErrAuthorizationPending,
		apperrors.Newf(apperrors.KindTransport, "request token", "timeout"),
	}
	client := &fakeClient{tokenResult: func(call int) (deviceauthmodels.TokenResponse, error) {
		if call <= len(failures) {
			return deviceauthmodels.TokenResponse{}, failures[call-1]
		}
		return deviceauthmodels.TokenResponse{AccessToken: "tok"}, nil
	}}

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(&recordingSleeper{})
	token, err := flow.Poll(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, 4, client.tokenCalls)
}

func TestPollStopsOnUnusableSuccessBody(t *testing.T) {
	client := &fakeClient{tokenResult: func(call int) (deviceauthmodels.TokenResponse, error) {
		if call == 1 {
			return deviceauthmodels.TokenResponse{}, deviceauthclient.ErrAuthorizationPending
		}
		return deviceauthmodels.TokenResponse{}, apperrors.Newf(apperrors.KindSchema, "decode token response", "invalid character '<'")
	}}
	sleeper := &recordingSleeper{}

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(sleeper)
	token, err := flow.Poll(context.Background(), "abc123")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrSchema)
	assert.NotErrorIs(t, err, apperrors.ErrTimeout)
	assert.Equal(t, 2, client.tokenCalls)
	assert.Len(t, sleeper.sleeps, 1)
	assert.Equal(t, SchemaFailed, flow.State())
	assert.True(t, flow.State().Terminal())
}

func TestPollTimesOutAfterBudget(t *testing.T) {
	client := &fakeClient{tokenResult: pendingUntil(1000, "never")}
	sleeper := &recordingSleeper{}
	var out bytes.Buffer

	flow := NewDeviceLoginFlow(client, nil, &out, nil).WithSleeper(sleeper)
	token, err := flow.Poll(context.Background(), "abc123")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
	assert.NotErrorIs(t, err, deviceauthclient.ErrAuthorizationPending)
	assert.Equal(t, DefaultMaxAttempts, client.tokenCalls)
	assert.Len(t, sleeper.sleeps, DefaultMaxAttempts-1)
	assert.Equal(t, TimedOut, flow.State())
	assert.True(t, flow.State().Terminal())
	assert.Contains(t, out.String(), "(attempt 60/60)")
}

func TestPollRejectsEmptyDeviceCode(t *testing.T) {
	client := &fakeClient{tokenResult: pendingUntil(1, "tok")}

	flow := NewDeviceLoginFlow(client, nil, nil, nil)
	_, err := flow.Poll(context.Background(), "  ")

	assert.ErrorIs(t, err, ErrEmptyDeviceCode)
	assert.Zero(t, client.tokenCalls)
	assert.Equal(t, NotStarted, flow.State())
}

func TestPollRefusesFinishedFlow(t *testing.T) {
	client := &fakeClient{initErr: apperrors.Newf(apperrors.KindTransport, "request device code", "connection refused")}
	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(&recordingSleeper{})

	_, err := flow.Initiate(context.Background())
	require.Error(t, err)
	require.True(t, flow.State().Terminal())

	_, err = flow.Poll(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrFlowFinished)
	assert.Equal(t, TransportFailed, flow.State())
	assert.Zero(t, client.tokenCalls)
}

func TestPollStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{tokenResult: pendingUntil(1000, "never")}
	sleeper := SleeperFunc(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	})

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(sleeper)
	_, err := flow.Poll(ctx, "abc123")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.tokenCalls)
	assert.Equal(t, Cancelled, flow.State())
}

func TestWithPolicyKeepsDefaultsForInvalidValues(t *testing.T) {
	flow := NewDeviceLoginFlow(&fakeClient{}, nil, nil, nil).WithPolicy(0, -1)
	assert.Equal(t, DefaultPollInterval, flow.interval)
	assert.Equal(t, DefaultMaxAttempts, flow.maxAttempts)

	flow.WithPolicy(time.Millisecond, 5)
	assert.Equal(t, time.Millisecond, flow.interval)
	assert.Equal(t, 5, flow.maxAttempts)
}

func TestTimerSleeperWakesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := TimerSleeper{}.Sleep(ctx, time.Minute)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDeviceLoginAgainstServer(t *testing.T) {
	var tokenHits atomic.Int32
	approveAfter := int32(3)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/device-code":
			assert.Equal(t, http.MethodPost, r.Method)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"device_code":      "abc123",
				"verification_uri": "https://x/verify",
			})
		case "/auth/token":
			var body deviceauthmodels.TokenRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "abc123", body.DeviceCode)

			if tokenHits.Add(1) < approveAfter {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok_live", "expires_in": 3600})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := deviceauthclient.NewDeviceAuthClient(configuration.AuthClientSettings{
		BaseUrl:        server.URL,
		RequestTimeout: time.Second,
	}, nil)
	require.NoError(t, err)

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(&recordingSleeper{})

	code, err := flow.Initiate(context.Background())
	require.NoError(t, err)

	token, err := flow.Poll(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, "tok_live", token)
	assert.Equal(t, approveAfter, tokenHits.Load())
}

func TestDeviceLoginServerNeverApproves(t *testing.T) {
	var tokenHits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/token" {
			tokenHits.Add(1)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := deviceauthclient.NewDeviceAuthClient(configuration.AuthClientSettings{
		BaseUrl:        server.URL,
		RequestTimeout: time.Second,
	}, nil)
	require.NoError(t, err)

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(&recordingSleeper{})
	_, err = flow.Poll(context.Background(), "abc123")

	assert.ErrorIs(t, err, apperrors.ErrTimeout)
	assert.Equal(t, int32(DefaultMaxAttempts), tokenHits.Load())
}

func TestDeviceLoginServerAnswersHtml(t *testing.T) {
	var tokenHits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/token" {
			tokenHits.Add(1)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	client, err := deviceauthclient.NewDeviceAuthClient(configuration.AuthClientSettings{
		BaseUrl:        server.URL,
		RequestTimeout: time.Second,
	}, nil)
	require.NoError(t, err)

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(&recordingSleeper{})
	_, err = flow.Poll(context.Background(), "abc123")

	assert.ErrorIs(t, err, apperrors.ErrSchema)
	assert.Equal(t, int32(1), tokenHits.Load())
	assert.Equal(t, SchemaFailed, flow.State())
}

func TestDeviceLoginServerReturnsEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "", "expires_in": 3600})
	}))
	defer server.Close()

	client, err := deviceauthclient.NewDeviceAuthClient(configuration.AuthClientSettings{
		BaseUrl:        server.URL,
		RequestTimeout: time.Second,
	}, nil)
	require.NoError(t, err)

	flow := NewDeviceLoginFlow(client, nil, nil, nil).WithSleeper(&recordingSleeper{})
	_, err = flow.Poll(context.Background(), "abc123")

	assert.ErrorIs(t, err, apperrors.ErrSchema)
	assert.Equal(t, SchemaFailed, flow.State())
}
