package deviceloginservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/browser"
	deviceauthclient "github.com/hopcli/hop/internal/clients/deviceAuthClient"
	deviceauthmodels "github.com/hopcli/hop/internal/clients/models/deviceAuthentication"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultMaxAttempts  = 60
)

var (
	ErrEmptyDeviceCode = errors.New("device code must not be empty")
	ErrFlowFinished    = errors.New("device login already finished, start a new login")
)

type DeviceLoginService interface {
	Initiate(ctx context.Context) (string, error)
	Poll(ctx context.Context, deviceCode string) (string, error)
}

type DeviceLoginFlow struct {
	client      deviceauthclient.DeviceAuthClientService
	launcher    browser.Launcher
	sleeper     Sleeper
	writer      io.Writer
	logger      *zap.Logger
	interval    time.Duration
	maxAttempts int
	state       FlowState
}

func NewDeviceLoginFlow(client deviceauthclient.DeviceAuthClientService, launcher browser.Launcher, writer io.Writer, logger *zap.Logger) *DeviceLoginFlow {
	if launcher == nil {
		launcher = browser.DisabledLauncher{}
	}
	if writer == nil {
		writer = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DeviceLoginFlow{
		client:      client,
		launcher:    launcher,
		sleeper:     TimerSleeper{},
		writer:      writer,
		logger:      logger,
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
		state:       NotStarted,
	}
}

func (f *DeviceLoginFlow) WithSleeper(sleeper Sleeper) *DeviceLoginFlow {
	f.sleeper = sleeper
	return f
}

// WithPolicy overrides the poll budget. Non-positive values keep the defaults.
func (f *DeviceLoginFlow) WithPolicy(interval time.Duration, maxAttempts int) *DeviceLoginFlow {
	if interval > 0 {
		f.interval = interval
	}
	if maxAttempts > 0 {
		f.maxAttempts = maxAttempts
	}
	return f
}

func (f *DeviceLoginFlow) State() FlowState {
	return f.state
}

// Initiate asks the server for a device code, shows the verification url and
// opens it in the background. Browser failures never fail the flow.
func (f *DeviceLoginFlow) Initiate(ctx context.Context) (string, error) {
	deviceResp, err := f.client.RequestDeviceCode(ctx)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			f.state = Cancelled
		case errors.Is(err, apperrors.ErrSchema):
			f.state = SchemaFailed
		default:
			f.state = TransportFailed
		}
		return "", fmt.Errorf("error starting device login: %w", err)
	}

	f.displayUserInstructions(deviceResp)
	f.launchBrowser(deviceResp.VerificationUri)

	f.state = AwaitingCode
	return deviceResp.DeviceCode, nil
}

// Poll asks for the token up to maxAttempts times with a fixed pause between
// attempts. Non-2xx answers and transport failures only count against the
// budget. A success status with an undecodable body ends the poll at once.
func (f *DeviceLoginFlow) Poll(ctx context.Context, deviceCode string) (string, error) {
	if strings.TrimSpace(deviceCode) == "" {
		return "", ErrEmptyDeviceCode
	}

	if f.state.Terminal() {
		return "", fmt.Errorf("%w (%s)", ErrFlowFinished, f.state)
	}

	f.state = Polling

	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		tokenResp, err := f.client.RequestToken(ctx, deviceCode)
		if err == nil {
			f.state = Succeeded
			f.logger.Debug("device login approved", zap.Int("attempt", attempt), zap.String("username", tokenResp.Username))
			fmt.Fprint(f.writer, color.GreenString("\n✅ Login successful!\n"))
			return tokenResp.AccessToken, nil
		}

		if ctx.Err() != nil {
			f.state = Cancelled
			return "", fmt.Errorf("device login cancelled: %w", ctx.Err())
		}

		// a 2xx with an unusable body is a broken server, waiting longer will not fix it
		if errors.Is(err, apperrors.ErrSchema) {
			f.state = SchemaFailed
			return "", fmt.Errorf("error polling for token: %w", err)
		}

		lastErr = err
		f.logger.Debug("device login attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		fmt.Fprintf(f.writer, "%s (attempt %d/%d)\n", color.YellowString("⌛ Waiting for login..."), attempt, f.maxAttempts)

		if attempt == f.maxAttempts {
			break
		}

		if err := f.sleeper.Sleep(ctx, f.interval); err != nil {
			f.state = Cancelled
			return "", fmt.Errorf("device login cancelled: %w", err)
		}
	}

	f.state = TimedOut
	return "", apperrors.Newf(apperrors.KindTimeout, "poll for token",
		"login timed out after %d attempts, please try again (last response: %v)", f.maxAttempts, lastErr)
}

func (f *DeviceLoginFlow) launchBrowser(url string) {
	go func() {
		if err := f.launcher.Open(url); err != nil {
			f.logger.Debug("could not open browser", zap.String("url", url), zap.Error(err))
		}
	}()
}

func (f *DeviceLoginFlow) displayUserInstructions(deviceResp deviceauthmodels.DeviceInitResponse) {
	fmt.Fprintf(f.writer, "\n╭─────────────────────────────────────────╮\n")
	fmt.Fprintf(f.writer, "│                hop login                │\n")
	fmt.Fprintf(f.writer, "╰─────────────────────────────────────────╯\n\n")
	fmt.Fprintf(f.writer, "🔑 Please open this URL to log in:\n\n   %s\n\n", color.CyanString(deviceResp.VerificationUri))
}
