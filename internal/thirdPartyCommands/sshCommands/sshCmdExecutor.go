package sshcommands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/hopcli/hop/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentProbes = 4

type SshCommandService interface {
	Connect(ctx context.Context, server models.Server) error
	TestConnection(ctx context.Context, server models.Server) error
	TestAll(ctx context.Context, servers []models.Server) []ProbeResult
	Execute(ctx context.Context, server models.Server, command string) (string, error)
	CopyTo(ctx context.Context, server models.Server, localPath, remotePath string) error
	CopyFrom(ctx context.Context, server models.Server, remotePath, localPath string) error
	CheckAvailable() error
}

type ProbeResult struct {
	Server models.Server
	Err    error
}

type command struct {
	name        string
	args        []string
	interactive bool
}

type runFunc func(ctx context.Context, cmd command) (stdout []byte, err error)

type SshCommandExecutor struct {
	run      runFunc
	lookPath func(file string) (string, error)
	logger   *zap.Logger
}

func NewSshCommandExecutor(logger *zap.Logger) *SshCommandExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SshCommandExecutor{
		run:      runCommand,
		lookPath: exec.LookPath,
		logger:   logger,
	}
}

// Connect hands the terminal to ssh until the session ends.
func (e *SshCommandExecutor) Connect(ctx context.Context, server models.Server) error {
	_, err := e.exec(ctx, command{name: "ssh", args: ConnectArgs(server), interactive: true})
	if err != nil {
		return fmt.Errorf("ssh connection to %s failed: %w", server.Name, err)
	}
	return nil
}

func (e *SshCommandExecutor) TestConnection(ctx context.Context, server models.Server) error {
	if _, err := e.exec(ctx, command{name: "ssh", args: TestArgs(server)}); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// TestAll probes every server concurrently. A failing probe does not cancel the others.
func (e *SshCommandExecutor) TestAll(ctx context.Context, servers []models.Server) []ProbeResult {
	results := make([]ProbeResult, len(servers))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for i, server := range servers {
		g.Go(func() error {
			results[i] = ProbeResult{Server: server, Err: e.TestConnection(gCtx, server)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *SshCommandExecutor) Execute(ctx context.Context, server models.Server, remoteCommand string) (string, error) {
	out, err := e.exec(ctx, command{name: "ssh", args: ExecArgs(server, remoteCommand)})
	if err != nil {
		return "", fmt.Errorf("remote command failed: %w", err)
	}
	return string(out), nil
}

func (e *SshCommandExecutor) CopyTo(ctx context.Context, server models.Server, localPath, remotePath string) error {
	if _, err := e.exec(ctx, command{name: "scp", args: CopyToArgs(server, localPath, remotePath), interactive: true}); err != nil {
		return fmt.Errorf("scp failed: %w", err)
	}
	return nil
}

func (e *SshCommandExecutor) CopyFrom(ctx context.Context, server models.Server, remotePath, localPath string) error {
	if _, err := e.exec(ctx, command{name: "scp", args: CopyFromArgs(server, remotePath, localPath), interactive: true}); err != nil {
		return fmt.Errorf("scp failed: %w", err)
	}
	return nil
}

func (e *SshCommandExecutor) CheckAvailable() error {
	var missing []string
	for _, binary := range []string{"ssh", "scp"} {
		if _, err := e.lookPath(binary); err != nil {
			missing = append(missing, binary)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%s not found in PATH, please install the OpenSSH client", strings.Join(missing, " and "))
	}
	return nil
}

func (e *SshCommandExecutor) exec(ctx context.Context, cmd command) ([]byte, error) {
	e.logger.Debug("running command", zap.String("name", cmd.name), zap.Strings("args", cmd.args))

	out, err := e.run(ctx, cmd)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("timeout running %s", cmd.name)
	}
	return out, err
}

func ConnectArgs(server models.Server) []string {
	return []string{
		server.Target(),
		"-o", "StrictHostKeyChecking=ask",
		"-o", "UserKnownHostsFile=~/.ssh/known_hosts",
	}
}

func TestArgs(server models.Server) []string {
	return []string{
		server.Target(),
		"-o", "ConnectTimeout=10",
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		"-o", "LogLevel=ERROR",
		"echo 'Connection test successful'",
	}
}

func ExecArgs(server models.Server, remoteCommand string) []string {
	return []string{
		server.Target(),
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		"-o", "LogLevel=ERROR",
		remoteCommand,
	}
}

func CopyToArgs(server models.Server, localPath, remotePath string) []string {
	return []string{
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		localPath,
		fmt.Sprintf("%s:%s", server.Target(), remotePath),
	}
}

func CopyFromArgs(server models.Server, remotePath, localPath string) []string {
	return []string{
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		fmt.Sprintf("%s:%s", server.Target(), remotePath),
		localPath,
	}
}

var stdioMu sync.Mutex

func runCommand(ctx context.Context, c command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Env = os.Environ()

	if c.interactive {
		// only one command may own the terminal at a time
		stdioMu.Lock()
		defer stdioMu.Unlock()

		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return nil, exitError(err, nil)
		}
		return nil, nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, exitError(err, stderr.Bytes())
	}

	return stdout.Bytes(), nil
}

func exitError(err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg != "" {
			return fmt.Errorf("exit code %d: %s", exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("exit code %d", exitErr.ExitCode())
	}

	return err
}
