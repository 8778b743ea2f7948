package browser

import (
	"errors"
	"os/exec"
	"runtime"
)

type Launcher interface {
	Open(url string) error
}

type SystemLauncher struct {
	goos  string
	start func(name string, args ...string) error
}

func NewSystemLauncher() *SystemLauncher {
	return &SystemLauncher{
		goos:  runtime.GOOS,
		start: startDetached,
	}
}

// Open hands the url to the platform opener and returns as soon as the process
// has started. The opener is never waited on by the caller.
func (l *SystemLauncher) Open(url string) error {
	if url == "" {
		return errors.New("no url to open")
	}

	name, args := OpenCommand(l.goos, url)
	return l.start(name, args...)
}

func OpenCommand(goos string, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	// reap the opener so it does not linger as a zombie
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// DisabledLauncher is used when HOP_NO_BROWSER is set.
type DisabledLauncher struct{}

func (DisabledLauncher) Open(string) error {
	return nil
}
