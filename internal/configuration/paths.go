package configuration

import (
	"os"
	"path/filepath"
)

const (
	appDirName          = "hop"
	legacyDirName       = ".hop"
	serversFileName     = "servers.json"
	credentialsFileName = "config.json"
	settingsFileName    = "hop.yaml"
)

func DefaultSettingsDir() string {
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, legacyDirName)
}

func DefaultServersPath() string {
	return filepath.Join(DefaultSettingsDir(), serversFileName)
}

// DefaultCredentialsPath keeps the token under ~/.hop so existing logins survive upgrades.
func DefaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(legacyDirName, credentialsFileName)
	}
	return filepath.Join(home, legacyDirName, credentialsFileName)
}

func DefaultSettingsFile() string {
	return filepath.Join(DefaultSettingsDir(), settingsFileName)
}
