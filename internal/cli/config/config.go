// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DataDirectory = ".pel/zenith"
	LogFileName   = "log/client.log"
)

var Config = cliconfig{}

type cliconfig struct{}

func (cliconfig) DataDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

// LogFilePath is empty when the home directory cannot be determined.
func (cliconfig) LogFilePath() string {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return ""
	}

	return filepath.Join(dataPath, LogFileName)
}

func (cliconfig) EnsureDataDirectory() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure zenith data directory")
	}

	return os.MkdirAll(dataPath, 0700)
}
