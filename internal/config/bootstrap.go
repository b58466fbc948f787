package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig makes sure a config file exists under dataDir,
// materializing the defaults on first run, and returns its path.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	b, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, b, 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}
