package config

import (
	"fmt"
	os2 "os"
	"path/filepath"
	"strings"

	"github.com/cometbft/cometbft/libs/os"
	"github.com/tessellated-io/blobtx/log"
)

// ResolveFile expands a short path (ex. ~/.blobtx/config.yaml => /home/tessellated/.blobtx/config.yaml) and
// checks that the file exists.
func ResolveFile(configFile string) (string, error) {
	expanded, err := ExpandHomeDir(configFile)
	if err != nil {
		return "", err
	}

	if !os.FileExists(expanded) {
		return "", fmt.Errorf("no config file at %s, run `blobtx init` to create one", configFile)
	}
	return expanded, nil
}

// SafeWrite writes a file and any missing parent directories, but never replaces an existing file.
func SafeWrite(file string, contents []byte, logger *log.Logger) (bool, error) {
	expanded, err := ExpandHomeDir(file)
	if err != nil {
		return false, err
	}

	if os.FileExists(expanded) {
		logger.Warn("skipping overwriting existing file", "file", expanded)
		return false, nil
	}

	if err := createDirectoryIfNeeded(filepath.Dir(expanded), logger); err != nil {
		return false, err
	}

	if err := os.WriteFile(expanded, contents, 0o644); err != nil {
		return false, err
	}
	logger.Info("wrote file", "file", expanded)
	return true, nil
}

func ExpandHomeDir(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os2.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user's home directory: %w", err)
	}
	return strings.Replace(path, "~", home, 1), nil
}

func createDirectoryIfNeeded(directory string, logger *log.Logger) error {
	fileInfo, err := os2.Stat(directory)
	switch {
	case err == nil && fileInfo.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", directory)
	case !os2.IsNotExist(err):
		return err
	}

	if err := os.EnsureDir(directory, 0o755); err != nil {
		return err
	}
	logger.Info("created configuration directory", "configuration_dir", directory)
	return nil
}
