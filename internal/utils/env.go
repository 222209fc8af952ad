package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileVar names a single env file to load instead of the default locations
const EnvFileVar = "HORIZON_ENV_FILE"

// LoadEnvironment loads .env files into the process environment without
// overriding variables that are already set. When HORIZON_ENV_FILE is set only
// that file is read and it must exist. Otherwise .env in the working directory
// and next to the executable are tried, and missing ones are skipped.
// It returns the files that were actually loaded.
func LoadEnvironment() ([]string, error) {
	if path := os.Getenv(EnvFileVar); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("loading %s=%s: %w", EnvFileVar, path, err)
		}
		return []string{path}, nil
	}

	var loaded []string
	for _, path := range defaultEnvFiles() {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("loading %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// defaultEnvFiles lists ./.env and the .env beside the executable, without
// duplicates when both resolve to the same file
func defaultEnvFiles() []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil || seen[abs] {
			return
		}
		seen[abs] = true
		paths = append(paths, abs)
	}

	add(".env")
	if execPath, err := os.Executable(); err == nil {
		add(filepath.Join(filepath.Dir(execPath), ".env"))
	}
	return paths
}
