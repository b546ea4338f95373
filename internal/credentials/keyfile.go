// Package credentials implements the interactive API key setup: key file
// handling, format and live validation, and persistence.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/thiagozs/go-aibot/internal/config"
)

// KeyFile is a .env style file holding a single OPENAI_API_KEY line.
type KeyFile struct {
	Path string
}

func (f KeyFile) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// Ensure creates the file with the placeholder key when it does not exist.
func (f KeyFile) Ensure() (created bool, err error) {
	if _, err := os.Stat(f.Path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := f.Write(config.PlaceholderKey); err != nil {
		return false, err
	}
	return true, nil
}

// Read returns the key stored in the file, or "" when the variable is
// absent.
func (f KeyFile) Read() (string, error) {
	env, err := godotenv.Read(f.Path)
	if err != nil {
		return "", err
	}
	return env[config.EnvAPIKey], nil
}

// Write overwrites the file with key.
func (f KeyFile) Write(key string) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	line := fmt.Sprintf("%s=%s\n", config.EnvAPIKey, key)
	return os.WriteFile(f.Path, []byte(line), 0o600)
}
