package params

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// ParseEnvFile parses environment file content in .env format.
// Comments, quoting, export prefixes and ${VAR} expansion follow godotenv.
func ParseEnvFile(content []byte) (map[string]string, error) {
	result, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("invalid parameter file: %w", err)
	}
	return result, nil
}

// LoadEnvFile reads and parses a parameter file.
func LoadEnvFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: parameter file %s", ecomadmin.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to read parameter file %s: %w", path, err)
	}
	return ParseEnvFile(content)
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored;
// with no paths it looks for ./.env.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
