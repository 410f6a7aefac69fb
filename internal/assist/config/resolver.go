package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// expandEnvVar expands an environment variable reference in the given
// value. Supports both $VAR and ${VAR} syntax. A reference to an unset
// variable expands to the empty string; a non-reference value is returned
// as-is.
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}

	var name string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		name = value[2 : len(value)-1]
	} else {
		name = strings.TrimPrefix(value, "$")
	}

	return os.Getenv(name)
}

// ResolvePath converts a relative path to an absolute path. Relative
// paths are resolved against the config file directory when a config file
// is in use, otherwise against the current working directory.
func ResolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	base := filepath.Dir(viper.ConfigFileUsed())
	if viper.ConfigFileUsed() == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current working directory: %w", err)
		}
		base = cwd
	}

	if !filepath.IsAbs(base) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current working directory: %w", err)
		}
		base = filepath.Join(cwd, base)
	}

	return filepath.Join(base, path), nil
}
