// Package config loads codepane's configuration through viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/codepane-dev/codepane/internal/assist"
)

// Config holds the tool configuration.
type Config struct {
	Model        string   `toml:"model" mapstructure:"model"`
	BaseURL      string   `toml:"base_url" mapstructure:"base_url"`
	Token        string   `toml:"token" mapstructure:"token"` // value or $ENV_VAR reference
	TemplateDirs []string `toml:"template_dirs" mapstructure:"template_dirs"`
	Language     string   `toml:"language" mapstructure:"language"`   // default page language
	PageFile     string   `toml:"page_file" mapstructure:"page_file"` // default host page document
}

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig(templateDir string) *Config {
	return &Config{
		Model:        assist.DefaultModel,
		BaseURL:      "https://api.openai.com/v1",
		Token:        "$OPENAI_API_KEY", // Default to env var
		TemplateDirs: []string{templateDir},
		Language:     "go",
	}
}

// GetToken returns the resolved API key. Env var references in the
// configured value are expanded; ok is false when no key is available.
// It never fails: absence is a normal outcome the caller handles.
func (c *Config) GetToken() (string, bool) {
	token := expandEnvVar(c.Token)
	return token, token != ""
}

// LoadConfig loads configuration from viper.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Convert template directories to absolute paths
	for i, dir := range config.TemplateDirs {
		absPath, err := ResolvePath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving template directory path %q: %w", dir, err)
		}
		config.TemplateDirs[i] = absPath
	}

	return config, nil
}
