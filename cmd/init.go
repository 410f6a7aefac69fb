package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/codepane-dev/codepane/internal/assist/config"
	"github.com/codepane-dev/codepane/internal/assist/prompt"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/codepane/config.toml by
default. You can specify a different location using the --config option.
A default instruction template is written into the templates directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}

		configFile := filepath.Join(home, ".config", "codepane", "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
		}

		configDir := filepath.Dir(configFile)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("config file already exists at: %s", configFile)
		}

		templatesDir := filepath.Join(configDir, "templates")
		cfg := config.NewDefaultConfig(templatesDir)

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file: %w", err)
		}
		defer f.Close()

		encoder := toml.NewEncoder(f)
		if err := encoder.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}

		if err := os.MkdirAll(templatesDir, 0755); err != nil {
			return fmt.Errorf("creating templates directory: %w", err)
		}

		templateFile := filepath.Join(templatesDir, "assistant.toml")
		if _, err := os.Stat(templateFile); os.IsNotExist(err) {
			tf, err := os.Create(templateFile)
			if err != nil {
				return fmt.Errorf("creating template file: %w", err)
			}
			defer tf.Close()

			if err := toml.NewEncoder(tf).Encode(prompt.Template{Instruction: prompt.DefaultInstruction}); err != nil {
				return fmt.Errorf("encoding template: %w", err)
			}
		}

		fmt.Printf("Configuration file created at: %s\n", configFile)
		fmt.Printf("Templates directory created at: %s\n", templatesDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
