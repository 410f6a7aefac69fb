package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codepane-dev/codepane/internal/assist/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codepane",
	Short: "An assistant for coding-problem pages",
	Long: `codepane is an assistant for coding-problem pages. It holds a
conversational session with a completion API, grounds every prompt in the
page's problem statement, programming language, and current editor code,
and can write returned code back into the page's editor region.

The host page is an HTML document; point codepane at it with --page or the
page_file config key. Configure the tool with a TOML configuration file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/codepane/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("CODEPANE")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "codepane")

	defaultConfig := config.NewDefaultConfig(filepath.Join(userConfigDir, "templates"))

	viper.SetDefault("model", defaultConfig.Model)
	viper.SetDefault("base_url", defaultConfig.BaseURL)
	viper.SetDefault("token", defaultConfig.Token)
	viper.SetDefault("template_dirs", defaultConfig.TemplateDirs)
	viper.SetDefault("language", defaultConfig.Language)
	viper.SetDefault("page_file", defaultConfig.PageFile)

	viper.BindEnv("model", "CODEPANE_MODEL")
	viper.BindEnv("base_url", "CODEPANE_BASE_URL")
	viper.BindEnv("token", "CODEPANE_TOKEN")
	viper.BindEnv("language", "CODEPANE_LANGUAGE")
	viper.BindEnv("page_file", "CODEPANE_PAGE_FILE")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(userConfigDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  model:", viper.GetString("model"))
		fmt.Fprintln(os.Stderr, "  base_url:", viper.GetString("base_url"))
		fmt.Fprintln(os.Stderr, "  language:", viper.GetString("language"))
		fmt.Fprintln(os.Stderr, "  page_file:", viper.GetString("page_file"))
		fmt.Fprintln(os.Stderr, "  template_dirs:", viper.GetStringSlice("template_dirs"))
	}
}
