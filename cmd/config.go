package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
	"github.com/xolan/chronos/internal/service"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for chronos.

chronos works without any configuration file. All settings have defaults:
  - data_dir:    <config dir>/chronos/data
  - debounce_ms: 500 (delay before typed text is saved)
  - timezone:    Local (decides when the day ends)
  - theme:       dracula (TUI colors)
  - debug:       false

Configuration file location:
  ~/.config/chronos/config.toml      Linux
  %APPDATA%\chronos\config.toml      Windows

Use 'chronos config init' to create a commented sample file and
'chronos config set <key> <value>' to change one setting.`,
	Args: cobra.NoArgs,
	Run: withServices(func(d *Deps, _ *cobra.Command, _ []string) {
		handlers.ShowConfig(d)
	}),
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: withServices(func(d *Deps, _ *cobra.Command, _ []string) {
		handlers.InitConfig(d)
	}),
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Validate and save a single setting.

Examples:
  chronos config set debounce_ms 800
  chronos config set timezone Europe/Berlin
  chronos config set theme nord
  chronos config set debug true

data_dir, timezone and debug take effect the next time chronos starts.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: service.ConfigKeys,
	Run: withServices(func(d *Deps, _ *cobra.Command, args []string) {
		handlers.SetConfig(d, args[0], args[1])
	}),
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}
