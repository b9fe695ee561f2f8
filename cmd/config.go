package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration for truflow.

truflow works without a configuration file. All settings have defaults:
  - data_dir: the truflow config directory
  - theme: dracula
  - sync_timeout_seconds: 30
  - log_file: false

Examples:
  truflow config               Show all current settings
  truflow config --path        Print the config file path
  truflow config --init        Write a commented sample config file

Configuration file location:
  ~/.config/truflow/config.toml      Linux
  ~/Library/Application Support/truflow/config.toml   macOS
  %APPDATA%\truflow\config.toml      Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
			handlers.InitConfig(deps)
			return
		}
		if pathFlag, _ := cmd.Flags().GetBool("path"); pathFlag {
			handlers.ShowConfigPath(deps)
			return
		}
		handlers.ShowConfig(deps)
	},
}

func init() {
	configCmd.Flags().Bool("init", false, "Create a sample config file")
	configCmd.Flags().Bool("path", false, "Print the config file path")
	rootCmd.AddCommand(configCmd)
}
