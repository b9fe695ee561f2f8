package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
	"github.com/xolan/truflow/internal/service"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change dashboard settings",
	Long: `Settings are stored with your data and travel with backups. For where data is
stored and the TUI theme see 'truflow config'.

Usage:
  truflow settings show
  truflow settings set [--pomo 25] [--break 5] [--sync-url URL]
  truflow settings bucket add|remove <name>
  truflow settings label add|remove <name>`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowSettings(cli.GetDeps())
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowSettings(cli.GetDeps())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change durations or the sync URL",
	Long: `Change the Pomodoro and break durations (minutes) or the backup URL.
An empty --sync-url disables sync. A paused Pomodoro restarts with the new durations.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		var u service.SettingsUpdate
		if flags.Changed("pomo") {
			v, _ := flags.GetInt("pomo")
			u.PomoDuration = &v
		}
		if flags.Changed("break") {
			v, _ := flags.GetInt("break")
			u.BreakDuration = &v
		}
		if flags.Changed("sync-url") {
			v, _ := flags.GetString("sync-url")
			u.SyncURL = &v
		}
		handlers.UpdateSettings(cli.GetDeps(), u)
	},
}

// newListEditCmd builds the add/remove pair for a settings name list.
func newListEditCmd(use, short string, update func(add bool, name string) service.SettingsUpdate) *cobra.Command {
	parent := &cobra.Command{Use: use, Short: short}
	for _, add := range []bool{true, false} {
		verb, what := "add", "Add"
		if !add {
			verb, what = "remove", "Remove"
		}
		parent.AddCommand(&cobra.Command{
			Use:   verb + " <name>",
			Short: what + " a " + use,
			Args:  cobra.MinimumNArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				handlers.UpdateSettings(cli.GetDeps(), update(add, strings.Join(args, " ")))
			},
		})
	}
	return parent
}

func init() {
	settingsSetCmd.Flags().Int("pomo", 0, "Pomodoro duration in minutes (1-60)")
	settingsSetCmd.Flags().Int("break", 0, "Break duration in minutes (1-30)")
	settingsSetCmd.Flags().String("sync-url", "", "Backup endpoint URL, empty to disable")

	bucketCmd := newListEditCmd("bucket", "Add or remove a time bucket", func(add bool, name string) service.SettingsUpdate {
		if add {
			return service.SettingsUpdate{AddBuckets: []string{name}}
		}
		return service.SettingsUpdate{RemoveBuckets: []string{name}}
	})
	labelCmd := newListEditCmd("label", "Add or remove a card label", func(add bool, name string) service.SettingsUpdate {
		if add {
			return service.SettingsUpdate{AddLabels: []string{name}}
		}
		return service.SettingsUpdate{RemoveLabels: []string{name}}
	})

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, bucketCmd, labelCmd)
	rootCmd.AddCommand(settingsCmd)
}
