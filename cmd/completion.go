package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Print a shell completion script",
	Long: `Print a tab-completion script for commands and flags.

  bash        source <(truflow completion bash)
  zsh         truflow completion zsh > "${fpath[1]}/_truflow"
  fish        truflow completion fish > ~/.config/fish/completions/truflow.fish
  powershell  truflow completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards for the script to take effect.`,
	ValidArgs:   supportedShells,
	Args:        cobra.ExactValidArgs(1),
	Annotations: map[string]string{skipServices: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

var supportedShells = []string{"bash", "zsh", "fish", "powershell"}

// completionWriters maps a shell to the cobra generator for it.
var completionWriters = map[string]func(*cobra.Command, io.Writer) error{
	"bash":       (*cobra.Command).GenBashCompletion,
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func generateCompletion(shell string) {
	deps := cli.GetDeps()
	write, ok := completionWriters[shell]
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Supported shells: %s\n", strings.Join(supportedShells, ", "))
		deps.Exit(1)
		return
	}
	if err := write(rootCmd, deps.Stdout); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion\n", shell)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
