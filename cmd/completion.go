package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionGenerators maps a shell name to its cobra script generator
var completionGenerators = map[string]func(w io.Writer) error{
	"bash": func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":  func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish": func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error {
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	},
}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for chronos.

Bash:
  source <(chronos completion bash)
  chronos completion bash > ~/.local/share/bash-completion/completions/chronos

Zsh:
  chronos completion zsh > "${fpath[1]}/_chronos"

Fish:
  chronos completion fish > ~/.config/fish/completions/chronos.fish

PowerShell:
  chronos completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion writes the completion script for shell to stdout
func generateCompletion(shell string) {
	gen, ok := completionGenerators[shell]
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err := gen(deps.Stdout); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
	}
}
