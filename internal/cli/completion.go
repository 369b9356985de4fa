package cli

import "github.com/spf13/cobra"

// completionCommand prints shell completion scripts for the yuletree commands.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell. Flags such as --style and
--format complete their values too.

Bash:
  $ source <(yuletree completion bash)

  # Persist them (Linux):
  $ yuletree completion bash > /etc/bash_completion.d/yuletree

Zsh:
  $ yuletree completion zsh > "${fpath[1]}/_yuletree"
  # then start a new shell (compinit must be enabled)

Fish:
  $ yuletree completion fish | source
  $ yuletree completion fish > ~/.config/fish/completions/yuletree.fish

PowerShell:
  PS> yuletree completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
