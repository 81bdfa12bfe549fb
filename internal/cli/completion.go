package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/deskgrid/pkg/widget"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for deskgrid. Completions cover commands,
flags and the widget types accepted by add and constraints.

To load completions:

Bash:
  $ source <(deskgrid completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ deskgrid completion bash > /etc/bash_completion.d/deskgrid
  # macOS:
  $ deskgrid completion bash > $(brew --prefix)/etc/bash_completion.d/deskgrid

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ deskgrid completion zsh > "${fpath[1]}/_deskgrid"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ deskgrid completion fish | source

  # To load completions for each session, execute once:
  $ deskgrid completion fish > ~/.config/fish/completions/deskgrid.fish

PowerShell:
  PS> deskgrid completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> deskgrid completion powershell > deskgrid.ps1
  # and source this file from your PowerShell profile.
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

// completeWidgetTypes completes the first argument with the built-in widget
// types.
func completeWidgetTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return widget.Builtin().Types(), cobra.ShellCompDirectiveNoFileComp
}
