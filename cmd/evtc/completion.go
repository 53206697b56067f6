package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for evtc.

Completion covers subcommands, flags, event type names for
--include-types/--exclude-types and output formats for --format.

Bash:
  $ source <(evtc completion bash)
  # Persist (Linux):
  $ evtc completion bash > /etc/bash_completion.d/evtc

Zsh:
  # Enable completion once if needed:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ evtc completion zsh > "${fpath[1]}/_evtc"

Fish:
  $ evtc completion fish > ~/.config/fish/completions/evtc.fish

PowerShell:
  PS> evtc completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Usage()
		}

		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeEventTypes returns a completion function for event type flags.
// It supports comma-separated values and skips types already selected,
// either earlier in the same value or by a previous use of the flag.
// Candidates carry the typed prefix so every shell replaces the whole word.
func completeEventTypes(flagName string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		parts := strings.Split(toComplete, ",")
		typed, current := parts[:len(parts)-1], parts[len(parts)-1]

		prefix := strings.Join(typed, ",")
		if prefix != "" {
			prefix += ","
		}
		current = strings.ToLower(strings.TrimSpace(current))

		used := make(map[string]struct{})
		if vals, err := cmd.Flags().GetStringSlice(flagName); err == nil {
			typed = append(typed, vals...)
		}
		for _, v := range typed {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				used[v] = struct{}{}
			}
		}

		var candidates []string
		for _, name := range ValidEventTypeNames() {
			if _, ok := used[name]; ok {
				continue
			}
			if strings.HasPrefix(name, current) {
				candidates = append(candidates, prefix+name)
			}
		}

		return candidates, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}
}

// completeFormats completes --format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return formatNames(), cobra.ShellCompDirectiveNoFileComp
}

// registerFilterCompletion registers completion for the type filter and
// format flags a command defines.
func registerFilterCompletion(cmd *cobra.Command) {
	for _, name := range []string{"include-types", "exclude-types"} {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, completeEventTypes(name))
		}
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
}
