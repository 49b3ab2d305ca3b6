package cmd

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/microsh/core/env"
	"github.com/josephlewis42/microsh/core/shell"
	"github.com/spf13/cobra"
)

// parseCmd shows how a line would be run without running it
var parseCmd = &cobra.Command{
	Use:   "parse LINE...",
	Short: "Show how a line is split into commands and redirections.",
	Long: `Parses and validates a line the way the interpreter would, then prints
the commands it would run. Arguments are joined with spaces, so quote the
line to keep pipes and redirections away from the calling shell.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		out := cmd.OutOrStdout()
		p, err := shell.Parse(strings.Join(args, " "), env.OS{})
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", shell.Name, err)
			return nil
		}

		shell.Describe(out, p)
		if p == nil {
			return nil
		}
		if err := shell.Validate(p); err != nil {
			fmt.Fprintf(out, "%s: %v\n", shell.Name, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Everything after the first word belongs to the line, e.g. "ls -l".
	parseCmd.Flags().SetInterspersed(false)
}
