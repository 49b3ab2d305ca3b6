package cmd

import (
	"io"
	"os"

	"github.com/josephlewis42/microsh/core/logger"
	"github.com/spf13/cobra"
)

var summaryJSON bool

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore the session logs.",
}

// summaryCommand aggregates a session log
var summaryCommand = &cobra.Command{
	Use:   "summary [FILE]",
	Short: "Summarize lines, children and errors in a session log.",
	Long: `Summarizes a JSON lines session log. Without a file, the session_log
from the configuration is read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var fd io.ReadCloser
		if len(args) > 0 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			fd = f
		} else {
			cfg, err := loadConfig(operatorLogger(cmd, nil))
			if err != nil {
				return err
			}
			f, err := cfg.ReadSessionLog()
			if err != nil {
				return err
			}
			fd = f
		}
		defer fd.Close()

		summary := logger.NewSummary()
		if err := logger.ReadJSONLinesLog(fd, summary.Update); err != nil {
			return err
		}

		if summaryJSON {
			return summary.WriteJSON(cmd.OutOrStdout())
		}
		return summary.WriteText(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(summaryCommand)

	summaryCommand.Flags().BoolVar(&summaryJSON, "json", false, "Print the summary as JSON.")
}
