package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/josephlewis42/microsh/core/config"
	"github.com/josephlewis42/microsh/core/logger"
	"github.com/josephlewis42/microsh/core/repl"
	"github.com/josephlewis42/microsh/core/shell"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string
	noReadline  bool
	colorMode   string
	debugLines  bool
)

// defaultConfigDir is $XDG_CONFIG_HOME/microsh, or the working directory if
// there's no config home.
func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, shell.Name)
}

func loadConfig(opLog *log.Logger) (*config.Configuration, error) {
	return config.LoadOrDefault(afero.NewOsFs(), cfgPath, opLog)
}

// operatorLogger returns the logger for messages about the interpreter
// itself. They're only shown in debug mode so they don't clutter scripts.
func operatorLogger(cmd *cobra.Command, cfg *config.Configuration) *log.Logger {
	out := io.Discard
	if debugLines || (cfg != nil && cfg.Debug) {
		out = cmd.ErrOrStderr()
	}
	return log.New(out, "[microsh] ", 0)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "microsh",
	Short: "A minimal interactive command interpreter",
	Long: `Reads lines of the form

  [<in] prog args... [| prog args...]... [>out]

substitutes $VARIABLES, runs the pipeline and reports every child that
didn't exit cleanly.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig(operatorLogger(cmd, nil))
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("color") {
			cfg.Color = colorMode
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		opLog := operatorLogger(cmd, cfg)

		sh := shell.New()
		sh.Color = colorEnabled(cfg.Color, os.Stderr)
		if debugLines || cfg.Debug {
			sh.Debug = cmd.OutOrStdout()
		}

		sessionLog, err := cfg.OpenSessionLog()
		if err != nil {
			return fmt.Errorf("open session log: %w", err)
		}
		if sessionLog != nil {
			defer sessionLog.Close()
			sh.Log = logger.NewJsonLinesLogRecorder(sessionLog).NewSession()
			opLog.Printf("Session %s logging to %s", sh.Log.SessionID(), cfg.SessionLog)
		}

		if commandLine != "" {
			return sh.RunLine(commandLine)
		}

		reader, err := newLineReader(cmd, cfg, opLog)
		if err != nil {
			return err
		}
		defer reader.Close()

		promptOpts := repl.PromptOptions{
			Suffix:         cfg.PromptSuffix,
			Home:           os.Getenv("HOME"),
			AbbreviateHome: cfg.AbbreviateHome,
			Color:          colorEnabled(cfg.Color, os.Stdout),
		}
		return repl.Run(reader, sh, func() string {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "?"
			}
			return repl.Prompt(cwd, promptOpts)
		})
	},
}

// newLineReader picks the line editor for terminals and a plain reader for
// everything else.
func newLineReader(cmd *cobra.Command, cfg *config.Configuration, opLog *log.Logger) (repl.LineReader, error) {
	interactive := isatty.IsTerminal(os.Stdin.Fd())
	if noReadline || !interactive {
		var prompt io.Writer
		if interactive {
			prompt = cmd.OutOrStdout()
		}
		return repl.NewPlainReader(os.Stdin, prompt), nil
	}

	opLog.Printf("History file: %q", cfg.HistoryPath())
	return repl.NewReadlineReader(repl.ReadlineOptions{
		Stdin:        os.Stdin,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
		HistoryFile:  cfg.HistoryPath(),
		HistoryLimit: cfg.HistoryLimit,
	})
}

func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(f.Fd())
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigDir(), "config directory")
	rootCmd.PersistentFlags().BoolVar(&debugLines, "debug", false, "print the parsed form of every line")

	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
	rootCmd.Flags().BoolVar(&noReadline, "no-readline", false, "read lines without the line editor")
	rootCmd.Flags().StringVar(&colorMode, "color", config.ColorAuto, "color diagnostics and prompt: always, auto or never")
}
