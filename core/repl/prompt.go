package repl

import (
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// DefaultPromptSuffix follows the working directory in the prompt.
const DefaultPromptSuffix = " $ "

// PromptOptions control how the prompt is rendered.
type PromptOptions struct {
	Suffix string
	// Home is replaced by "~" when AbbreviateHome is set.
	Home           string
	AbbreviateHome bool
	Color          bool
}

// Prompt renders the prompt for the working directory.
func Prompt(cwd string, opts PromptOptions) string {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultPromptSuffix
	}

	dir := cwd
	if opts.AbbreviateHome {
		dir = abbreviateHome(cwd, opts.Home)
	}

	if opts.Color {
		c := color.New(color.FgBlue, color.Bold)
		c.EnableColor()
		dir = c.Sprint(dir)
	}
	return dir + suffix
}

func abbreviateHome(cwd, home string) string {
	home = filepath.Clean(home)
	if home == "" || home == "." || home == "/" {
		return cwd
	}
	switch {
	case cwd == home:
		return "~"
	case strings.HasPrefix(cwd, home+"/"):
		return "~" + strings.TrimPrefix(cwd, home)
	}
	return cwd
}
