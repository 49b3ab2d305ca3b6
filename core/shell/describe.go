package shell

import (
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const noRedirection = "(none)"

// Describe writes a human readable dump of the pipeline, one command per
// line. Arguments are shell-quoted so substituted values containing blanks
// stay visibly whole.
func Describe(w io.Writer, p *Pipeline) {
	if p == nil {
		fmt.Fprintln(w, "No pipeline.")
		return
	}

	fmt.Fprintf(w, "Line has %d command(s):\n", p.Len())
	for _, cmd := range p.Commands {
		fmt.Fprintln(w, cmd.String())
	}
}

// String formats the command as "[ args... ] in: PATH out: PATH".
func (c *Command) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for _, arg := range c.Args {
		sb.WriteString(quote(arg))
		sb.WriteString(" ")
	}
	sb.WriteString("]")
	fmt.Fprintf(&sb, " in: %s out: %s", redirectionOrNone(c.InPath), redirectionOrNone(c.OutPath))
	return sb.String()
}

func quote(s string) string {
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Only strings with NUL bytes can't be quoted.
		return fmt.Sprintf("%q", s)
	}
	return quoted
}

func redirectionOrNone(path string) string {
	if path == "" {
		return noRedirection
	}
	return quote(path)
}
