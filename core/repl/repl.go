// Package repl reads lines from a terminal or a script and hands them to the
// interpreter until input runs out.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Runner executes a single input line. A returned error ends the session.
type Runner interface {
	RunLine(line string) error
}

// RunnerFunc adapts a function to a Runner.
type RunnerFunc func(line string) error

func (f RunnerFunc) RunLine(line string) error { return f(line) }

// Run reads lines until the reader reports io.EOF, which ends the session
// normally. The prompt func is called before every line and may be nil.
func Run(reader LineReader, runner Runner, prompt func() string) error {
	for {
		var p string
		if prompt != nil {
			p = prompt()
		}

		line, err := reader.ReadLine(p)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		case strings.TrimSpace(line) == "":
			continue
		}

		if err := runner.RunLine(line); err != nil {
			return err
		}
	}
}
