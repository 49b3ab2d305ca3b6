package shell

import (
	"strings"

	"github.com/josephlewis42/microsh/core/env"
)

/**
Lines are processed in the following steps:

1. The line is split on '|' into pipeline stages. Empty stages produced by
adjacent pipes are dropped, the way strtok(3) does. A line made only of
blanks and pipes is not a pipeline at all.

2. Each stage is split on spaces and tabs into tokens. There is no quoting
and no escaping.

3. Tokens starting with '<' or '>' are redirections whose path follows the
marker without a space. Tokens starting with '$' are replaced by the value of
the named environment variable. Everything else is an argument.

4. The pipeline is validated (see validate.go) and handed to the Executor.
**/

const (
	pipeSep   = '|'
	redirIn   = '<'
	redirOut  = '>'
	envPrefix = '$'
)

// Command is a single stage of a pipeline.
type Command struct {
	// Args holds the program name followed by its arguments, it is never
	// empty.
	Args []string
	// InPath is the input redirection target, empty if there is none.
	InPath string
	// OutPath is the output redirection target, empty if there is none.
	OutPath string
}

// Name returns the program name.
func (c *Command) Name() string {
	return c.Args[0]
}

// Pipeline is a non-empty list of commands whose standard streams are
// chained left to right.
type Pipeline struct {
	Commands []*Command
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.Commands)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func isPipe(r rune) bool {
	return r == pipeSep
}

// Parse turns a line into a Pipeline. A line with nothing to run yields a
// nil Pipeline and a nil error. On failure no partial pipeline is returned.
func Parse(line string, vars env.Lookuper) (*Pipeline, error) {
	if strings.TrimFunc(line, func(r rune) bool { return isBlank(r) || isPipe(r) }) == "" {
		return nil, nil
	}

	var commands []*Command
	for _, segment := range strings.FieldsFunc(line, isPipe) {
		cmd, err := parseCommand(segment, vars)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}

	return &Pipeline{Commands: commands}, nil
}

func parseCommand(segment string, vars env.Lookuper) (*Command, error) {
	cmd := &Command{}

	for _, tok := range strings.FieldsFunc(segment, isBlank) {
		switch tok[0] {
		case redirIn:
			if cmd.InPath != "" {
				return nil, parseErrorf("cannot have more than one input redirection")
			}
			if len(tok) == 1 {
				return nil, parseErrorf("no path specified for input redirection")
			}
			cmd.InPath = tok[1:]

		case redirOut:
			if cmd.OutPath != "" {
				return nil, parseErrorf("cannot have more than one output redirection")
			}
			if len(tok) == 1 {
				return nil, parseErrorf("no path specified for output redirection")
			}
			cmd.OutPath = tok[1:]

		case envPrefix:
			// Unset and empty variables vanish instead of leaving an empty
			// argument behind.
			if val := env.Getenv(vars, tok[1:]); val != "" {
				cmd.Args = append(cmd.Args, val)
			}

		default:
			cmd.Args = append(cmd.Args, tok)
		}
	}

	if len(cmd.Args) == 0 {
		return nil, parseErrorf("empty command")
	}

	return cmd, nil
}
