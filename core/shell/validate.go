package shell

// BuiltinCd is the only built-in command.
const BuiltinCd = "cd"

// IsCd reports whether the command is the cd built-in.
func (c *Command) IsCd() bool {
	return c.Name() == BuiltinCd
}

// Validate runs every structural check on a parsed pipeline.
func Validate(p *Pipeline) error {
	if err := CheckRedirections(p); err != nil {
		return err
	}
	return CheckCd(p)
}

// CheckRedirections ensures only the first command reads from a file and
// only the last command writes to one.
func CheckRedirections(p *Pipeline) error {
	last := p.Len() - 1
	for i, cmd := range p.Commands {
		if cmd.InPath != "" && i != 0 {
			return parseErrorf("cannot have input-redirection except in the first command")
		}
		if cmd.OutPath != "" && i != last {
			return parseErrorf("cannot have output-redirection except in the last command")
		}
	}
	return nil
}

// CheckCd ensures cd only appears alone, without redirections and with
// exactly one argument.
func CheckCd(p *Pipeline) error {
	for _, cmd := range p.Commands[1:] {
		if cmd.IsCd() {
			return parseErrorf("cannot have cd in a pipe")
		}
	}

	first := p.Commands[0]
	switch {
	case !first.IsCd():
		return nil
	case p.Len() > 1:
		return parseErrorf("cannot have more than one command with cd")
	case first.InPath != "":
		return parseErrorf("cannot have input-redirection with cd")
	case first.OutPath != "":
		return parseErrorf("cannot have output-redirection with cd")
	case len(first.Args) != 2:
		return parseErrorf("cd takes exactly one argument")
	}
	return nil
}
