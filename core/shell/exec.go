package shell

import (
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const redirOutPerm = 0664

// Executor runs validated pipelines as OS processes.
type Executor struct {
	// Stdin, Stdout and Stderr are the descriptors stages get when they have
	// no pipe or file of their own. Nil means the interpreter's own.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// Reports receives a line for every child that didn't exit cleanly.
	// Nil means os.Stdout.
	Reports io.Writer

	// Report is called for errors that abort a line or a single stage
	// without stopping the interpreter.
	Report func(error)

	// OnTermination, if set, is called for every reaped child.
	OnTermination func(Termination)

	// Environ supplies the children's environment. Nil means os.Environ.
	Environ func() []string

	// LookPath resolves program names. Nil means exec.LookPath.
	LookPath func(file string) (string, error)
}

// Execute runs p, which must have passed Validate. Errors that only affect
// the current line are passed to Report; the returned error is always fatal.
func (e *Executor) Execute(p *Pipeline) error {
	if first := p.Commands[0]; first.IsCd() {
		e.changeDirectory(first.Args[1])
		return nil
	}

	var carried *ownedFd
	last := p.Len() - 1
	for i, cmd := range p.Commands {
		next, err := e.startStage(cmd, carried, i == last)
		carried = next
		if err != nil {
			if IsFatal(err) {
				carried.Close()
				return err
			}

			// A redirection couldn't be opened. Stages that already started keep
			// running and get reaped below.
			e.report(err)
			break
		}
	}
	if err := carried.Close(); err != nil {
		return fatalError("close", err)
	}

	return e.reap()
}

// startStage spawns cmd reading from in. It returns the read end of the pipe
// feeding the next stage, if it created one. Descriptors given to the child
// are always closed in the parent before returning.
func (e *Executor) startStage(cmd *Command, in *ownedFd, last bool) (next *ownedFd, err error) {
	var out *ownedFd
	defer func() {
		if cerr := closeAll(in, out); cerr != nil && err == nil {
			err = fatalError("close", cerr)
		}
	}()

	if cmd.InPath != "" {
		if in, err = openFile(cmd.InPath, unix.O_RDONLY, 0); err != nil {
			return nil, userError("", err)
		}
	}

	switch {
	case cmd.OutPath != "":
		if out, err = openFile(cmd.OutPath, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, redirOutPerm); err != nil {
			return nil, userError("", err)
		}
	case !last:
		if next, out, err = newPipe(); err != nil {
			return nil, fatalError("pipe", err)
		}
	}

	if err := e.spawn(cmd, in.or(e.stdin()), out.or(e.stdout())); err != nil {
		if IsFatal(err) {
			return next, err
		}
		// Only this stage is lost, the next one reads EOF from the pipe.
		e.report(err)
	}
	return next, nil
}

// spawn forks a child with stdin and stdout moved onto descriptors 0 and 1
// and replaces its image with the command's program.
func (e *Executor) spawn(cmd *Command, stdin, stdout uintptr) error {
	path, err := e.lookPath(cmd.Name())
	if err != nil {
		return childError(cmd.Name(), err)
	}

	_, err = syscall.ForkExec(path, cmd.Args, &syscall.ProcAttr{
		Env:   e.environ(),
		Files: []uintptr{stdin, stdout, e.stderr().Fd()},
	})
	switch {
	case err == nil:
		return nil
	case isResourceErrno(err):
		return fatalError("fork", err)
	default:
		return childError(cmd.Name(), err)
	}
}

func (e *Executor) changeDirectory(dir string) {
	if err := unix.Chdir(dir); err != nil {
		e.report(userError("cd", &os.PathError{Op: "chdir", Path: dir, Err: err}))
	}
}

func (e *Executor) reap() error {
	terms, err := Reap(e.reports())
	if e.OnTermination != nil {
		for _, t := range terms {
			e.OnTermination(t)
		}
	}
	return err
}

// isResourceErrno reports whether a ForkExec failure means the interpreter
// ran out of processes, memory or descriptors rather than the program being
// unrunnable.
func isResourceErrno(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case syscall.EAGAIN, syscall.ENOMEM, syscall.EMFILE, syscall.ENFILE, syscall.EBADF:
		return true
	}
	return false
}

func (e *Executor) report(err error) {
	if e.Report != nil {
		e.Report(err)
	}
}

func (e *Executor) lookPath(file string) (string, error) {
	if e.LookPath != nil {
		return e.LookPath(file)
	}
	path, err := exec.LookPath(file)
	if errors.Is(err, exec.ErrDot) {
		// execvp semantics: an empty or "." PATH entry is searched.
		return path, nil
	}
	return path, err
}

func (e *Executor) environ() []string {
	if e.Environ != nil {
		return e.Environ()
	}
	return os.Environ()
}

func (e *Executor) stdin() *os.File  { return fileOr(e.Stdin, os.Stdin) }
func (e *Executor) stdout() *os.File { return fileOr(e.Stdout, os.Stdout) }
func (e *Executor) stderr() *os.File { return fileOr(e.Stderr, os.Stderr) }

func (e *Executor) reports() io.Writer {
	if e.Reports != nil {
		return e.Reports
	}
	return os.Stdout
}

func fileOr(f, fallback *os.File) *os.File {
	if f != nil {
		return f
	}
	return fallback
}
