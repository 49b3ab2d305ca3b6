package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/microsh/core/env"
	"github.com/josephlewis42/microsh/core/logger"
)

// Name prefixes every diagnostic.
const Name = "microsh"

// Shell turns input lines into running pipelines.
type Shell struct {
	// Env resolves $NAME substitutions.
	Env env.Lookuper
	// Executor runs validated pipelines.
	Executor *Executor
	// Diagnostics receives user and child errors. Nil means os.Stderr.
	Diagnostics io.Writer
	// Debug, if set, receives the parsed form of every line.
	Debug io.Writer
	// Color enables colored diagnostics.
	Color bool
	// Log records lines, terminations and diagnostics. May be nil.
	Log *logger.SessionLogger
}

// New creates a Shell that reads the process environment and runs programs
// on the interpreter's own standard streams.
func New() *Shell {
	s := &Shell{
		Env:      env.OS{},
		Executor: &Executor{},
	}
	s.wire()
	return s
}

// wire hooks the executor's callbacks up to the shell.
func (s *Shell) wire() {
	if s.Executor == nil {
		s.Executor = &Executor{}
	}
	s.Executor.Report = s.Diagnose
	s.Executor.OnTermination = s.recordTermination
}

// RunLine parses, validates and executes a line. Problems confined to the
// line are reported and nil is returned; a non-nil error is fatal.
func (s *Shell) RunLine(line string) error {
	if s.Executor == nil || s.Executor.Report == nil {
		s.wire()
	}

	p, err := Parse(line, s.vars())
	if err != nil {
		s.Diagnose(err)
		return nil
	}
	if p == nil {
		return nil
	}

	s.record(&logger.Line{Text: line, Stages: p.Len()})
	if s.Debug != nil {
		Describe(s.Debug, p)
	}

	if err := Validate(p); err != nil {
		s.Diagnose(err)
		return nil
	}

	return s.Executor.Execute(p)
}

// Diagnose prints a non-fatal error.
func (s *Shell) Diagnose(err error) {
	s.record(&logger.Error{Kind: KindOf(err).String(), Message: err.Error()})

	prefix := Name + ":"
	if s.Color {
		c := color.New(color.FgRed, color.Bold)
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	fmt.Fprintln(s.diagnostics(), prefix, err)
}

func (s *Shell) recordTermination(t Termination) {
	event := &logger.Termination{Pid: t.Pid}
	switch {
	case t.Status.Exited():
		event.ExitStatus = t.Status.ExitStatus()
	case t.Status.Signaled():
		event.Signal = int(t.Status.Signal())
		event.SignalName = t.SignalName()
	}
	s.record(event)
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Log.Record(event); err != nil {
		fmt.Fprintf(s.diagnostics(), "%s: session log: %v\n", Name, err)
	}
}

func (s *Shell) vars() env.Lookuper {
	if s.Env == nil {
		return env.OS{}
	}
	return s.Env
}

func (s *Shell) diagnostics() io.Writer {
	if s.Diagnostics != nil {
		return s.Diagnostics
	}
	return os.Stderr
}
