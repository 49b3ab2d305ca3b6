package shell

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Termination describes a reaped child.
type Termination struct {
	Pid    int
	Status unix.WaitStatus
}

// Clean reports whether the child exited with status zero.
func (t Termination) Clean() bool {
	return t.Status.Exited() && t.Status.ExitStatus() == 0
}

// SignalName returns the symbolic name of the signal that killed the child,
// e.g. "SIGTERM".
func (t Termination) SignalName() string {
	sig := t.Status.Signal()
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return sig.String()
}

// String returns the report line for the child, or the empty string if it
// exited cleanly.
func (t Termination) String() string {
	switch {
	case t.Clean():
		return ""
	case t.Status.Exited():
		return fmt.Sprintf("Child with PID %d exited with status %d.", t.Pid, t.Status.ExitStatus())
	case t.Status.Signaled():
		return fmt.Sprintf("Child with PID %d was killed by signal %d (%s).", t.Pid, int(t.Status.Signal()), t.SignalName())
	default:
		return fmt.Sprintf("Child with PID %d changed state (%#x).", t.Pid, uint32(t.Status))
	}
}

// Reap waits for every child of the interpreter, not just the ones started by
// the last pipeline, until none are left. A report line is written to w for
// each child that didn't exit cleanly.
//
// If background jobs are ever supported this has to wait on a process group
// instead.
func Reap(w io.Writer) ([]Termination, error) {
	var out []Termination
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, 0, nil)
		switch err {
		case nil:
		case unix.EINTR:
			continue
		case unix.ECHILD:
			return out, nil
		default:
			return out, fatalError("wait", err)
		}

		t := Termination{Pid: pid, Status: status}
		if report := t.String(); report != "" {
			fmt.Fprintln(w, report)
		}
		out = append(out, t)
	}
}
