package shell

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies how far an error propagates.
type Kind int

const (
	// KindUser covers malformed input, misplaced redirections or cd, and
	// files that can't be opened. Only the current line is dropped.
	KindUser Kind = iota
	// KindChild covers a single stage whose program can't be run. Sibling
	// stages are unaffected.
	KindChild
	// KindFatal covers resource failures (pipe, fork, close, wait). The
	// interpreter must exit.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindChild:
		return "child"
	case KindFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every stage of line processing.
type Error struct {
	Kind Kind
	// Op names the failed step, e.g. "parse", "pipe" or the program name.
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause walk through to the system error.
func (e *Error) Cause() error { return e.Err }

// IsFatal reports whether err must terminate the interpreter.
func IsFatal(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == KindFatal
	}
	return false
}

// KindOf returns the kind of err, unclassified errors are treated as fatal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindFatal
}

func parseErrorf(format string, a ...interface{}) error {
	return &Error{Kind: KindUser, Op: "parsing error", Err: errors.Errorf(format, a...)}
}

func userError(op string, err error) error {
	return &Error{Kind: KindUser, Op: op, Err: err}
}

func childError(program string, err error) error {
	return &Error{Kind: KindChild, Op: program, Err: err}
}

func fatalError(op string, err error) error {
	return &Error{Kind: KindFatal, Op: op, Err: errors.WithStack(err)}
}
