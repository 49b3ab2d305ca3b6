package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// LineReader supplies input lines without their trailing newline. It returns
// io.EOF once input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ReadlineOptions configure an interactive reader.
type ReadlineOptions struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer

	// HistoryFile is where input lines are persisted, empty disables it.
	HistoryFile  string
	HistoryLimit int
}

type readlineReader struct {
	rl *readline.Instance
}

var _ LineReader = (*readlineReader)(nil)

// NewReadlineReader creates a line editor for terminal input.
func NewReadlineReader(opts ReadlineOptions) (LineReader, error) {
	cfg := &readline.Config{
		Stdin:        opts.Stdin,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		HistoryFile:  opts.HistoryFile,
		HistoryLimit: opts.HistoryLimit,
	}
	if opts.HistoryLimit == 0 {
		// readline treats 0 as "use the default".
		cfg.HistoryLimit = -1
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	for {
		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Interrupt clears line.
			continue
		}
		return line, err
	}
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

type plainReader struct {
	in     *bufio.Reader
	prompt io.Writer
}

var _ LineReader = (*plainReader)(nil)

// NewPlainReader reads newline terminated lines from r. Prompts are written
// to prompt, a nil writer suppresses them.
func NewPlainReader(r io.Reader, prompt io.Writer) LineReader {
	return &plainReader{in: bufio.NewReader(r), prompt: prompt}
}

func (r *plainReader) ReadLine(prompt string) (string, error) {
	if r.prompt != nil {
		fmt.Fprint(r.prompt, prompt)
	}

	line, err := r.in.ReadString('\n')
	switch {
	case err == io.EOF && line != "":
		// Last line without a newline, EOF comes on the next call.
		return line, nil
	case err != nil:
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func (r *plainReader) Close() error {
	return nil
}
