package repl

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	lines []string
	fail  map[string]error
}

func (r *recordingRunner) RunLine(line string) error {
	r.lines = append(r.lines, line)
	return r.fail[line]
}

func TestRun(t *testing.T) {
	prompts := &bytes.Buffer{}
	reader := NewPlainReader(strings.NewReader("ls -l\n\n   \nwc\nlast"), prompts)
	runner := &recordingRunner{}

	n := 0
	err := Run(reader, runner, func() string {
		n++
		return "> "
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ls -l", "wc", "last"}, runner.lines)
	assert.Equal(t, 6, n)
	assert.Equal(t, strings.Repeat("> ", 6), prompts.String())
}

func TestRunFatal(t *testing.T) {
	boom := errors.New("fork: resource temporarily unavailable")
	reader := NewPlainReader(strings.NewReader("a\nb\nc\n"), nil)
	runner := &recordingRunner{fail: map[string]error{"b": boom}}

	err := Run(reader, runner, nil)

	assert.Equal(t, boom, err)
	assert.Equal(t, []string{"a", "b"}, runner.lines)
}

type brokenReader struct{}

func (brokenReader) ReadLine(string) (string, error) { return "", io.ErrUnexpectedEOF }
func (brokenReader) Close() error { return nil }

func TestRunReadError(t *testing.T) {
	err := Run(brokenReader{}, RunnerFunc(func(string) error { return nil }), nil)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.EqualError(t, err, "read line: unexpected EOF")
}

func TestPlainReader(t *testing.T) {
	reader := NewPlainReader(strings.NewReader("one\ntwo\n"), nil)
	defer reader.Close()

	line, err := reader.ReadLine("$ ")
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = reader.ReadLine("$ ")
	require.NoError(t, err)
	assert.Equal(t, "two", line)

	_, err = reader.ReadLine("$ ")
	assert.Equal(t, io.EOF, err)
}

func TestPrompt(t *testing.T) {
	cases := map[string]struct {
		cwd  string
		opts PromptOptions
		want string
	}{
		"default suffix": {
			cwd:  "/tmp",
			want: "/tmp $ ",
		},
		"custom suffix": {
			cwd:  "/tmp",
			opts: PromptOptions{Suffix: "> "},
			want: "/tmp> ",
		},
		"home kept": {
			cwd:  "/home/user/src",
			opts: PromptOptions{Home: "/home/user"},
			want: "/home/user/src $ ",
		},
		"home abbreviated": {
			cwd:  "/home/user/src",
			opts: PromptOptions{Home: "/home/user", AbbreviateHome: true},
			want: "~/src $ ",
		},
		"at home": {
			cwd:  "/home/user",
			opts: PromptOptions{Home: "/home/user/", AbbreviateHome: true},
			want: "~ $ ",
		},
		"sibling of home": {
			cwd:  "/home/username",
			opts: PromptOptions{Home: "/home/user", AbbreviateHome: true},
			want: "/home/username $ ",
		},
		"root home": {
			cwd:  "/etc",
			opts: PromptOptions{Home: "/", AbbreviateHome: true},
			want: "/etc $ ",
		},
		"color": {
			cwd:  "/tmp",
			opts: PromptOptions{Color: true},
			want: "\x1b[34;1m/tmp\x1b[0m $ ",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, Prompt(tc.cwd, tc.opts))
		})
	}
}
