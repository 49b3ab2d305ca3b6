package shell

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	cases := map[string]string{
		"single":   "ls -l",
		"pipeline": "<in.txt sort -r | uniq -c | head >top.txt",
		"quoted":   "echo $GREETING $REDIR",
	}

	for name, line := range cases {
		p, err := Parse(line, testEnv())
		require.NoError(t, err, name)

		buf := &bytes.Buffer{}
		Describe(buf, p)
		g.Assert(t, name, buf.Bytes())
	}
}

func TestDescribeNil(t *testing.T) {
	buf := &bytes.Buffer{}
	Describe(buf, nil)
	assert.Equal(t, "No pipeline.\n", buf.String())
}

func TestCommandString(t *testing.T) {
	cmd := &Command{Args: []string{"grep", "", "a b"}, OutPath: "my file"}
	assert.Equal(t, `[ grep '' 'a b' ] in: (none) out: 'my file'`, cmd.String())
}
