package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	log := `{"timestamp_micros":1,"session_id":"s","line":{"text":"false","stages":1}}
{"timestamp_micros":2,"session_id":"s","termination":{"pid":7,"exit_status":1}}
`
	require.NoError(t, os.WriteFile(path, []byte(log), 0600))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"logs", "summary", path})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, `entries   2
sessions  1
lines     1
children  1
failure   exit 1  1
`, out.String())
}
