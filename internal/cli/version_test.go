package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerotrain/flightdeck/internal/buildinfo"
)

// resetVersionFlags resets the version command's local flag state so tests
// do not leak state between runs.
func resetVersionFlags(t *testing.T) {
	t.Helper()
	resetRootCmd(t)
	versionJSON = false
	versionCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	t.Cleanup(func() {
		os.Stdout = oldStdout
	})

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout
	return buf.String()
}

func TestVersionCmd_HumanReadable(t *testing.T) {
	resetVersionFlags(t)

	rootCmd.SetArgs([]string{"version"})

	var code int
	output := captureStdout(t, func() {
		code = Execute()
	})

	assert.Equal(t, 0, code, "exit code should be 0")
	assert.Contains(t, output, "flightdeck v", "output should contain the binary prefix")
	assert.Contains(t, output, buildinfo.Version)
	assert.Contains(t, output, buildinfo.Commit)
	assert.Contains(t, output, buildinfo.Date)
}

func TestVersionCmd_JSONOutput(t *testing.T) {
	resetVersionFlags(t)

	rootCmd.SetArgs([]string{"version", "--json"})

	var code int
	output := captureStdout(t, func() {
		code = Execute()
	})

	assert.Equal(t, 0, code, "exit code should be 0")

	var info buildinfo.Info
	require.NoError(t, json.Unmarshal([]byte(output), &info),
		"JSON output should unmarshal to buildinfo.Info")
	assert.Equal(t, buildinfo.GetInfo(), info)

	// Indented JSON should contain newlines and a 2-space indent.
	assert.Contains(t, output, "{\n")
	assert.Contains(t, output, "  \"version\"")
}

func TestVersionCmd_RejectsExtraArgs(t *testing.T) {
	resetVersionFlags(t)

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	t.Cleanup(func() {
		os.Stderr = oldStderr
	})

	rootCmd.SetArgs([]string{"version", "unexpected-arg"})

	code := Execute()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stderr = oldStderr

	assert.Equal(t, 1, code, "extra args should cause exit code 1")
	assert.Contains(t, buf.String(), "unknown command",
		"error should indicate the unexpected argument")
}

func TestVersionCmd_Metadata(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Show flightdeck version and build information", versionCmd.Short)
	assert.Contains(t, versionCmd.Long, "version")
	assert.Contains(t, versionCmd.Long, "git commit")
	assert.Contains(t, versionCmd.Long, "build date")

	flag := versionCmd.Flags().Lookup("json")
	require.NotNil(t, flag, "--json flag must be registered")
	assert.Equal(t, "false", flag.DefValue)
}
