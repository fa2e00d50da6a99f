package e2e_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	tp := newTestProject(t)

	out := tp.runExpectSuccess("version")
	assert.Contains(t, out, "flightdeck v")
	assert.Contains(t, out, "commit:")
}

func TestVersionCommand_JSON(t *testing.T) {
	tp := newTestProject(t)

	out := tp.runExpectSuccess("version", "--json")

	var info struct {
		Version string `json:"version"`
		Commit  string `json:"commit"`
		Date    string `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.Version)
}

func TestHelp(t *testing.T) {
	tp := newTestProject(t)

	out := tp.runExpectSuccess("--help")
	assert.Contains(t, out, "flightdeck")
	for _, sub := range []string{"register", "assign", "catalog", "dashboard", "version", "completion"} {
		assert.Contains(t, out, sub, "help must list the %s command", sub)
	}
}

func TestCompletion_Bash(t *testing.T) {
	tp := newTestProject(t)

	out := tp.runExpectSuccess("completion", "bash")
	assert.Contains(t, out, "flightdeck")
}

func TestCompletion_UnsupportedShell(t *testing.T) {
	tp := newTestProject(t)

	out := tp.runExpectFailure("completion", "tcsh")
	assert.Contains(t, out, "invalid argument")
}
