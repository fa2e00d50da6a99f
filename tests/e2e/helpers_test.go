package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// testProject is an isolated project directory with a flightdeck.toml and a
// catalog data directory, plus a freshly built flightdeck binary.
type testProject struct {
	Dir        string
	BinaryPath string
	t          *testing.T
}

// newTestProject builds the flightdeck binary into a fresh temp directory and
// seeds it with a default config and catalog. Must be called from a test
// function; uses t.Helper() to mark itself accordingly.
func newTestProject(t *testing.T) *testProject {
	t.Helper()

	dir := t.TempDir()

	binary := filepath.Join(dir, "flightdeck")
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}
	build := exec.Command("go", "build", "-o", binary, "./cmd/flightdeck")
	build.Dir = projectRoot()
	out, err := build.CombinedOutput()
	require.NoError(t, err, "building flightdeck: %s", string(out))

	tp := &testProject{Dir: dir, BinaryPath: binary, t: t}
	tp.writeConfig(defaultConfig)
	tp.writeCatalogFile("catalog.toml", defaultCatalog)
	return tp
}

// projectRoot returns the absolute path to the root of the flightdeck
// repository. It uses runtime.Caller(0) to find this source file's location
// and navigates two directories up (tests/e2e/ -> tests/ -> repo root).
func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

const defaultConfig = `[api]
base_url = "http://localhost:8080/api"
timeout_seconds = 5

[catalog]
data_dir = "data/catalog"

[profile]
role = "org"
organization = "Skybound Aviation"
`

const defaultCatalog = `[[courses]]
id = "crs-ifr"
title = "IFR Refresher"
category = "Instrument"
price = 450.0

[[sessions]]
id = "ses-ifr-1"
course_id = "crs-ifr"
start = 2026-10-05T09:00:00Z
end = 2026-10-05T17:00:00Z
location = "Toulouse"
price = 450.0
available_spots = 6

[[sessions]]
id = "ses-ifr-2"
course_id = "crs-ifr"
start = 2026-10-12T09:00:00Z
end = 2026-10-12T17:00:00Z
location = "Lyon"
price = 450.0
available_spots = 0

[[members]]
id = "mem-1"
name = "Claire Fontaine"
role = "pilot"
qualified = true
recommended = true
committed_sessions = []
`

// writeConfig writes content to flightdeck.toml in tp.Dir.
func (tp *testProject) writeConfig(content string) {
	tp.t.Helper()
	err := os.WriteFile(filepath.Join(tp.Dir, "flightdeck.toml"), []byte(content), 0o644)
	require.NoError(tp.t, err)
}

// writeCatalogFile writes a catalog data file to data/catalog/<name>. The
// name may contain path elements relative to that directory.
func (tp *testProject) writeCatalogFile(name, content string) {
	tp.t.Helper()
	path := filepath.Join(tp.Dir, "data", "catalog", name)
	writeFile(tp.t, path, content)
}

// writeFile writes content to path, creating parent directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// run creates an exec.Cmd for flightdeck in the project directory.
func (tp *testProject) run(args ...string) *exec.Cmd {
	cmd := exec.Command(tp.BinaryPath, args...)
	cmd.Dir = tp.Dir
	cmd.Env = append(os.Environ(),
		"NO_COLOR=1",                 // disable ANSI color in output
		"FLIGHTDECK_LOG_FORMAT=json", // structured logs for easier parsing
	)
	return cmd
}

// runExpectSuccess runs flightdeck and asserts exit code 0. Returns combined
// stdout+stderr output.
func (tp *testProject) runExpectSuccess(args ...string) string {
	tp.t.Helper()
	cmd := tp.run(args...)
	out, err := cmd.CombinedOutput()
	require.NoError(tp.t, err, "flightdeck %v failed:\n%s", args, string(out))
	return string(out)
}

// runExpectFailure runs flightdeck and asserts a non-zero exit code. Returns
// combined stdout+stderr output.
func (tp *testProject) runExpectFailure(args ...string) string {
	tp.t.Helper()
	cmd := tp.run(args...)
	out, err := cmd.CombinedOutput()
	require.Error(tp.t, err, "flightdeck %v unexpectedly succeeded:\n%s", args, string(out))
	return string(out)
}
