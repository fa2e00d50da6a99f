package tools_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRoot returns the absolute path to the project root directory.
func projectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root")
		}
		dir = parent
	}
}

// readMakefile reads the Makefile content from the project root.
func readMakefile(t *testing.T) string {
	t.Helper()
	root := projectRoot(t)
	data, err := os.ReadFile(filepath.Join(root, "Makefile"))
	require.NoError(t, err, "failed to read Makefile")
	return string(data)
}

func TestMakefile_HasRequiredTargets(t *testing.T) {
	t.Parallel()

	content := readMakefile(t)

	targets := []string{"build:", "test:", "vet:", "lint:", "completions:", "manpages:", "clean:"}
	for _, target := range targets {
		assert.Contains(t, content, target, "Makefile must define target %q", target)
	}
}

func TestMakefile_BuildInjectsVersion(t *testing.T) {
	t.Parallel()

	content := readMakefile(t)

	assert.Contains(t, content, "internal/buildinfo.Version",
		"build target must inject the version via ldflags")
	assert.Contains(t, content, "./cmd/flightdeck",
		"build target must compile the flightdeck entry point")
}
