// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/packwright-labs/packwright/internal/cli/output"
)

// ManifestTOML is a valid manifest matching the layout SetupTestProject
// creates.
const ManifestTOML = `[build]
backend = "flit_core.buildapi"
requires = ["flit_core >=3.9,<4"]

[project]
name = "mmkit"
description = "Test fixture project"
runtime = ">=3.10,<3.14"
dynamic = ["version"]
dependencies = [
    "numpy >=1.26,<3",
    "pandas >=2.0,<3",
]

[project.groups]
docs = ["sphinx >=7,<9"]
lint = ["ruff >=0.6,<1"]
test = ["pytest >=8,<9"]
all = ["mmkit[docs,lint,test]"]

[packages]
include = ["mmkit", "mmkit.mmm"]
version-file = "mmkit/version.txt"

[test]
addopts = ["-ra", "--strict-markers"]
markers = ["slow: marks tests as slow"]
filterwarnings = ["error"]
`

// SetupTestProject creates a temporary project whose source tree matches
// ManifestTOML, and returns its root directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	dirs := []string{
		filepath.Join(tmpDir, "mmkit", "mmm"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	files := map[string]string{
		filepath.Join(tmpDir, "packwright.toml"):             ManifestTOML,
		filepath.Join(tmpDir, "mmkit", "version.txt"):        "0.4.2\n",
		filepath.Join(tmpDir, "mmkit", "__init__.py"):        "",
		filepath.Join(tmpDir, "mmkit", "mmm", "__init__.py"): "",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", path, err)
		}
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and
// TTY state. Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}
