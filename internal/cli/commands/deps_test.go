package commands

import (
	"testing"

	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/cli/testutil"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGroup_ExpandsIncludes(t *testing.T) {
	m, err := manifest.Parse([]byte(testutil.ManifestTOML))
	require.NoError(t, err)

	r := testutil.NewTestRenderer(output.ModeText, false)
	require.NoError(t, renderGroup(r.Renderer, m, "all"))

	// "all" includes docs, lint, and test via the self-referencing extra
	out := r.Out.String()
	assert.Contains(t, out, "sphinx")
	assert.Contains(t, out, "ruff")
	assert.Contains(t, out, "pytest")
}

func TestRenderGroup_Unknown(t *testing.T) {
	m, err := manifest.Parse([]byte(testutil.ManifestTOML))
	require.NoError(t, err)

	r := testutil.NewTestRenderer(output.ModeText, false)
	err = renderGroup(r.Renderer, m, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown group")
	assert.Contains(t, err.Error(), "docs")
}

func TestRenderGroupTree(t *testing.T) {
	m, err := manifest.Parse([]byte(testutil.ManifestTOML))
	require.NoError(t, err)

	r := testutil.NewTestRenderer(output.ModeText, false)
	require.NoError(t, renderGroupTree(r.Renderer, m))

	out := r.Out.String()
	assert.Contains(t, out, "all")
	assert.Contains(t, out, "└─ docs")
	assert.Contains(t, out, "└─ test")
}

func TestRenderGroupTree_JSON(t *testing.T) {
	m, err := manifest.Parse([]byte(testutil.ManifestTOML))
	require.NoError(t, err)

	r := testutil.NewTestRenderer(output.ModeJSON, false)
	require.NoError(t, renderGroupTree(r.Renderer, m))

	out := r.Out.String()
	assert.Contains(t, out, `"all"`)
	assert.Contains(t, out, `"docs"`)
}

func TestToDepEntry(t *testing.T) {
	req, err := manifest.ParseRequirement("NumPy >=1.26,<3", "dependencies")
	require.NoError(t, err)

	entry := toDepEntry(req)
	assert.Equal(t, "numpy", entry.Name)
	assert.Equal(t, ">=1.26,<3", entry.Constraint)
	assert.Equal(t, "dependencies", entry.Origin)
}
