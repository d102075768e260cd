package commands

import (
	"testing"

	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCheck_Text(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeText, false)
	out := &CheckOutput{
		Manifest: "packwright.toml",
		OK:       true,
		Packages: []CheckPackage{
			{Name: "numpy", Constraint: ">=1.26,<3", OK: true},
			{Name: "pandas", Constraint: ">=2.0,<3", OK: true},
		},
	}

	require.NoError(t, renderCheck(r.Renderer, out))

	text := r.Out.String()
	assert.Contains(t, text, "numpy")
	assert.Contains(t, text, ">=1.26,<3")
	assert.Contains(t, text, "2 dependencies satisfiable")
}

func TestRenderCheck_Failure(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeText, false)
	out := &CheckOutput{
		Manifest: "packwright.toml",
		OK:       false,
		Packages: []CheckPackage{
			{Name: "numpy", Constraint: ">=2,<2", OK: false, Reason: "no version can satisfy >=2,<2"},
		},
		Layout: []string{"package mmkit.clv: directory mmkit/clv does not exist"},
	}

	require.NoError(t, renderCheck(r.Renderer, out))

	assert.Contains(t, r.Out.String(), "no version can satisfy")
	assert.Contains(t, r.ErrOut.String(), "mmkit/clv")
	assert.NotContains(t, r.Out.String(), "satisfiable, layout verified")
}

func TestRenderCheck_JSON(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeJSON, false)
	out := &CheckOutput{
		Manifest: "packwright.toml",
		OK:       true,
		Packages: []CheckPackage{
			{Name: "numpy", Constraint: ">=1.26,<3", OK: true, Releases: 3, Best: "2.1.0"},
		},
	}

	require.NoError(t, renderCheck(r.Renderer, out))

	text := r.Out.String()
	assert.Contains(t, text, `"ok": true`)
	assert.Contains(t, text, `"best_release": "2.1.0"`)
}

func TestCheckFindings(t *testing.T) {
	out := &CheckOutput{
		Packages: []CheckPackage{
			{Name: "numpy", OK: true},
			{Name: "scipy", OK: false, Reason: "conflict"},
		},
		Layout: []string{"version file missing"},
	}

	findings := checkFindings(out)
	require.Len(t, findings, 2)
	assert.Equal(t, "resolve", findings[0].RuleID)
	assert.Equal(t, "conflict", findings[0].Message)
	assert.Equal(t, "layout", findings[1].RuleID)
}

func TestJoinCycle(t *testing.T) {
	assert.Equal(t, "a -> b -> a", joinCycle([]string{"a", "b", "a"}))
	assert.Equal(t, "", joinCycle(nil))
}
