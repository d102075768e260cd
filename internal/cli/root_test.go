package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/packwright-labs/packwright/internal/cli/config"
	"github.com/packwright-labs/packwright/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args inside the test project.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheckCommand_Passes(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := execute(t, "check", "--format", "json")
	require.NoError(t, err)

	var result struct {
		OK       bool `json:"ok"`
		Packages []struct {
			Name string `json:"name"`
		} `json:"packages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.OK)
	assert.NotEmpty(t, result.Packages)

	names := make([]string, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		names = append(names, pkg.Name)
	}
	assert.True(t, sort.StringsAreSorted(names), "packages should be listed by name, got %v", names)
}

func TestCheckCommand_FailsOnConflict(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	conflicting := `[build]
backend = "flit_core.buildapi"
requires = ["flit_core >=3.9,<4"]

[project]
name = "mmkit"
runtime = ">=3.10,<3.14"
version = "1.0.0"
dependencies = ["numpy >=2,<3"]

[project.groups]
legacy = ["numpy <2"]

[packages]
include = ["mmkit"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "packwright.toml"), []byte(conflicting), 0644))
	t.Chdir(dir)

	out, _, err := execute(t, "check", "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"ok": false`)
	assert.Contains(t, out, "numpy")
}

func TestLintCommand_CleanProject(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := execute(t, "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")
}

func TestLintCommand_ReportsIssues(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	unbounded := `[build]
backend = "flit_core.buildapi"
requires = ["flit_core >=3.9,<4"]

[project]
name = "mmkit"
runtime = ">=3.10,<3.14"
version = "1.0.0"
dependencies = ["numpy >=1.26"]

[packages]
include = ["mmkit"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "packwright.toml"), []byte(unbounded), 0644))
	t.Chdir(dir)

	out, _, err := execute(t, "lint", "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, "MD01")
}

func TestDoctorCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := execute(t, "doctor", "--format", "json")
	require.NoError(t, err)

	var result struct {
		Score   int `json:"score"`
		Summary struct {
			Name string `json:"name"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "mmkit", result.Summary.Name)
	assert.Equal(t, 100, result.Score)
}

func TestDepsCommand_Group(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := execute(t, "deps", "--group", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "sphinx")
	assert.Contains(t, out, "pytest")
}

func TestRulesCommand_List(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var result struct {
		Rules []struct {
			ID string `json:"id"`
		} `json:"rules"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 18, result.Count)
}

func TestIndexImportAndCheck(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	releases := `{"numpy": ["1.26.4", "2.1.0"], "pandas": ["2.2.3"]}`
	releasePath := filepath.Join(dir, "releases.json")
	require.NoError(t, os.WriteFile(releasePath, []byte(releases), 0644))
	t.Chdir(dir)

	_, _, err := execute(t, "index", "import", releasePath)
	require.NoError(t, err)

	out, _, err := execute(t, "check", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"best_release": "2.1.0"`)

	out, _, err = execute(t, "index", "list", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "numpy")

	_, _, err = execute(t, "index", "clear")
	require.NoError(t, err)
}

func TestRunsRecorded(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	_, _, err := execute(t, "check")
	require.NoError(t, err)

	out, _, err := execute(t, "runs", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Command": "check"`)

	var runs []struct {
		ID string `json:"ID"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.NotEmpty(t, runs)

	// The list view shows shortened IDs; they must resolve to the run.
	out, _, err = execute(t, "runs", runs[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)
}

func TestRootCommand_UnknownSubcommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	_, _, err := execute(t, "definitely-not-a-command")
	assert.Error(t, err)
}
