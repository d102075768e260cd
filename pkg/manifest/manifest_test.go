package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
[build]
backend = "packcore.build"
requires = ["packcore>=1.3", "wheelhouse"]

[project]
name = "mmkit"
description = "Marketing analytics statistics library"
readme = "README.md"
license = "Apache-2.0"
runtime = ">=3.10,<3.14"
dynamic = ["version"]
dependencies = [
    "arviz>=0.13.0",
    "matplotlib>3.5.1",
    "numpy>=1.17,<3",
    "statcore>=5.12.0,<5.16.0",
]

[project.groups]
docs = ["sphinxlike>=6.0", "docthemes>=0.14"]
lint = ["typecheck", "precommit>=2.19.0", "rufflike>=0.1.4"]
test = ["graphtools>=0.17.0", "lifevalue==0.11.3", "testrun==7.0.1", "testcov>=3.0.0"]
all = ["mmkit[docs,lint,test]"]

[packages]
include = ["mmkit", "mmkit.mmm", "mmkit.clv"]
version-file = "mmkit/version.txt"

[lint]
select = ["MD", "MM", "MS", "MT", "ML"]
ignore = ["MD04"]

[lint.per-path-ignores]
"legacy/*" = ["MS02"]

[test]
addopts = ["-v", "--strict-markers", "--strict-config", "--cov=mmkit"]
markers = ["slow: long-running model fits"]
filterwarnings = ["ignore::DeprecationWarning:mmkit.mmm.transformers:59"]
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "packcore.build", m.Build.Backend)
	assert.Len(t, m.Build.Requires, 2)

	assert.Equal(t, "mmkit", m.Project.Name)
	assert.Equal(t, ">=3.10,<3.14", m.Project.Runtime)
	assert.True(t, m.IsDynamic("version"))
	assert.False(t, m.IsDynamic("description"))
	assert.Len(t, m.Project.Dependencies, 4)

	assert.Equal(t, []string{"all", "docs", "lint", "test"}, m.GroupNames())

	assert.Equal(t, []string{"mmkit", "mmkit.mmm", "mmkit.clv"}, m.Packages.Include)
	assert.Equal(t, "mmkit/version.txt", m.Packages.VersionFile)

	require.NotNil(t, m.Lint)
	assert.Contains(t, m.Lint.Select, "MD")
	assert.Equal(t, []string{"MS02"}, m.Lint.PerPathIgnores["legacy/*"])

	require.NotNil(t, m.Test)
	assert.Contains(t, m.Test.Addopts, "--strict-markers")
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte(`
[project]
name = "x"
dependencis = ["oops"]
`))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "unknown manifest keys")
}

func TestParse_MissingName(t *testing.T) {
	_, err := Parse([]byte(`
[project]
description = "anonymous"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project.name is required")
}

func TestParse_InvalidTOML(t *testing.T) {
	_, err := Parse([]byte("[project\nname = \"x\""))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Greater(t, perr.Line, 0)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	assert.Equal(t, "mmkit", m.Project.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestRequirements(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	reqs, errs := m.Requirements()
	assert.Empty(t, errs)

	byName := map[string]Requirement{}
	for _, r := range reqs {
		byName[r.Origin+"/"+r.CanonicalName()] = r
	}

	numpy := byName["dependencies/numpy"]
	assert.Equal(t, ">=1.17,<3", numpy.Specifiers.String())

	self := byName["groups.all/mmkit"]
	assert.True(t, self.IsSelfReference("mmkit"))
	assert.Equal(t, []string{"docs", "lint", "test"}, self.Extras)

	build := byName["build.requires/packcore"]
	assert.Equal(t, "build.requires", build.Origin)
}

func TestWarningFilters(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	filters, errs := m.WarningFilters()
	require.Empty(t, errs)
	require.Len(t, filters, 1)

	f := filters[0]
	assert.Equal(t, "ignore", f.Action)
	assert.Equal(t, "DeprecationWarning", f.Category)
	assert.Equal(t, "mmkit.mmm.transformers", f.Module)
	assert.Equal(t, 59, f.Line)
}

func TestMarkers(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	markers := m.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, "slow", markers[0].Name)
	assert.Equal(t, "long-running model fits", markers[0].Description)
}
