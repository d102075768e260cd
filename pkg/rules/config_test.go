package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwright-labs/packwright/pkg/manifest"
)

func TestConfig_Enabled(t *testing.T) {
	tests := []struct {
		name   string
		sel    []string
		ignore []string
		ruleID string
		want   bool
	}{
		{"empty config enables all", nil, nil, "MD01", true},
		{"exact select", []string{"MD01"}, nil, "MD01", true},
		{"exact select excludes others", []string{"MD01"}, nil, "MD02", false},
		{"prefix select", []string{"MD"}, nil, "MD03", true},
		{"prefix select excludes other groups", []string{"MD"}, nil, "MM01", false},
		{"ignore wins over select", []string{"MD"}, []string{"MD03"}, "MD03", false},
		{"prefix ignore", nil, []string{"MT"}, "MT02", false},
		{"partial numeric prefix does not match", []string{"MD0"}, nil, "MD01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Select: tt.sel, Ignore: tt.ignore}
			assert.Equal(t, tt.want, c.Enabled(tt.ruleID))
		})
	}
}

func TestConfig_GetSeverity(t *testing.T) {
	c := NewConfig()
	c.SeverityOverrides["MD01"] = SeverityError

	assert.Equal(t, SeverityError, c.GetSeverity("MD01", SeverityWarning))
	assert.Equal(t, SeverityWarning, c.GetSeverity("MD02", SeverityWarning))
}

func TestConfig_IgnoredForPath(t *testing.T) {
	c := NewConfig()
	c.PerPathIgnores["mmkit/compat/*"] = []string{"MD"}
	c.PerPathIgnores["mmkit/mmm"] = []string{"MS01"}

	assert.True(t, c.IgnoredForPath("MD01", "mmkit/compat/legacy.py"))
	assert.False(t, c.IgnoredForPath("MM01", "mmkit/compat/legacy.py"))
	assert.True(t, c.IgnoredForPath("MS01", "mmkit/mmm/transformers.py"))
	assert.False(t, c.IgnoredForPath("MS01", "mmkit/clv/models.py"))
	assert.False(t, c.IgnoredForPath("MD01", ""))
}

func TestConfigFromManifest(t *testing.T) {
	m, err := manifest.Parse([]byte(`
[project]
name = "mmkit"

[lint]
select = ["MD", "MM", "MS"]
ignore = ["MM04"]

[lint.severity]
MD01 = "error"
MS02 = "bogus"

[lint.per-path-ignores]
"mmkit/compat" = ["MD01"]
`))
	require.NoError(t, err)

	cfg := ConfigFromManifest(m)
	assert.True(t, cfg.Enabled("MD01"))
	assert.False(t, cfg.Enabled("MM04"))
	assert.False(t, cfg.Enabled("MT01"))
	assert.Equal(t, SeverityError, cfg.GetSeverity("MD01", SeverityWarning))
	// Unknown severity names keep the default.
	assert.Equal(t, SeverityWarning, cfg.GetSeverity("MS02", SeverityWarning))
	assert.True(t, cfg.IgnoredForPath("MD01", "mmkit/compat/legacy.py"))
}

func TestConfigFromManifest_NoLintTable(t *testing.T) {
	m, err := manifest.Parse([]byte("[project]\nname = \"mmkit\"\n"))
	require.NoError(t, err)

	cfg := ConfigFromManifest(m)
	assert.True(t, cfg.Enabled("MD01"))
	assert.True(t, cfg.Enabled("ML02"))
}

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]Severity{
		"error": SeverityError, "warning": SeverityWarning,
		"info": SeverityInfo, "hint": SeverityHint,
	} {
		sev, ok := ParseSeverity(name)
		assert.True(t, ok)
		assert.Equal(t, want, sev)
		assert.Equal(t, name, sev.String())
	}
	_, ok := ParseSeverity("fatal")
	assert.False(t, ok)
}
