package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwright-labs/packwright/pkg/manifest"
)

func registerTestRules(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)

	Register(RuleDef{
		ID: "TA01", Name: "always-warns", Group: "testgroup",
		Description: "always produces one warning",
		Severity:    SeverityWarning,
		Check: func(ctx *Context) []Diagnostic {
			return []Diagnostic{{RuleID: "TA01", Severity: SeverityWarning, Message: "warned"}}
		},
	})
	Register(RuleDef{
		ID: "TA02", Name: "pathed", Group: "testgroup",
		Description: "reports against a path",
		Severity:    SeverityError,
		Check: func(ctx *Context) []Diagnostic {
			return []Diagnostic{{RuleID: "TA02", Severity: SeverityError, Message: "bad file", Path: "pkg/legacy.py"}}
		},
	})
}

func testContext(t *testing.T) *Context {
	t.Helper()
	m, err := manifest.Parse([]byte("[project]\nname = \"mmkit\"\n"))
	require.NoError(t, err)
	return &Context{Manifest: m}
}

func TestAnalyzer_RunsEnabledRules(t *testing.T) {
	registerTestRules(t)

	diags := NewAnalyzer(nil).Analyze(testContext(t))
	require.Len(t, diags, 2)
	assert.Equal(t, "TA01", diags[0].RuleID)
	assert.Equal(t, "TA02", diags[1].RuleID)
	assert.True(t, HasErrors(diags))
}

func TestAnalyzer_DisabledRule(t *testing.T) {
	registerTestRules(t)

	cfg := NewConfig()
	cfg.Ignore = []string{"TA02"}
	diags := NewAnalyzer(cfg).Analyze(testContext(t))
	require.Len(t, diags, 1)
	assert.Equal(t, "TA01", diags[0].RuleID)
	assert.False(t, HasErrors(diags))
}

func TestAnalyzer_SeverityOverride(t *testing.T) {
	registerTestRules(t)

	cfg := NewConfig()
	cfg.SeverityOverrides["TA01"] = SeverityHint
	diags := NewAnalyzer(cfg).Analyze(testContext(t))
	require.Len(t, diags, 2)
	assert.Equal(t, SeverityHint, diags[0].Severity)
}

func TestAnalyzer_PerPathIgnore(t *testing.T) {
	registerTestRules(t)

	cfg := NewConfig()
	cfg.PerPathIgnores["pkg/*"] = []string{"TA02"}
	diags := NewAnalyzer(cfg).Analyze(testContext(t))
	require.Len(t, diags, 1)
	assert.Equal(t, "TA01", diags[0].RuleID)
}

func TestCountBySeverity(t *testing.T) {
	registerTestRules(t)

	counts := CountBySeverity(NewAnalyzer(nil).Analyze(testContext(t)))
	assert.Equal(t, 1, counts[SeverityWarning])
	assert.Equal(t, 1, counts[SeverityError])
}

func TestRegistry(t *testing.T) {
	registerTestRules(t)

	assert.Equal(t, 2, Count())

	rule, ok := GetByID("TA01")
	require.True(t, ok)
	assert.Equal(t, "always-warns", rule.Name)

	assert.Len(t, GetByGroup("testgroup"), 2)
	assert.Empty(t, GetByGroup("nope"))
	assert.Equal(t, []string{"testgroup"}, Groups())

	assert.True(t, KnownCode("TA01"))
	assert.True(t, KnownCode("TA"))
	assert.False(t, KnownCode("ZZ"))
}
