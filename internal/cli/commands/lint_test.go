package commands

import (
	"testing"

	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/cli/testutil"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLintConfig_DisableFlag(t *testing.T) {
	m, err := manifest.Parse([]byte(testutil.ManifestTOML))
	require.NoError(t, err)

	cfg := buildLintConfig(m, &LintOptions{Disable: []string{"MD01", " MM04 "}})
	assert.False(t, cfg.Enabled("MD01"))
	assert.False(t, cfg.Enabled("MM04"))
	assert.True(t, cfg.Enabled("MS01"))
}

func TestBuildLintConfig_RuleFlagRestrictsSelection(t *testing.T) {
	m, err := manifest.Parse([]byte(testutil.ManifestTOML))
	require.NoError(t, err)

	cfg := buildLintConfig(m, &LintOptions{Rules: []string{"MS01"}})
	assert.True(t, cfg.Enabled("MS01"))
	assert.False(t, cfg.Enabled("MD01"))
}

func TestFilterBySeverity(t *testing.T) {
	diags := []rules.Diagnostic{
		{RuleID: "A", Severity: rules.SeverityError},
		{RuleID: "B", Severity: rules.SeverityWarning},
		{RuleID: "C", Severity: rules.SeverityInfo},
		{RuleID: "D", Severity: rules.SeverityHint},
	}

	assert.Len(t, filterBySeverity(diags, "hint"), 4)
	assert.Len(t, filterBySeverity(diags, "info"), 3)
	assert.Len(t, filterBySeverity(diags, "warning"), 2)
	assert.Len(t, filterBySeverity(diags, "error"), 1)
	// Unknown threshold keeps everything
	assert.Len(t, filterBySeverity(diags, "bogus"), 4)
}

func TestRenderLintResults_NoIssues(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeText, false)

	hasIssues := renderLintResults(r.Renderer, "packwright.toml", nil)
	assert.False(t, hasIssues)
	assert.Contains(t, r.Out.String(), "No lint issues found")
}

func TestRenderLintResults_Text(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeText, false)
	diags := []rules.Diagnostic{
		{RuleID: "MD01", Severity: rules.SeverityWarning, Message: "missing upper bound"},
		{RuleID: "MS01", Severity: rules.SeverityError, Message: "package missing"},
	}

	hasIssues := renderLintResults(r.Renderer, "packwright.toml", diags)
	assert.True(t, hasIssues)

	out := r.Out.String()
	assert.Contains(t, out, "MD01")
	assert.Contains(t, out, "missing upper bound")
	assert.Contains(t, out, "2 issues")
	assert.Contains(t, out, "1 errors")
	assert.Contains(t, out, "1 warnings")
}

func TestRenderLintResults_JSON(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeJSON, false)
	diags := []rules.Diagnostic{
		{RuleID: "MD01", Severity: rules.SeverityWarning, Message: "missing upper bound", Path: "packwright.toml"},
	}

	hasIssues := renderLintResults(r.Renderer, "packwright.toml", diags)
	assert.True(t, hasIssues)
	assert.Contains(t, r.Out.String(), `"rule_id": "MD01"`)
	assert.Contains(t, r.Out.String(), `"severity": "warning"`)
}

func TestDiagnosticsToFindings(t *testing.T) {
	diags := []rules.Diagnostic{
		{RuleID: "MD01", Severity: rules.SeverityWarning, Message: "m", Path: "p"},
	}

	findings := diagnosticsToFindings(diags)
	require.Len(t, findings, 1)
	assert.Equal(t, "MD01", findings[0].RuleID)
	assert.Equal(t, "warning", findings[0].Severity)
	assert.Equal(t, "p", findings[0].Path)
}
