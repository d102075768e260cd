package checks

import (
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MT02",
		Name:        "malformed-warning-filter",
		Group:       "testing",
		Description: "Warning filter entry does not parse",
		Severity:    rules.SeverityWarning,
		Check:       checkWarningFilters,

		Rationale: `Warning filters gate which deprecations fail the suite. A malformed
entry is rejected by the runner at startup, taking the intended
"error on our own deprecations" policy down with it.`,
	})
}

func checkWarningFilters(ctx *rules.Context) []rules.Diagnostic {
	if ctx.Manifest.Test == nil {
		return nil
	}

	var diagnostics []rules.Diagnostic
	_, errs := ctx.Manifest.WarningFilters()
	for _, err := range errs {
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MT02",
			Severity: rules.SeverityWarning,
			Message:  err.Error(),
		})
	}
	return diagnostics
}
