package checks

import (
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MD05",
		Name:        "invalid-specifier",
		Group:       "deps",
		Description: "Dependency declaration does not parse",
		Severity:    rules.SeverityError,
		Check:       checkInvalidSpecifier,

		Rationale: `An unparseable declaration is dropped or misread by installers, so the
constraint the author intended is never enforced.`,
	})
}

func checkInvalidSpecifier(ctx *rules.Context) []rules.Diagnostic {
	_, errs := ctx.Manifest.Requirements()

	var diagnostics []rules.Diagnostic
	for _, err := range errs {
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MD05",
			Severity: rules.SeverityError,
			Message:  err.Error(),
		})
	}
	return diagnostics
}
