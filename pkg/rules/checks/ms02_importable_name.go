package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/internal/layout"
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MS02",
		Name:        "unimportable-name",
		Group:       "structure",
		Description: "Declared package name is not importable",
		Severity:    rules.SeverityWarning,
		Check:       checkImportableName,

		Rationale: `A package whose name contains dashes or starts with a digit can be
shipped but never imported, so consumers only discover the problem at
runtime.`,
	})
}

func checkImportableName(ctx *rules.Context) []rules.Diagnostic {
	var diagnostics []rules.Diagnostic
	for _, name := range ctx.Manifest.Packages.Include {
		if layout.Importable(name) {
			continue
		}
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MS02",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("package %q is not an importable name", name),
		})
	}
	return diagnostics
}
