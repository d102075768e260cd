package checks

import (
	"fmt"
	"strings"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MD03",
		Name:        "conflicting-specifiers",
		Group:       "deps",
		Description: "Merged dependency ranges cannot be satisfied together",
		Severity:    rules.SeverityError,
		Check:       checkConflictingSpecifiers,

		Rationale: `When the base list and an optional group constrain the same package to
disjoint ranges, installing the project with that group enabled fails.
The manifest promises that all declared ranges are simultaneously
satisfiable.`,
	})
}

// checkConflictingSpecifiers reports resolution conflicts. It needs a
// resolution result in the context; without one it reports nothing.
func checkConflictingSpecifiers(ctx *rules.Context) []rules.Diagnostic {
	if ctx.Resolution == nil {
		return nil
	}

	var diagnostics []rules.Diagnostic

	if len(ctx.Resolution.Cycle) > 0 {
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MD03",
			Severity: rules.SeverityError,
			Message:  fmt.Sprintf("recursive group inclusion: %s", strings.Join(ctx.Resolution.Cycle, " -> ")),
		})
	}

	for _, pkg := range ctx.Resolution.Conflicts() {
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MD03",
			Severity: rules.SeverityError,
			Message:  fmt.Sprintf("'%s': %s", pkg.Name, pkg.Reason),
		})
	}

	return diagnostics
}
