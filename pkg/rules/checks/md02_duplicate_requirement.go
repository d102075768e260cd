package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MD02",
		Name:        "duplicate-requirement",
		Group:       "deps",
		Description: "Package declared more than once in the same list",
		Severity:    rules.SeverityWarning,
		Check:       checkDuplicateRequirement,

		Rationale: `Two declarations of the same package in one list merge silently at
install time. The later entry usually reflects an edit that forgot the
earlier one, and the effective range becomes whatever the intersection
happens to be.`,
	})
}

func checkDuplicateRequirement(ctx *rules.Context) []rules.Diagnostic {
	var diagnostics []rules.Diagnostic

	seen := make(map[string]map[string]bool) // origin -> canonical name
	for _, req := range ctx.Requirements() {
		if req.IsSelfReference(ctx.Manifest.Project.Name) {
			continue
		}
		if seen[req.Origin] == nil {
			seen[req.Origin] = make(map[string]bool)
		}
		name := req.CanonicalName()
		if seen[req.Origin][name] {
			diagnostics = append(diagnostics, rules.Diagnostic{
				RuleID:   "MD02",
				Severity: rules.SeverityWarning,
				Message:  fmt.Sprintf("'%s' declared more than once in %s", name, req.Origin),
			})
			continue
		}
		seen[req.Origin][name] = true
	}

	return diagnostics
}
