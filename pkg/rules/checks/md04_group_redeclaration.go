package checks

import (
	"fmt"
	"strings"

	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MD04",
		Name:        "group-redeclaration",
		Group:       "deps",
		Description: "Optional group repeats a base dependency with the same range",
		Severity:    rules.SeverityWarning,
		Check:       checkGroupRedeclaration,

		Rationale: `A group entry identical to a base dependency adds nothing: the base
list already applies. Redeclarations drift apart over time, and the
next editor has to work out which copy is authoritative.`,
	})
}

func checkGroupRedeclaration(ctx *rules.Context) []rules.Diagnostic {
	base := make(map[string]manifest.Requirement)
	for _, req := range ctx.Requirements() {
		if req.Origin == "dependencies" {
			base[req.CanonicalName()] = req
		}
	}

	var diagnostics []rules.Diagnostic
	for _, req := range ctx.Requirements() {
		if !strings.HasPrefix(req.Origin, "groups.") {
			continue
		}
		existing, ok := base[req.CanonicalName()]
		if !ok {
			continue
		}
		// Tightening the base range from a group is deliberate; only
		// the verbatim repeat is redundant.
		if existing.Specifiers.String() != req.Specifiers.String() {
			continue
		}
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MD04",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("'%s' in %s repeats the base dependency unchanged", req.CanonicalName(), req.Origin),
		})
	}

	return diagnostics
}
