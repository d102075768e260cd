package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/pkg/pep440"
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MM03",
		Name:        "runtime-constraint",
		Group:       "metadata",
		Description: "No runtime version constraint declared",
		Severity:    rules.SeverityWarning,
		Check:       checkRuntimeConstraint,

		Rationale: `A missing runtime constraint claims the project works on every runtime
version ever released. Resolvers use the constraint to pick compatible
dependency versions, so an absent or unparseable one degrades
resolution for every consumer.`,
	})
}

func checkRuntimeConstraint(ctx *rules.Context) []rules.Diagnostic {
	runtime := ctx.Manifest.Project.Runtime
	if runtime == "" {
		return []rules.Diagnostic{{
			RuleID:   "MM03",
			Severity: rules.SeverityWarning,
			Message:  "project.runtime is not set",
		}}
	}

	set, err := pep440.ParseSpecifierSet(runtime)
	if err != nil {
		return []rules.Diagnostic{{
			RuleID:   "MM03",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("project.runtime %q does not parse: %v", runtime, err),
		}}
	}
	if empty, reason := set.Interval().Empty(); empty {
		return []rules.Diagnostic{{
			RuleID:   "MM03",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("project.runtime %q is unsatisfiable: %s", runtime, reason),
		}}
	}
	return nil
}
