package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MD06",
		Name:        "unpinned-build-requirement",
		Group:       "deps",
		Description: "Build requirement accepts arbitrarily new backend versions",
		Severity:    rules.SeverityWarning,
		Check:       checkUnpinnedBuildRequirement,

		Rationale: `The build backend runs before anything else is installed, so a backend
major release that changes behavior breaks every fresh build of the
project. Backends are conventionally held below their next major.`,
	})
}

func checkUnpinnedBuildRequirement(ctx *rules.Context) []rules.Diagnostic {
	var diagnostics []rules.Diagnostic

	for _, req := range ctx.Requirements() {
		if req.Origin != "build.requires" {
			continue
		}
		iv := req.Specifiers.Interval()
		if iv.Upper != nil || len(iv.Pins) > 0 || len(iv.Arbitrary) > 0 {
			continue
		}
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MD06",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("build requirement '%s' has no upper bound", req.Raw),
		})
	}

	return diagnostics
}
