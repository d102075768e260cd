package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MD01",
		Name:        "missing-upper-bound",
		Group:       "deps",
		Description: "Dependency range has no upper bound",
		Severity:    rules.SeverityWarning,
		Check:       checkUpperBound,

		Rationale: `A range with only a floor accepts every future major release of the
dependency. Breaking releases then surface as install-time failures for
users rather than as a reviewed range bump.`,
	})
}

// checkUpperBound flags runtime dependencies whose specifier set
// accepts arbitrarily high versions. Build requirements are covered
// separately by MD06.
func checkUpperBound(ctx *rules.Context) []rules.Diagnostic {
	var diagnostics []rules.Diagnostic

	for _, req := range ctx.Requirements() {
		if req.Origin == "build.requires" {
			continue
		}
		if req.IsSelfReference(ctx.Manifest.Project.Name) {
			continue
		}
		iv := req.Specifiers.Interval()
		if iv.Upper != nil || len(iv.Pins) > 0 || len(iv.Arbitrary) > 0 {
			continue
		}
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MD01",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("'%s' (%s) has no upper bound", req.Raw, req.Origin),
		})
	}

	return diagnostics
}
