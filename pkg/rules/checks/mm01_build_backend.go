package checks

import (
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MM01",
		Name:        "missing-build-backend",
		Group:       "metadata",
		Description: "No build backend declared",
		Severity:    rules.SeverityWarning,
		Check:       checkBuildBackend,

		Rationale: `Without an explicit backend, build tools fall back to a legacy default
that ignores the rest of the build table. Declaring the backend makes
the build reproducible across tool versions.`,
	})
}

func checkBuildBackend(ctx *rules.Context) []rules.Diagnostic {
	if ctx.Manifest.Build.Backend != "" {
		return nil
	}
	return []rules.Diagnostic{{
		RuleID:   "MM01",
		Severity: rules.SeverityWarning,
		Message:  "build.backend is not set",
	}}
}
