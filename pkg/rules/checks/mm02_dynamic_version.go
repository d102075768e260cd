package checks

import (
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MM02",
		Name:        "dynamic-version",
		Group:       "metadata",
		Description: "Dynamic version and version-file pointer out of sync",
		Severity:    rules.SeverityWarning,
		Check:       checkDynamicVersion,

		Rationale: `Declaring the version dynamic tells the backend to read it from the
configured file. Either half on its own leaves the build without a
version source, or with one that is silently ignored.`,
	})
}

func checkDynamicVersion(ctx *rules.Context) []rules.Diagnostic {
	m := ctx.Manifest
	dynamic := m.IsDynamic("version")
	configured := m.Packages.VersionFile != ""

	var diagnostics []rules.Diagnostic
	switch {
	case dynamic && !configured:
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MM02",
			Severity: rules.SeverityWarning,
			Message:  "\"version\" is declared dynamic but packages.version-file is not set",
		})
	case configured && !dynamic:
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MM02",
			Severity: rules.SeverityWarning,
			Message:  "packages.version-file is set but \"version\" is not declared dynamic",
			Path:     m.Packages.VersionFile,
		})
	}
	if dynamic && m.Project.Version != "" {
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MM02",
			Severity: rules.SeverityWarning,
			Message:  "project.version is set even though \"version\" is declared dynamic",
		})
	}
	return diagnostics
}
