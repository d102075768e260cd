package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MS01",
		Name:        "missing-package",
		Group:       "structure",
		Description: "Declared package does not exist on disk",
		Severity:    rules.SeverityError,
		Check:       checkMissingPackage,

		Rationale: `The inclusion list is the build backend's source of truth. An entry
without a matching directory produces a distribution that silently
omits the package, or fails the build outright.`,
	})
}

// checkMissingPackage reports inclusion-list entries whose directory is
// absent. It needs a layout report in the context; without one it
// reports nothing.
func checkMissingPackage(ctx *rules.Context) []rules.Diagnostic {
	if ctx.Layout == nil {
		return nil
	}

	var diagnostics []rules.Diagnostic
	for _, p := range ctx.Layout.Packages {
		if p.Exists {
			continue
		}
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MS01",
			Severity: rules.SeverityError,
			Message:  fmt.Sprintf("package %q not found at %s", p.Name, p.Dir),
			Path:     p.Dir,
		})
	}
	return diagnostics
}
