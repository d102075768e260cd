package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MM04",
		Name:        "non-canonical-name",
		Group:       "metadata",
		Description: "Project name differs from its canonical form",
		Severity:    rules.SeverityInfo,
		Check:       checkProjectName,

		Rationale: `Registries and resolvers compare names in canonical form. Publishing
under a non-canonical spelling works, but every consumer sees a name
that differs from what they type to install it.`,
	})
}

func checkProjectName(ctx *rules.Context) []rules.Diagnostic {
	name := ctx.Manifest.Project.Name
	canonical := manifest.CanonicalName(name)
	if name == canonical {
		return nil
	}
	return []rules.Diagnostic{{
		RuleID:   "MM04",
		Severity: rules.SeverityInfo,
		Message:  fmt.Sprintf("project name %q is not canonical (canonical form: %q)", name, canonical),
	}}
}
