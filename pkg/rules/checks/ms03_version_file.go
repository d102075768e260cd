package checks

import (
	"fmt"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MS03",
		Name:        "version-file",
		Group:       "structure",
		Description: "Version file missing or not parseable",
		Severity:    rules.SeverityError,
		Check:       checkVersionFile,

		Rationale: `With a dynamic version the build backend reads this file verbatim. A
missing file fails the build; malformed content produces a
distribution with an invalid version that registries reject.`,
	})
}

// checkVersionFile verifies the dynamic version source. It needs a
// layout report in the context; without one it reports nothing.
func checkVersionFile(ctx *rules.Context) []rules.Diagnostic {
	if ctx.Layout == nil {
		return nil
	}

	v := ctx.Layout.Version
	if !v.Configured {
		return nil
	}

	if !v.Exists {
		return []rules.Diagnostic{{
			RuleID:   "MS03",
			Severity: rules.SeverityError,
			Message:  fmt.Sprintf("version file %s not found", v.Path),
			Path:     v.Path,
		}}
	}
	if v.ParseErr != nil {
		return []rules.Diagnostic{{
			RuleID:   "MS03",
			Severity: rules.SeverityError,
			Message:  fmt.Sprintf("version file %s: %v", v.Path, v.ParseErr),
			Path:     v.Path,
		}}
	}
	return nil
}
