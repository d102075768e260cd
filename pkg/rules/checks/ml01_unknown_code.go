package checks

import (
	"fmt"
	"sort"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "ML01",
		Name:        "unknown-rule-code",
		Group:       "lintcfg",
		Description: "Lint table references a rule code that does not exist",
		Severity:    rules.SeverityWarning,
		Check:       checkUnknownCodes,

		Rationale: `A selected or ignored code that matches no rule is usually a typo, and
the exception the author wanted never takes effect.`,
	})
}

func checkUnknownCodes(ctx *rules.Context) []rules.Diagnostic {
	lint := ctx.Manifest.Lint
	if lint == nil {
		return nil
	}

	// De-duplicate: the same bad code may appear in several places.
	where := make(map[string][]string)
	record := func(code, location string) {
		if !rules.KnownCode(code) {
			where[code] = append(where[code], location)
		}
	}

	for _, code := range lint.Select {
		record(code, "lint.select")
	}
	for _, code := range lint.Ignore {
		record(code, "lint.ignore")
	}
	for code := range lint.Severity {
		record(code, "lint.severity")
	}
	for glob, codes := range lint.PerPathIgnores {
		for _, code := range codes {
			record(code, fmt.Sprintf("lint.per-path-ignores[%q]", glob))
		}
	}

	codes := make([]string, 0, len(where))
	for code := range where {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var diagnostics []rules.Diagnostic
	for _, code := range codes {
		locations := where[code]
		sort.Strings(locations)
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "ML01",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("unknown rule code %q in %s", code, locations[0]),
		})
	}
	return diagnostics
}
