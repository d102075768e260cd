package checks

import (
	"fmt"
	"strings"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MT03",
		Name:        "unregistered-marker",
		Group:       "testing",
		Description: "Marker selected in addopts but not registered",
		Severity:    rules.SeverityWarning,
		Check:       checkStrictMarkers,

		Rationale: `Under strict markers the runner rejects any marker it has not seen
registered. Selecting an unregistered marker from addopts therefore
fails every invocation.`,
	})
}

func checkStrictMarkers(ctx *rules.Context) []rules.Diagnostic {
	test := ctx.Manifest.Test
	if test == nil {
		return nil
	}

	strict := false
	for _, opt := range test.Addopts {
		if opt == "--strict-markers" {
			strict = true
		}
	}
	if !strict {
		return nil
	}

	registered := make(map[string]bool)
	for _, marker := range ctx.Manifest.Markers() {
		registered[marker.Name] = true
	}

	var diagnostics []rules.Diagnostic
	for _, expr := range markerExpressions(test.Addopts) {
		for _, name := range markerNames(expr) {
			if registered[name] {
				continue
			}
			diagnostics = append(diagnostics, rules.Diagnostic{
				RuleID:   "MT03",
				Severity: rules.SeverityWarning,
				Message:  fmt.Sprintf("marker %q selected in test.addopts but not registered in test.markers", name),
			})
		}
	}
	return diagnostics
}

// markerExpressions extracts the values of -m flags from addopts,
// handling both "-m=expr" and "-m" followed by the expression.
func markerExpressions(addopts []string) []string {
	var exprs []string
	for i, opt := range addopts {
		switch {
		case strings.HasPrefix(opt, "-m="):
			exprs = append(exprs, opt[len("-m="):])
		case opt == "-m" && i+1 < len(addopts):
			exprs = append(exprs, addopts[i+1])
		}
	}
	return exprs
}

// markerNames pulls marker identifiers out of a selection expression,
// skipping the boolean keywords.
func markerNames(expr string) []string {
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == '(' || r == ')' || r == ' ' || r == '\t'
	})
	var names []string
	for _, f := range fields {
		switch f {
		case "and", "or", "not", "":
			continue
		}
		names = append(names, f)
	}
	return names
}
