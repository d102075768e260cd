package checks

import (
	"fmt"
	"strings"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "MT01",
		Name:        "unknown-runner-flag",
		Group:       "testing",
		Description: "Unrecognized flag in test.addopts",
		Severity:    rules.SeverityWarning,
		Check:       checkRunnerFlags,

		Rationale: `addopts is prepended to every runner invocation. A misspelled flag
makes the whole suite fail to start, and only on machines that run the
tests.`,
	})
}

// knownRunnerFlags are the runner flags the rule recognizes. Flags
// taking a value may appear as "--flag=value" or as a separate token.
var knownRunnerFlags = map[string]bool{
	"-q": true, "-v": true, "-x": true, "-s": true,
	"-r": true, "-ra": true, "-rA": true, "-rf": true, "-rs": true,
	"-k": true, "-m": true, "-p": true,
	"--strict-markers": true, "--strict-config": true,
	"--maxfail": true, "--tb": true, "--durations": true,
	"--cov": true, "--cov-report": true, "--cov-fail-under": true,
	"--doctest-modules": true, "--import-mode": true,
	"--color": true, "--capture": true, "--last-failed": true,
	"--exitfirst": true, "--no-header": true, "--quiet": true,
	"--verbose": true, "--ignore": true, "--rootdir": true,
}

func checkRunnerFlags(ctx *rules.Context) []rules.Diagnostic {
	if ctx.Manifest.Test == nil {
		return nil
	}

	var diagnostics []rules.Diagnostic
	for _, opt := range ctx.Manifest.Test.Addopts {
		if !strings.HasPrefix(opt, "-") {
			continue // positional argument, e.g. a test directory
		}
		flag := opt
		if i := strings.Index(flag, "="); i >= 0 {
			flag = flag[:i]
		}
		if knownRunnerFlags[flag] {
			continue
		}
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "MT01",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("unknown runner flag %q in test.addopts", opt),
		})
	}
	return diagnostics
}
