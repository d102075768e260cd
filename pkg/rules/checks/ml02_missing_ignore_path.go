package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packwright-labs/packwright/pkg/rules"
)

func init() {
	rules.Register(rules.RuleDef{
		ID:          "ML02",
		Name:        "missing-ignore-path",
		Group:       "lintcfg",
		Description: "Per-path ignore matches nothing in the project",
		Severity:    rules.SeverityWarning,
		Check:       checkIgnorePaths,

		Rationale: `A per-path exception that matches no file is dead configuration: the
path it once covered moved or was deleted, and the entry now only
misleads readers about where exceptions apply.`,
	})
}

// checkIgnorePaths verifies each per-path glob against the project
// tree. It needs a project root in the context; without one it reports
// nothing.
func checkIgnorePaths(ctx *rules.Context) []rules.Diagnostic {
	lint := ctx.Manifest.Lint
	if lint == nil || ctx.Root == "" {
		return nil
	}

	var diagnostics []rules.Diagnostic
	for glob := range lint.PerPathIgnores {
		if globHasMatch(ctx.Root, glob) {
			continue
		}
		diagnostics = append(diagnostics, rules.Diagnostic{
			RuleID:   "ML02",
			Severity: rules.SeverityWarning,
			Message:  fmt.Sprintf("per-path ignore %q matches nothing in the project", glob),
		})
	}
	return diagnostics
}

func globHasMatch(root, glob string) bool {
	pattern := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(glob, "./")))
	if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
		return true
	}
	// A bare path without metacharacters may name a file or directory.
	if _, err := os.Stat(pattern); err == nil {
		return true
	}
	return false
}
