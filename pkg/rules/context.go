package rules

import (
	"github.com/packwright-labs/packwright/internal/layout"
	"github.com/packwright-labs/packwright/internal/resolver"
	"github.com/packwright-labs/packwright/pkg/manifest"
)

// Context provides the project state rules run against. Manifest is
// always set; Layout and Resolution are optional and rules that need
// them skip quietly when they are nil.
type Context struct {
	// Manifest is the parsed manifest.
	Manifest *manifest.Manifest
	// Root is the project root directory.
	Root string
	// Layout is the source layout report, nil when not verified.
	Layout *layout.Report
	// Resolution is the dependency resolution result, nil when not
	// resolved.
	Resolution *resolver.Result
}

// Requirements returns every parsed dependency declaration, ignoring
// declarations that fail to parse (those are MD05's concern).
func (c *Context) Requirements() []manifest.Requirement {
	reqs, _ := c.Manifest.Requirements()
	return reqs
}
