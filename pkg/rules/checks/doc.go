// Package checks implements the built-in manifest lint rules.
//
// Rules are organized by group:
//   - deps: dependency declarations and version ranges (MD01-MD06)
//   - metadata: build backend and project metadata (MM01-MM04)
//   - structure: source layout and version file (MS01-MS03)
//   - testing: test-runner options and warning filters (MT01-MT03)
//   - lintcfg: the manifest's own lint table (ML01-ML02)
//
// To register every rule with the global registry, import this package
// with a blank identifier:
//
//	import _ "github.com/packwright-labs/packwright/pkg/rules/checks"
package checks
