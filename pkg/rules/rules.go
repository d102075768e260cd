// Package rules provides manifest linting. Rules inspect a parsed
// manifest together with the project's resolved dependencies and
// source layout, and report diagnostics.
//
// Rule implementations live in the checks subpackage and register
// themselves from init(). Importers that want the full rule set blank
// import packwright/pkg/rules/checks.
package rules

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name as written in the manifest's
// lint table.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityError, false
	}
}

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	// Path is the project-relative path the finding applies to, empty
	// when the finding concerns the manifest as a whole.
	Path string
}
