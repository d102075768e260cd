package manifest

import "fmt"

// ParseError describes a manifest that could not be parsed.
type ParseError struct {
	Message string
	Detail  string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest parse error at line %d: %s", e.Line, e.Message)
	}
	return "manifest parse error: " + e.Message
}

// RequirementError describes a dependency string that could not be
// parsed, along with where it was declared.
type RequirementError struct {
	Raw    string
	Origin string // "dependencies", "build.requires" or "groups.<name>"
	Reason error
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("invalid requirement %q in %s: %v", e.Raw, e.Origin, e.Reason)
}

func (e *RequirementError) Unwrap() error { return e.Reason }
