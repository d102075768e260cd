package pep440

import (
	"fmt"
	"regexp"
	"strings"
)

// Operator is a version comparison operator.
type Operator string

// Supported specifier operators.
const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpCompatible   Operator = "~="
	OpArbitrary    Operator = "==="
)

var specifierPattern = regexp.MustCompile(`^\s*(===|==|!=|~=|>=|<=|>|<)\s*(\S+)\s*$`)

// Specifier is a single version constraint such as ">=1.25" or "==2.*".
type Specifier struct {
	Op Operator
	// Version is the parsed target. Unset for === specifiers and for
	// wildcard specifiers, which carry Prefix instead.
	Version Version
	// Prefix holds the release prefix of a wildcard specifier (==X.* or
	// !=X.*). Nil otherwise.
	Prefix []int
	// Raw is the right-hand side as written, used by === and String.
	Raw string
}

// ParseSpecifier parses a single specifier clause.
func ParseSpecifier(s string) (Specifier, error) {
	m := specifierPattern.FindStringSubmatch(s)
	if m == nil {
		return Specifier{}, fmt.Errorf("invalid specifier %q", s)
	}

	spec := Specifier{Op: Operator(m[1]), Raw: m[2]}

	if spec.Op == OpArbitrary {
		return spec, nil
	}

	if strings.HasSuffix(m[2], ".*") {
		if spec.Op != OpEqual && spec.Op != OpNotEqual {
			return Specifier{}, fmt.Errorf("wildcard is only valid with == or !=: %q", s)
		}
		base, err := Parse(strings.TrimSuffix(m[2], ".*"))
		if err != nil {
			return Specifier{}, fmt.Errorf("invalid wildcard specifier %q: %w", s, err)
		}
		if !base.IsFinal() {
			return Specifier{}, fmt.Errorf("wildcard prefix must be a plain release: %q", s)
		}
		spec.Prefix = base.Release
		return spec, nil
	}

	v, err := Parse(m[2])
	if err != nil {
		return Specifier{}, fmt.Errorf("invalid specifier %q: %w", s, err)
	}
	if spec.Op == OpCompatible && len(v.Release) < 2 {
		return Specifier{}, fmt.Errorf("compatible release requires at least two release segments: %q", s)
	}
	spec.Version = v
	return spec, nil
}

// Match reports whether the version satisfies the specifier.
func (s Specifier) Match(v Version) bool {
	switch s.Op {
	case OpArbitrary:
		return strings.EqualFold(strings.TrimSpace(s.Raw), v.original) ||
			strings.TrimSpace(s.Raw) == v.String()
	case OpEqual:
		if s.Prefix != nil {
			return matchesPrefix(v, s.Prefix)
		}
		return equalIgnoringLocal(v, s.Version)
	case OpNotEqual:
		if s.Prefix != nil {
			return !matchesPrefix(v, s.Prefix)
		}
		return !equalIgnoringLocal(v, s.Version)
	case OpGreaterEqual:
		return v.Compare(s.Version) >= 0
	case OpLessEqual:
		return v.Compare(s.Version) <= 0
	case OpGreater:
		return v.Compare(s.Version) > 0
	case OpLess:
		return v.Compare(s.Version) < 0
	case OpCompatible:
		if v.Compare(s.Version) < 0 {
			return false
		}
		upper := Version{Epoch: s.Version.Epoch, Release: truncatedRelease(s.Version.Release), Post: -1, Dev: -1}
		return v.Compare(upper) < 0
	default:
		return false
	}
}

// equalIgnoringLocal compares versions, disregarding the candidate's
// local label when the specifier does not carry one.
func equalIgnoringLocal(v, target Version) bool {
	if target.Local == "" {
		v.Local = ""
	}
	return v.Compare(target) == 0
}

// matchesPrefix reports whether the version's release starts with the
// wildcard prefix, zero-padding the release when shorter.
func matchesPrefix(v Version, prefix []int) bool {
	for i, p := range prefix {
		r := 0
		if i < len(v.Release) {
			r = v.Release[i]
		}
		if r != p {
			return false
		}
	}
	return true
}

// String returns the specifier in its normalized written form.
func (s Specifier) String() string {
	return string(s.Op) + s.Raw
}

// SpecifierSet is a comma-separated conjunction of specifiers, such as
// ">=1.25,<3". An empty set matches every version.
type SpecifierSet []Specifier

// ParseSpecifierSet parses a comma-separated list of specifiers.
func ParseSpecifierSet(s string) (SpecifierSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var set SpecifierSet
	for _, clause := range strings.Split(s, ",") {
		spec, err := ParseSpecifier(clause)
		if err != nil {
			return nil, err
		}
		set = append(set, spec)
	}
	return set, nil
}

// Match reports whether the version satisfies every specifier in the set.
func (set SpecifierSet) Match(v Version) bool {
	for _, s := range set {
		if !s.Match(v) {
			return false
		}
	}
	return true
}

// String returns the set in its normalized written form.
func (set SpecifierSet) String() string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}
