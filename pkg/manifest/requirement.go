package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/packwright-labs/packwright/pkg/pep440"
)

// Requirement is one parsed dependency declaration, e.g.
// "arviz[plots]>=0.13.0,<1 ; platform == 'linux'".
type Requirement struct {
	// Name is the package name as written.
	Name string
	// Extras are the requested extras, lowercased.
	Extras []string
	// Specifiers constrain the acceptable versions; empty means any.
	Specifiers pep440.SpecifierSet
	// Marker is the raw environment marker after ";", if any.
	Marker string
	// Raw is the declaration as written.
	Raw string
	// Origin records where the requirement was declared.
	Origin string
}

var namePattern = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)`)

var dashRuns = regexp.MustCompile(`[-_.]+`)

// CanonicalName normalizes a package name for comparison: lowercase
// with runs of "-", "_" and "." collapsed to a single dash.
func CanonicalName(name string) string {
	return strings.ToLower(dashRuns.ReplaceAllString(name, "-"))
}

// ParseRequirement parses a single dependency declaration.
func ParseRequirement(raw, origin string) (Requirement, error) {
	req := Requirement{Raw: raw, Origin: origin}

	s := strings.TrimSpace(raw)
	if s == "" {
		return req, &RequirementError{Raw: raw, Origin: origin, Reason: fmt.Errorf("empty requirement")}
	}

	// Split off the environment marker first.
	if i := strings.Index(s, ";"); i >= 0 {
		req.Marker = strings.TrimSpace(s[i+1:])
		s = strings.TrimSpace(s[:i])
		if req.Marker == "" {
			return req, &RequirementError{Raw: raw, Origin: origin, Reason: fmt.Errorf("empty marker after ';'")}
		}
	}

	m := namePattern.FindString(s)
	if m == "" {
		return req, &RequirementError{Raw: raw, Origin: origin, Reason: fmt.Errorf("missing package name")}
	}
	req.Name = m
	s = strings.TrimSpace(s[len(m):])

	// Optional extras: [a,b].
	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return req, &RequirementError{Raw: raw, Origin: origin, Reason: fmt.Errorf("unterminated extras")}
		}
		for _, extra := range strings.Split(s[1:end], ",") {
			extra = strings.TrimSpace(strings.ToLower(extra))
			if extra == "" {
				return req, &RequirementError{Raw: raw, Origin: origin, Reason: fmt.Errorf("empty extra name")}
			}
			req.Extras = append(req.Extras, extra)
		}
		s = strings.TrimSpace(s[end+1:])
	}

	// Remaining text is the specifier set, optionally parenthesized.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s != "" {
		set, err := pep440.ParseSpecifierSet(s)
		if err != nil {
			return req, &RequirementError{Raw: raw, Origin: origin, Reason: err}
		}
		req.Specifiers = set
	}

	return req, nil
}

// ParseRequirements parses a list of declarations, collecting errors
// instead of stopping at the first invalid entry.
func ParseRequirements(raws []string, origin string) ([]Requirement, []error) {
	var (
		reqs []Requirement
		errs []error
	)
	for _, raw := range raws {
		req, err := ParseRequirement(raw, origin)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, errs
}

// CanonicalName returns the normalized form of the requirement's name.
func (r Requirement) CanonicalName() string {
	return CanonicalName(r.Name)
}

// IsSelfReference reports whether the requirement names the project
// itself, the form used by groups that compose other groups via extras.
func (r Requirement) IsSelfReference(projectName string) bool {
	return r.CanonicalName() == CanonicalName(projectName)
}

// Requirements parses every dependency declaration in the manifest:
// build requirements, base dependencies and each optional group.
// Parse failures are collected per declaration.
func (m *Manifest) Requirements() ([]Requirement, []error) {
	var (
		all  []Requirement
		errs []error
	)

	reqs, es := ParseRequirements(m.Build.Requires, "build.requires")
	all, errs = append(all, reqs...), append(errs, es...)

	reqs, es = ParseRequirements(m.Project.Dependencies, "dependencies")
	all, errs = append(all, reqs...), append(errs, es...)

	for _, group := range m.GroupNames() {
		reqs, es = ParseRequirements(m.Project.Groups[group], "groups."+group)
		all, errs = append(all, reqs...), append(errs, es...)
	}

	return all, errs
}
