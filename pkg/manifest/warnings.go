package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// WarningFilter is a parsed warning-filter entry. The written form is
// "action:message:category:module:line" with trailing empty fields
// omitted, e.g. "ignore::DeprecationWarning:mmkit.mmm.transformers:59".
type WarningFilter struct {
	Action   string
	Message  string
	Category string
	Module   string
	// Line restricts the filter to one source line; 0 matches any.
	Line int
	Raw  string
}

// filterActions are the accepted warning-filter actions.
var filterActions = map[string]bool{
	"error":   true,
	"ignore":  true,
	"always":  true,
	"default": true,
	"module":  true,
	"once":    true,
}

// ParseWarningFilter parses a single warning-filter entry.
func ParseWarningFilter(raw string) (WarningFilter, error) {
	f := WarningFilter{Raw: raw}

	parts := strings.Split(raw, ":")
	if len(parts) > 5 {
		return f, fmt.Errorf("warning filter %q has more than 5 fields", raw)
	}

	f.Action = strings.TrimSpace(parts[0])
	if !filterActions[f.Action] {
		return f, fmt.Errorf("warning filter %q has unknown action %q", raw, f.Action)
	}

	if len(parts) > 1 {
		f.Message = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		f.Category = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		f.Module = strings.TrimSpace(parts[3])
	}
	if len(parts) > 4 && strings.TrimSpace(parts[4]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(parts[4]))
		if err != nil || n < 0 {
			return f, fmt.Errorf("warning filter %q has invalid line number %q", raw, parts[4])
		}
		f.Line = n
	}

	return f, nil
}

// WarningFilters parses every filter entry of the test table.
// Parse failures are collected per entry.
func (m *Manifest) WarningFilters() ([]WarningFilter, []error) {
	if m.Test == nil {
		return nil, nil
	}

	var (
		filters []WarningFilter
		errs    []error
	)
	for _, raw := range m.Test.Filterwarnings {
		f, err := ParseWarningFilter(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		filters = append(filters, f)
	}
	return filters, errs
}

// Marker is a registered test marker: a name with an optional
// description after ":".
type Marker struct {
	Name        string
	Description string
}

// ParseMarker parses a marker registration entry.
func ParseMarker(raw string) Marker {
	name, desc, found := strings.Cut(raw, ":")
	m := Marker{Name: strings.TrimSpace(name)}
	if found {
		m.Description = strings.TrimSpace(desc)
	}
	return m
}

// Markers returns the registered test markers.
func (m *Manifest) Markers() []Marker {
	if m.Test == nil {
		return nil
	}
	markers := make([]Marker, 0, len(m.Test.Markers))
	for _, raw := range m.Test.Markers {
		markers = append(markers, ParseMarker(raw))
	}
	return markers
}
