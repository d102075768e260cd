package rules

import (
	"path"
	"strings"

	"github.com/packwright-labs/packwright/pkg/manifest"
)

// Config controls which rules run and at what severity. Select and
// Ignore entries are rule codes or code prefixes ("MD03", "MD"); an
// ignore wins over a select.
type Config struct {
	// Select enables rules; empty enables all registered rules.
	Select []string

	// Ignore disables rules.
	Ignore []string

	// SeverityOverrides changes the default severity of rules.
	SeverityOverrides map[string]Severity

	// PerPathIgnores maps path globs to codes ignored for diagnostics
	// beneath them.
	PerPathIgnores map[string][]string
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		SeverityOverrides: make(map[string]Severity),
		PerPathIgnores:    make(map[string][]string),
	}
}

// ConfigFromManifest builds a Config from the manifest's lint table.
// Unknown severity names fall back to the rule default; unknown rule
// codes are kept as written (ML01 reports them).
func ConfigFromManifest(m *manifest.Manifest) *Config {
	cfg := NewConfig()
	if m.Lint == nil {
		return cfg
	}

	cfg.Select = append(cfg.Select, m.Lint.Select...)
	cfg.Ignore = append(cfg.Ignore, m.Lint.Ignore...)

	for code, name := range m.Lint.Severity {
		if sev, ok := ParseSeverity(name); ok {
			cfg.SeverityOverrides[code] = sev
		}
	}
	for glob, codes := range m.Lint.PerPathIgnores {
		cfg.PerPathIgnores[glob] = append([]string(nil), codes...)
	}
	return cfg
}

// Enabled returns true if the rule should run.
func (c *Config) Enabled(ruleID string) bool {
	if c == nil {
		return true
	}
	for _, code := range c.Ignore {
		if matchesCode(ruleID, code) {
			return false
		}
	}
	if len(c.Select) == 0 {
		return true
	}
	for _, code := range c.Select {
		if matchesCode(ruleID, code) {
			return true
		}
	}
	return false
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// IgnoredForPath returns true if the rule is ignored for a diagnostic
// at the given project-relative path.
func (c *Config) IgnoredForPath(ruleID, diagPath string) bool {
	if c == nil || diagPath == "" {
		return false
	}
	diagPath = path.Clean(strings.ReplaceAll(diagPath, "\\", "/"))
	for glob, codes := range c.PerPathIgnores {
		if !globMatches(glob, diagPath) {
			continue
		}
		for _, code := range codes {
			if matchesCode(ruleID, code) {
				return true
			}
		}
	}
	return false
}

// matchesCode reports whether a rule ID matches a code or code prefix.
// A prefix only matches at a letter/digit boundary, so "MD" matches
// "MD01" but "MD0" does not match "MD01".
func matchesCode(ruleID, code string) bool {
	if ruleID == code {
		return true
	}
	if !strings.HasPrefix(ruleID, code) {
		return false
	}
	// The remainder must be the numeric part of the ID.
	for _, r := range ruleID[len(code):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return !endsInDigit(code)
}

func endsInDigit(s string) bool {
	if s == "" {
		return false
	}
	r := s[len(s)-1]
	return r >= '0' && r <= '9'
}

// globMatches matches a path against a glob, also matching when the
// glob names a parent directory of the path.
func globMatches(glob, p string) bool {
	glob = path.Clean(strings.ReplaceAll(glob, "\\", "/"))
	if ok, err := path.Match(glob, p); err == nil && ok {
		return true
	}
	// Directory prefix: "mmkit/mmm" covers "mmkit/mmm/transformers.py".
	if strings.HasPrefix(p, glob+"/") {
		return true
	}
	// Glob on a parent segment: "mmkit/*" covers "mmkit/mmm/x.py".
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if ok, err := path.Match(glob, dir); err == nil && ok {
			return true
		}
	}
	return false
}
