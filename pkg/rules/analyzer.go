package rules

import "sort"

// Analyzer runs registered rules over a project context.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates an analyzer. A nil config runs every rule at its
// default severity.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// Analyze runs every enabled rule and returns the surviving
// diagnostics, sorted by rule ID then path then message.
func (a *Analyzer) Analyze(ctx *Context) []Diagnostic {
	var diagnostics []Diagnostic

	for _, rule := range GetAll() {
		if !a.config.Enabled(rule.ID) {
			continue
		}
		for _, diag := range rule.Check(ctx) {
			if a.config.IgnoredForPath(diag.RuleID, diag.Path) {
				continue
			}
			diag.Severity = a.config.GetSeverity(diag.RuleID, diag.Severity)
			diagnostics = append(diagnostics, diag)
		}
	}

	sort.Slice(diagnostics, func(i, j int) bool {
		if diagnostics[i].RuleID != diagnostics[j].RuleID {
			return diagnostics[i].RuleID < diagnostics[j].RuleID
		}
		if diagnostics[i].Path != diagnostics[j].Path {
			return diagnostics[i].Path < diagnostics[j].Path
		}
		return diagnostics[i].Message < diagnostics[j].Message
	})
	return diagnostics
}

// CountBySeverity tallies diagnostics per severity.
func CountBySeverity(diagnostics []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range diagnostics {
		counts[d.Severity]++
	}
	return counts
}

// HasErrors reports whether any diagnostic is at error severity.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
