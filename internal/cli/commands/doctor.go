package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/layout"
	"github.com/packwright-labs/packwright/internal/resolver"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/rules"
	_ "github.com/packwright-labs/packwright/pkg/rules/checks" // register manifest rules
	"github.com/spf13/cobra"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a comprehensive manifest health check",
		Long: `Analyze the project manifest for potential issues and best practices.

The doctor command runs all manifest rules and provides a comprehensive
report including:
- Project summary (dependencies, groups, packages)
- Health checks grouped by category (deps, metadata, structure, testing)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  packwright doctor

  # Output as JSON
  packwright doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ManifestSummary `json:"summary"`
	HealthChecks    []HealthCheck   `json:"health_checks"`
	Score           int             `json:"score"`
	Recommendations []string        `json:"recommendations"`
	IssueCount      int             `json:"issue_count"`
}

// ManifestSummary contains manifest-level statistics.
type ManifestSummary struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Dependencies int    `json:"dependencies"`
	Groups       int    `json:"groups"`
	Packages     int    `json:"packages"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	run := cmdCtx.StartRun("doctor")

	m, err := cmdCtx.LoadManifest()
	if err != nil {
		cmdCtx.FinishRun(run, nil, 1, err.Error())
		return err
	}

	res, err := resolver.New(resolver.Config{
		Logger:      cmdCtx.Logger,
		Concurrency: cmdCtx.Cfg.Concurrency,
	}).Resolve(cmd.Context(), m)
	if err != nil {
		cmdCtx.FinishRun(run, nil, 1, err.Error())
		return err
	}
	report, err := layout.Verify(m, cmdCtx.Cfg.ProjectRoot)
	if err != nil {
		cmdCtx.FinishRun(run, nil, 1, err.Error())
		return err
	}

	// Doctor always runs every rule; the manifest's select/ignore lists
	// apply to lint, not to health reporting.
	analyzer := rules.NewAnalyzer(rules.NewConfig())
	diags := analyzer.Analyze(&rules.Context{
		Manifest:   m,
		Root:       cmdCtx.Cfg.ProjectRoot,
		Layout:     report,
		Resolution: res,
	})

	doctorOutput := buildDoctorOutput(m, report, diags)
	cmdCtx.FinishRun(run, diagnosticsToFindings(diags), rules.CountBySeverity(diags)[rules.SeverityError], "")

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildDoctorOutput(m *manifest.Manifest, report *layout.Report, diags []rules.Diagnostic) *DoctorOutput {
	summary := buildManifestSummary(m, report)

	// Group diagnostics by rule
	diagsByRule := make(map[string][]rules.Diagnostic)
	for _, d := range diags {
		diagsByRule[d.RuleID] = append(diagsByRule[d.RuleID], d)
	}

	// Build health checks from all registered rules
	defs := rules.GetAll()
	healthChecks := make([]HealthCheck, 0, len(defs))

	for _, rule := range defs {
		ruleDiags := diagsByRule[rule.ID]
		status := "pass"
		if len(ruleDiags) > 0 {
			if rule.Severity == rules.SeverityError {
				status = "error"
			} else {
				status = "warn"
			}
		}

		details := make([]string, 0, len(ruleDiags))
		for _, d := range ruleDiags {
			details = append(details, d.Message)
		}

		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     rule.ID,
			Name:       rule.Name,
			Group:      rule.Group,
			Status:     status,
			IssueCount: len(ruleDiags),
			Details:    details,
		})
	}

	// Sort health checks by group then by rule ID
	sort.Slice(healthChecks, func(i, j int) bool {
		if healthChecks[i].Group != healthChecks[j].Group {
			return healthChecks[i].Group < healthChecks[j].Group
		}
		return healthChecks[i].RuleID < healthChecks[j].RuleID
	})

	score := calculateHealthScore(healthChecks, summary.Dependencies)
	recommendations := generateRecommendations(healthChecks)

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    healthChecks,
		Score:           score,
		Recommendations: recommendations,
		IssueCount:      len(diags),
	}
}

func buildManifestSummary(m *manifest.Manifest, report *layout.Report) ManifestSummary {
	version := m.Project.Version
	if version == "" && report != nil && report.Version.Raw != "" {
		version = report.Version.Raw
	}
	if version == "" {
		version = "(unknown)"
	}

	return ManifestSummary{
		Name:         m.Project.Name,
		Version:      version,
		Dependencies: len(m.Project.Dependencies),
		Groups:       len(m.Project.Groups),
		Packages:     len(m.Packages.Include),
	}
}

// calculateHealthScore computes a health score from 0-100.
// Larger dependency surfaces soften the per-issue penalty so one stray
// finding in a big manifest doesn't tank the score.
func calculateHealthScore(checks []HealthCheck, depCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	basePenalty := 5.0
	if depCount > 10 {
		basePenalty = 3.0
	}
	if depCount > 50 {
		basePenalty = 2.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2 // Errors count double
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "MD01":
		return "Add upper bounds to dependency constraints to protect against breaking releases"
	case "MD02":
		return "Remove duplicate dependency declarations"
	case "MD03":
		return "Relax conflicting specifiers so every dependency has a satisfiable range"
	case "MD04":
		return "Drop group entries that restate a base dependency unchanged"
	case "MD05":
		return "Fix the malformed requirement strings reported"
	case "MD06":
		return "Pin or bound build requirements for reproducible builds"
	case "MM01":
		return "Declare an explicit build backend"
	case "MM02":
		return "Declare the version exactly once: static, or dynamic with a version file"
	case "MM03":
		return "Set a satisfiable runtime constraint (requires-python)"
	case "MM04":
		return "Use the canonical form of the project name"
	case "MS01":
		return "Create the missing package directories or fix the include list"
	case "MS02":
		return "Rename packages so each dotted segment is importable"
	case "MS03":
		return "Create the version file the manifest points at"
	case "MT01":
		return "Remove unknown flags from the test runner options"
	case "MT02":
		return "Fix malformed warning filters in the test configuration"
	case "MT03":
		return "Register every marker used in marker expressions"
	case "ML01":
		return "Remove unknown rule codes from the lint configuration"
	case "ML02":
		return "Fix per-path ignore patterns that match no files"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Packwright Manifest Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Project Summary"))
	r.Printf("   %s %s\n", out.Summary.Name, out.Summary.Version)
	r.Printf("   Dependencies: %d | Groups: %d | Packages: %d\n",
		out.Summary.Dependencies, out.Summary.Groups, out.Summary.Packages)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.StatusFailed.String()
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Packwright Manifest Health Report")
	r.Println("")

	r.Println("## Project Summary")
	r.Println("")
	r.Printf("- **Project**: %s %s\n", out.Summary.Name, out.Summary.Version)
	r.Printf("- **Dependencies**: %d\n", out.Summary.Dependencies)
	r.Printf("- **Groups**: %d\n", out.Summary.Groups)
	r.Printf("- **Packages**: %d\n", out.Summary.Packages)
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
