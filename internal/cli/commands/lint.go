package commands

import (
	"fmt"
	"strings"

	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/layout"
	"github.com/packwright-labs/packwright/internal/resolver"
	"github.com/packwright-labs/packwright/internal/state"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/rules"
	_ "github.com/packwright-labs/packwright/pkg/rules/checks" // register manifest rules
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Rules    []string // Run only specific rules
	Severity string   // Minimum severity: error, warning, info, hint
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run lint rules against the manifest",
		Long: `Analyze the manifest for potential issues.

Rule selection and per-path exceptions come from the manifest's [lint]
table; flags override it. Rule IDs are grouped by prefix: MD (deps),
MM (metadata), MS (structure), MT (testing), ML (lint config). A bare
prefix selects the whole group.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the manifest
  packwright lint

  # Disable specific rules
  packwright lint --disable MD01,MM04

  # Run a single rule
  packwright lint --rule MS01

  # Only report errors
  packwright lint --severity error

  # Output as JSON
  packwright lint --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")

	return cmd
}

// LintOutput is the JSON output for the lint command.
type LintOutput struct {
	Manifest    string           `json:"manifest"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
	Summary     LintSummary      `json:"summary"`
}

// LintDiagnostic is one reported finding.
type LintDiagnostic struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

// LintSummary aggregates diagnostic counts.
type LintSummary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Hints    int `json:"hints"`
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	run := cmdCtx.StartRun("lint")

	m, err := cmdCtx.LoadManifest()
	if err != nil {
		cmdCtx.FinishRun(run, nil, 1, err.Error())
		return err
	}

	// Resolution and layout feed the rules that need them; their own
	// failures surface as diagnostics, not command errors.
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

	analyzer := rules.NewAnalyzer(buildLintConfig(m, opts))
	diags := analyzer.Analyze(&rules.Context{
		Manifest:   m,
		Root:       cmdCtx.Cfg.ProjectRoot,
		Layout:     report,
		Resolution: res,
	})
	diags = filterBySeverity(diags, opts.Severity)

	cmdCtx.FinishRun(run, diagnosticsToFindings(diags), rules.CountBySeverity(diags)[rules.SeverityError], "")

	hasIssues := renderLintResults(r, cmdCtx.Cfg.ManifestPath, diags)
	if hasIssues {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// buildLintConfig layers CLI flags over the manifest's [lint] table.
func buildLintConfig(m *manifest.Manifest, opts *LintOptions) *rules.Config {
	cfg := rules.ConfigFromManifest(m)

	// CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		cfg.Ignore = append(cfg.Ignore, strings.TrimSpace(id))
	}

	// If --rule specified, run only those rules
	if len(opts.Rules) > 0 {
		cfg.Select = nil
		for _, id := range opts.Rules {
			cfg.Select = append(cfg.Select, strings.TrimSpace(id))
		}
	}

	return cfg
}

func filterBySeverity(diags []rules.Diagnostic, severityThreshold string) []rules.Diagnostic {
	threshold, ok := rules.ParseSeverity(severityThreshold)
	if !ok {
		threshold = rules.SeverityHint
	}

	var filtered []rules.Diagnostic
	for _, d := range diags {
		if d.Severity <= threshold {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func diagnosticsToFindings(diags []rules.Diagnostic) []state.Finding {
	findings := make([]state.Finding, 0, len(diags))
	for _, d := range diags {
		findings = append(findings, state.Finding{
			RuleID:   d.RuleID,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Path:     d.Path,
		})
	}
	return findings
}

func renderLintResults(r *output.Renderer, manifestPath string, diags []rules.Diagnostic) bool {
	if len(diags) == 0 {
		r.Success("No lint issues found")
		return false
	}

	summary := LintSummary{Total: len(diags)}
	counts := rules.CountBySeverity(diags)
	summary.Errors = counts[rules.SeverityError]
	summary.Warnings = counts[rules.SeverityWarning]
	summary.Info = counts[rules.SeverityInfo]
	summary.Hints = counts[rules.SeverityHint]

	if r.EffectiveMode() == output.ModeJSON {
		jsonOutput := LintOutput{
			Manifest: manifestPath,
			Summary:  summary,
		}
		for _, d := range diags {
			jsonOutput.Diagnostics = append(jsonOutput.Diagnostics, LintDiagnostic{
				RuleID:   d.RuleID,
				Severity: d.Severity.String(),
				Message:  d.Message,
				Path:     d.Path,
			})
		}
		_ = r.JSON(jsonOutput)
		return true
	}

	r.Println(r.Styles().Path.Render(manifestPath))
	for _, d := range diags {
		r.Printf("  %s  %s  %s\n",
			severityStyle(r, d.Severity),
			r.Styles().Bold.Render(d.RuleID),
			d.Message,
		)
	}
	r.Println("")

	summaryParts := []string{fmt.Sprintf("%d issues", summary.Total)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s\n", strings.Join(summaryParts, ", "))

	return true
}

func severityStyle(r *output.Renderer, sev rules.Severity) string {
	switch sev {
	case rules.SeverityError:
		return r.Styles().Error.Render("error  ")
	case rules.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case rules.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case rules.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
