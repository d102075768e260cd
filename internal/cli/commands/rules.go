package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/pkg/rules"
	_ "github.com/packwright-labs/packwright/pkg/rules/checks" // register manifest rules
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available manifest lint rules with their documentation.

Rules are organized by group (deps, metadata, structure, testing,
lintcfg). Use --verbose to see the rationale behind each rule.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  packwright rules

  # Show details for a specific rule
  packwright rules MD01

  # List rules in the deps group
  packwright rules --group deps

  # Show full documentation
  packwright rules -V

  # Output as JSON
  packwright rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// RuleInfo is the serializable view of a registered rule.
type RuleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Rationale   string `json:"rationale,omitempty"`
}

func toRuleInfo(def rules.RuleDef) RuleInfo {
	return RuleInfo{
		ID:          def.ID,
		Name:        def.Name,
		Group:       def.Group,
		Description: def.Description,
		Severity:    def.Severity.String(),
		Rationale:   def.Rationale,
	}
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	defs := rules.GetAll()
	if opts.Group != "" {
		defs = rules.GetByGroup(opts.Group)
	}

	infos := make([]RuleInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, toRuleInfo(def))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(struct {
			Rules []RuleInfo `json:"rules"`
			Count int        `json:"count"`
		}{Rules: infos, Count: len(infos)})
	case output.ModeMarkdown:
		return listRulesMarkdown(r, infos, opts.Verbose)
	default:
		return listRulesText(r, infos, opts.Verbose)
	}
}

func listRulesText(r *output.Renderer, infos []RuleInfo, verbose bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Manifest Rules (%d)", len(infos))))
	r.Println("")

	currentGroup := ""
	for _, info := range infos {
		if info.Group != currentGroup {
			currentGroup = info.Group
			r.Println(styles.Bold.Render("  " + capitalizeFirst(currentGroup)))
		}

		severityStyle := styleForSeverityName(styles, info.Severity)
		r.Printf("    %s  %s - %s\n",
			styles.Muted.Render(info.ID),
			info.Name,
			severityStyle.Render(info.Severity),
		)

		if verbose {
			r.Println(styles.Muted.Render("        " + info.Description))
			if info.Rationale != "" {
				r.Println(styles.Muted.Render("        Why: " + truncateOneLine(info.Rationale, 80)))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'packwright rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

func listRulesMarkdown(r *output.Renderer, infos []RuleInfo, verbose bool) error {
	r.Println("# Manifest Rules")
	r.Println("")

	currentGroup := ""
	for _, info := range infos {
		if info.Group != currentGroup {
			currentGroup = info.Group
			r.Println("## " + capitalizeFirst(currentGroup))
			r.Println("")
		}

		r.Printf("- **%s** - %s (`%s`)\n", info.ID, info.Name, info.Severity)
		if verbose {
			r.Println("  " + info.Description)
			if info.Rationale != "" {
				r.Println("  > " + info.Rationale)
			}
		}
	}

	r.Println("")
	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	def, ok := rules.GetByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := toRuleInfo(def)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		r.Printf("# %s - %s\n\n", info.ID, info.Name)
		r.Printf("**Group:** %s | **Severity:** `%s`\n\n", info.Group, info.Severity)
		r.Println(info.Description)
		if info.Rationale != "" {
			r.Println("")
			r.Println("## Why This Matters")
			r.Println("")
			r.Println(info.Rationale)
		}
		r.Println("")
		return nil
	default:
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", info.ID, info.Name)))
		r.Println("")
		r.Printf("  %s: %s\n", styles.Bold.Render("Group"), info.Group)
		r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), info.Severity)
		r.Println("")
		r.Println(styles.Bold.Render("Description"))
		r.Println("  " + info.Description)
		r.Println("")
		if info.Rationale != "" {
			r.Println(styles.Bold.Render("Why This Matters"))
			r.Println("  " + info.Rationale)
			r.Println("")
		}
		return nil
	}
}

// Helper functions

func styleForSeverityName(styles *output.Styles, severity string) lipgloss.Style {
	switch severity {
	case "error":
		return styles.Error
	case "warning":
		return styles.Warning
	case "info":
		return styles.Info
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
