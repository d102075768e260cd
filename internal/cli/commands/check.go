package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/layout"
	"github.com/packwright-labs/packwright/internal/resolver"
	"github.com/packwright-labs/packwright/internal/state"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format  string // Output format: text, markdown, json
	Watch   bool   // Re-run on manifest changes
	NoIndex bool   // Skip the local package index
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the manifest against its source tree",
		Long: `Verify that the manifest describes a consistent, installable project.

Three properties are checked:
  - Dependency constraints are simultaneously satisfiable, across the
    base dependencies and every dependency group.
  - Every declared package maps to an existing directory with an
    importable dotted name.
  - The version source is present: either a static version or a
    readable, parseable version file.

When the local package index has releases for a package, constraints are
additionally checked against known releases.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check the project manifest
  packwright check

  # Re-check whenever the manifest changes
  packwright check --watch

  # Machine-readable report
  packwright check --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run checks when the manifest changes")
	cmd.Flags().BoolVar(&opts.NoIndex, "no-index", false, "Do not consult the local package index")

	return cmd
}

// CheckOutput is the JSON output for the check command.
type CheckOutput struct {
	Manifest string         `json:"manifest"`
	OK       bool           `json:"ok"`
	Packages []CheckPackage `json:"packages"`
	Layout   []string       `json:"layout_problems,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
}

// CheckPackage is one dependency's check result.
type CheckPackage struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint"`
	OK         bool   `json:"ok"`
	Reason     string `json:"reason,omitempty"`
	Releases   int    `json:"known_releases,omitempty"`
	Best       string `json:"best_release,omitempty"`
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if opts.Watch {
		return watchCheck(cmd.Context(), cmdCtx, r, opts)
	}
	return checkOnce(cmd.Context(), cmdCtx, r, opts)
}

func checkOnce(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, opts *CheckOptions) error {
	run := cmdCtx.StartRun("check")

	out, err := executeCheck(ctx, cmdCtx, opts)
	if err != nil {
		cmdCtx.FinishRun(run, nil, 1, err.Error())
		return err
	}

	findings := checkFindings(out)
	errMsg := ""
	if !out.OK {
		errMsg = "check failed"
	}
	cmdCtx.FinishRun(run, findings, len(out.Errors), errMsg)

	if err := renderCheck(r, out); err != nil {
		return err
	}
	if !out.OK {
		return fmt.Errorf("manifest check failed")
	}
	return nil
}

func executeCheck(ctx context.Context, cmdCtx *CommandContext, opts *CheckOptions) (*CheckOutput, error) {
	m, err := cmdCtx.LoadManifest()
	if err != nil {
		return nil, err
	}

	cfg := resolver.Config{
		Logger:      cmdCtx.Logger,
		Concurrency: cmdCtx.Cfg.Concurrency,
	}
	if !opts.NoIndex && cmdCtx.Store != nil {
		cfg.Index = cmdCtx.Store
	}
	res, err := resolver.New(cfg).Resolve(ctx, m)
	if err != nil {
		return nil, err
	}

	report, err := layout.Verify(m, cmdCtx.Cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}

	out := &CheckOutput{
		Manifest: cmdCtx.Cfg.ManifestPath,
		Layout:   report.Problems(),
	}
	for _, pkg := range res.Packages {
		out.Packages = append(out.Packages, CheckPackage{
			Name:       pkg.Name,
			Constraint: pkg.Merged.String(),
			OK:         pkg.Satisfiable,
			Reason:     pkg.Reason,
			Releases:   maxInt(pkg.KnownReleases, 0),
			Best:       pkg.BestRelease,
		})
	}
	if len(res.Cycle) > 0 {
		out.Errors = append(out.Errors, "recursive group inclusion: "+joinCycle(res.Cycle))
	}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, e.Error())
	}
	out.OK = res.OK() && report.OK() && len(out.Errors) == 0

	return out, nil
}

func checkFindings(out *CheckOutput) []state.Finding {
	var findings []state.Finding
	for _, pkg := range out.Packages {
		if pkg.OK {
			continue
		}
		findings = append(findings, state.Finding{
			RuleID:   "resolve",
			Severity: "error",
			Message:  pkg.Reason,
		})
	}
	for _, problem := range out.Layout {
		findings = append(findings, state.Finding{
			RuleID:   "layout",
			Severity: "error",
			Message:  problem,
		})
	}
	return findings
}

func renderCheck(r *output.Renderer, out *CheckOutput) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	styles := r.Styles()

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Package", "Constraint", "Status", "Detail"})
	for _, pkg := range out.Packages {
		status := styles.StatusSuccess.String()
		detail := pkg.Best
		if pkg.Releases > 0 && pkg.Best != "" {
			detail = fmt.Sprintf("%s (%d releases indexed)", pkg.Best, pkg.Releases)
		}
		if !pkg.OK {
			status = styles.StatusFailed.String()
			detail = pkg.Reason
		}
		constraint := pkg.Constraint
		if constraint == "" {
			constraint = "*"
		}
		t.AppendRow(table.Row{pkg.Name, constraint, status, detail})
	}
	if len(out.Packages) > 0 {
		t.Render()
	}

	for _, e := range out.Errors {
		r.Error(e)
	}
	for _, problem := range out.Layout {
		r.Error(problem)
	}

	if out.OK {
		r.Success(fmt.Sprintf("%d dependencies satisfiable, layout verified", len(out.Packages)))
	}
	return nil
}

// watchCheck runs checks, then re-runs them whenever the manifest changes.
func watchCheck(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, opts *CheckOptions) error {
	// First run before watching; failures keep the watcher alive.
	if err := checkOnce(ctx, cmdCtx, r, opts); err != nil {
		r.Error(err.Error())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the manifest's directory: editors replace files on save, which
	// drops a watch placed on the file itself.
	manifestDir := filepath.Dir(cmdCtx.Cfg.ManifestPath)
	if err := watcher.Add(manifestDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", manifestDir, err)
	}

	r.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", cmdCtx.Cfg.ManifestPath))

	manifestName := filepath.Base(cmdCtx.Cfg.ManifestPath)
	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rerun:
			r.Println("")
			r.Muted("Manifest changed, re-checking...")
			if err := checkOnce(ctx, cmdCtx, r, opts); err != nil {
				r.Error(err.Error())
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != manifestName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Debounce bursts of events from a single save.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Error(fmt.Sprintf("watch error: %v", watchErr))
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func joinCycle(cycle []string) string {
	s := ""
	for i, node := range cycle {
		if i > 0 {
			s += " -> "
		}
		s += node
	}
	return s
}
