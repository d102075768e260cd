package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/state"
	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show recorded check, lint, and doctor runs",
		Long: `Show the history of recorded runs.

Without arguments, lists recent runs. With a run ID (a unique prefix is
enough), shows that run's recorded findings.`,
		Example: `  # List recent runs
  packwright runs

  # Show findings for one run
  packwright runs 2f3a...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRun(cmd, args[0])
			}
			return listRuns(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")

	return cmd
}

func listRuns(cmd *cobra.Command, limit int) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	runs, err := cmdCtx.Store.ListRuns(limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runs)
	}

	if len(runs) == 0 {
		r.Muted("No recorded runs yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Command", "Status", "Findings", "Errors", "Started"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			shortID(run.ID),
			run.Command,
			string(run.Status),
			run.Findings,
			run.Errors,
			run.StartedAt.Format(time.RFC3339),
		})
	}
	t.Render()
	return nil
}

func showRun(cmd *cobra.Command, id string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	run, err := cmdCtx.Store.GetRun(id)
	if err != nil {
		return err
	}
	findings, err := cmdCtx.Store.FindingsForRun(run.ID)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(struct {
			Run      *state.Run      `json:"run"`
			Findings []state.Finding `json:"findings"`
		}{Run: run, Findings: findings})
	}

	styles := r.Styles()
	r.Printf("%s %s (%s)\n", styles.Bold.Render(run.Command), run.ID, string(run.Status))
	r.Printf("  Manifest: %s\n", run.ManifestPath)
	r.Printf("  Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	if run.CompletedAt != nil {
		r.Printf("  Finished: %s\n", run.CompletedAt.Format(time.RFC3339))
	}
	if run.Error != "" {
		r.Printf("  Error:    %s\n", run.Error)
	}
	r.Println("")

	if len(findings) == 0 {
		r.Muted("No findings recorded.")
		return nil
	}
	for _, f := range findings {
		r.Printf("  %-7s %s  %s\n", f.Severity, styles.Bold.Render(f.RuleID), f.Message)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
