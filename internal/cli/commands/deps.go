package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/dag"
	"github.com/packwright-labs/packwright/internal/resolver"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/spf13/cobra"
)

// DepsOptions holds options for the deps command.
type DepsOptions struct {
	Group  string // Expand a single group (including its includes)
	Tree   bool   // Show the group inclusion tree
	Format string // Output format: text, markdown, json
}

// NewDepsCommand creates the deps command.
func NewDepsCommand() *cobra.Command {
	opts := &DepsOptions{}
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List declared dependencies and groups",
		Long: `List the manifest's dependencies.

Without flags, lists the base dependencies and each group's entries.
--group expands one group transitively, following self-referencing
extras (e.g. a group "all" that includes "[docs,lint,test]").
--tree shows how groups include one another.`,
		Example: `  # List all declared dependencies
  packwright deps

  # Expand the docs group, following includes
  packwright deps --group docs

  # Show the group inclusion tree
  packwright deps --tree

  # Output as JSON
  packwright deps --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeps(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Expand a single dependency group")
	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "Show the group inclusion tree")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DepsOutput is the JSON output for the deps command.
type DepsOutput struct {
	Manifest     string                `json:"manifest"`
	Dependencies []DepEntry            `json:"dependencies"`
	Groups       map[string][]DepEntry `json:"groups,omitempty"`
}

// DepEntry is one declared requirement.
type DepEntry struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
	Origin     string `json:"origin"`
}

func runDeps(cmd *cobra.Command, opts *DepsOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	m, err := cmdCtx.LoadManifest()
	if err != nil {
		return err
	}

	if opts.Tree {
		return renderGroupTree(r, m)
	}
	if opts.Group != "" {
		return renderGroup(r, m, opts.Group)
	}
	return renderAllDeps(r, cmdCtx, m)
}

func toDepEntry(req manifest.Requirement) DepEntry {
	return DepEntry{
		Name:       req.CanonicalName(),
		Constraint: req.Specifiers.String(),
		Origin:     req.Origin,
	}
}

func renderAllDeps(r *output.Renderer, cmdCtx *CommandContext, m *manifest.Manifest) error {
	reqs, errs := m.Requirements()
	for _, err := range errs {
		r.Warning(err.Error())
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := DepsOutput{
			Manifest: cmdCtx.Cfg.ManifestPath,
			Groups:   make(map[string][]DepEntry),
		}
		for _, req := range reqs {
			entry := toDepEntry(req)
			if req.Origin == "dependencies" || req.Origin == "build.requires" {
				out.Dependencies = append(out.Dependencies, entry)
				continue
			}
			group := strings.TrimPrefix(req.Origin, "groups.")
			out.Groups[group] = append(out.Groups[group], entry)
		}
		return r.JSON(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Package", "Constraint", "Origin"})
	for _, req := range reqs {
		constraint := req.Specifiers.String()
		if constraint == "" {
			constraint = "*"
		}
		t.AppendRow(table.Row{req.CanonicalName(), constraint, req.Origin})
	}
	t.Render()
	r.Printf("(%d requirements)\n", len(reqs))
	return nil
}

func renderGroup(r *output.Renderer, m *manifest.Manifest, group string) error {
	if _, ok := m.Project.Groups[group]; !ok {
		return fmt.Errorf("unknown group %q (have: %s)", group, strings.Join(m.GroupNames(), ", "))
	}

	reqs, errs := resolver.ExpandGroup(m, group)
	if len(errs) > 0 {
		for _, err := range errs {
			r.Warning(err.Error())
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := struct {
			Group        string     `json:"group"`
			Dependencies []DepEntry `json:"dependencies"`
		}{Group: group}
		for _, req := range reqs {
			out.Dependencies = append(out.Dependencies, toDepEntry(req))
		}
		return r.JSON(out)
	}

	r.Println(r.Styles().Header2.Render(fmt.Sprintf("Group %q (expanded)", group)))
	for _, req := range reqs {
		constraint := req.Specifiers.String()
		if constraint == "" {
			constraint = "*"
		}
		r.Printf("  %-24s %-20s %s\n", req.CanonicalName(), constraint, r.Styles().Muted.Render(req.Origin))
	}
	r.Printf("(%d requirements)\n", len(reqs))
	return nil
}

func renderGroupTree(r *output.Renderer, m *manifest.Manifest) error {
	graph, errs := resolver.GroupGraph(m)
	for _, err := range errs {
		r.Warning(err.Error())
	}

	if cycle, path := graph.HasCycle(); cycle {
		return fmt.Errorf("recursive group inclusion: %s", strings.Join(path, " -> "))
	}

	// Edges in the group graph point included -> including, so a group's
	// direct includes are its parents, and top-level groups are those
	// nothing else includes.
	if r.EffectiveMode() == output.ModeJSON {
		out := make(map[string][]string)
		for _, name := range m.GroupNames() {
			includes := append([]string(nil), graph.GetParents(name)...)
			sort.Strings(includes)
			out[name] = includes
		}
		return r.JSON(out)
	}

	var tops []string
	for _, name := range m.GroupNames() {
		if len(graph.GetChildren(name)) == 0 {
			tops = append(tops, name)
		}
	}
	sort.Strings(tops)

	r.Println(r.Styles().Header2.Render("Group inclusion tree"))
	for _, top := range tops {
		printGroupTree(r, graph, top, 0)
	}
	return nil
}

func printGroupTree(r *output.Renderer, graph *dag.Graph, node string, depth int) {
	indent := strings.Repeat("  ", depth)
	marker := ""
	if depth > 0 {
		marker = "└─ "
	}
	r.Printf("%s%s%s\n", indent, marker, node)

	includes := append([]string(nil), graph.GetParents(node)...)
	sort.Strings(includes)
	for _, inc := range includes {
		printGroupTree(r, graph, inc, depth+1)
	}
}
