package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewIndexCommand creates the index command group.
func NewIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the local package index",
		Long: `Manage the local package index cache.

The index maps package names to their known release versions. When
populated, 'packwright check' verifies that each dependency constraint
matches at least one known release, not just that the constraint set is
internally consistent.`,
	}

	cmd.AddCommand(newIndexImportCommand())
	cmd.AddCommand(newIndexListCommand())
	cmd.AddCommand(newIndexClearCommand())

	return cmd
}

func newIndexImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import release lists from a JSON or YAML file",
		Long: `Import package release lists into the local index.

The file maps package names to release version lists:

  {
    "numpy": ["1.26.4", "2.0.0", "2.1.0"],
    "pandas": ["2.2.0", "2.2.3"]
  }

Files ending in .yaml or .yml are parsed as YAML with the same shape.
Versions that don't parse are rejected per package. Importing a package
replaces its previously indexed releases.`,
		Example: `  packwright index import releases.json
  packwright index import releases.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexImport(cmd, args[0])
		},
	}
}

func newIndexListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List indexed packages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndexList(cmd)
		},
	}
}

func newIndexClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all indexed packages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndexClear(cmd)
		},
	}
}

func runIndexImport(cmd *cobra.Command, path string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	releases, err := parseReleaseFile(path, data)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(releases))
	for name := range releases {
		names = append(names, name)
	}
	sort.Strings(names)

	imported := 0
	for _, name := range names {
		if err := cmdCtx.Store.ImportReleases(name, releases[name]); err != nil {
			return fmt.Errorf("failed to import %s: %w", name, err)
		}
		imported += len(releases[name])
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Imported %d releases for %d packages", imported, len(names)))
	return nil
}

func parseReleaseFile(path string, data []byte) (map[string][]string, error) {
	var releases map[string][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &releases); err != nil {
			return nil, fmt.Errorf("invalid release file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &releases); err != nil {
			return nil, fmt.Errorf("invalid release file %s: %w", path, err)
		}
	}
	return releases, nil
}

func runIndexList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	packages, err := cmdCtx.Store.ListPackages()
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		type indexedPackage struct {
			Name     string `json:"name"`
			Releases int    `json:"releases"`
			Updated  string `json:"updated_at"`
		}
		out := make([]indexedPackage, 0, len(packages))
		for _, pkg := range packages {
			out = append(out, indexedPackage{
				Name:     pkg.Name,
				Releases: pkg.Releases,
				Updated:  pkg.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return r.JSON(out)
	}

	if len(packages) == 0 {
		r.Muted("Index is empty. Populate it with 'packwright index import <file>'.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Package", "Releases", "Updated"})
	for _, pkg := range packages {
		t.AppendRow(table.Row{pkg.Name, pkg.Releases, pkg.UpdatedAt.Format("2006-01-02 15:04:05")})
	}
	t.Render()
	return nil
}

func runIndexClear(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmdCtx.Store.ClearIndex(); err != nil {
		return err
	}
	cmdCtx.Renderer.Success("Index cleared")
	return nil
}
