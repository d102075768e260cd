package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Packwright project",
		Long: `Initialize a new project with a manifest and tool configuration.

This creates:
  - packwright.toml manifest
  - packwright.yaml tool configuration
  - a source package directory with a version file

Use --example to scaffold a manifest demonstrating dependency groups,
lint selection with per-path ignores, and test-runner options.`,
		Example: `  # Initialize in current directory
  packwright init

  # Initialize with a richer example manifest
  packwright init --example

  # Initialize in a new directory
  packwright init my-project --name my-project

  # Force overwrite existing files
  packwright init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			if name == "" {
				abs, err := filepath.Abs(dir)
				if err != nil {
					return err
				}
				name = filepath.Base(abs)
			}

			return runInit(r, dir, name, example, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Scaffold an example manifest with groups, lint, and test tables")
	cmd.Flags().StringVar(&name, "name", "", "Project name (default: directory name)")

	return cmd
}

func runInit(r *output.Renderer, dir, name string, example, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	manifestPath := filepath.Join(dir, "packwright.toml")
	if _, err := os.Stat(manifestPath); err == nil && !force {
		return fmt.Errorf("packwright.toml already exists. Use --force to overwrite")
	}

	pkg := packageNameFor(name)

	manifest := minimalManifest(name, pkg)
	if example {
		manifest = exampleManifest(name, pkg)
	}

	files := map[string]string{
		manifestPath:                           manifest,
		filepath.Join(dir, "packwright.yaml"):  toolConfigTemplate,
		filepath.Join(dir, pkg, "version.txt"): "0.1.0\n",
	}

	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	r.Println("Created:")
	r.Printf("  %s\n", manifestPath)
	r.Printf("  %s\n", filepath.Join(dir, "packwright.yaml"))
	r.Printf("  %s\n", filepath.Join(dir, pkg, "version.txt"))
	r.Println("")
	r.Success("Packwright project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Declare dependencies in packwright.toml")
	r.Println("  2. Run 'packwright check' to verify the manifest")
	r.Println("  3. Run 'packwright lint' to review best practices")

	return nil
}

// packageNameFor derives an importable package name from a project name.
func packageNameFor(name string) string {
	pkg := strings.ToLower(name)
	pkg = strings.ReplaceAll(pkg, "-", "_")
	pkg = strings.ReplaceAll(pkg, ".", "_")
	if pkg == "" {
		pkg = "pkg"
	}
	return pkg
}

func minimalManifest(name, pkg string) string {
	return fmt.Sprintf(`[build]
backend = "flit_core.buildapi"
requires = ["flit_core >=3.9,<4"]

[project]
name = %q
description = ""
runtime = ">=3.10,<3.14"
dynamic = ["version"]
dependencies = []

[packages]
include = [%q]
version-file = %q
`, name, pkg, pkg+"/version.txt")
}

func exampleManifest(name, pkg string) string {
	return fmt.Sprintf(`[build]
backend = "flit_core.buildapi"
requires = ["flit_core >=3.9,<4"]

[project]
name = %q
description = "An example project"
runtime = ">=3.10,<3.14"
dynamic = ["version"]
dependencies = [
    "numpy >=1.26,<3",
    "pandas >=2.0,<3",
]

[project.groups]
docs = ["sphinx >=7,<9"]
lint = ["ruff >=0.6,<1"]
test = ["pytest >=8,<9", "pytest-cov >=5,<7"]
all = [%q]

[packages]
include = [%q]
version-file = %q

[lint]
select = ["MD", "MM", "MS", "MT", "ML"]
ignore = ["MM04"]

[lint.per-path-ignores]
%q = ["MD01"]

[test]
addopts = ["-ra", "--strict-markers"]
markers = ["slow: marks tests as slow"]
filterwarnings = ["error", "ignore::DeprecationWarning"]
`, name, name+"[docs,lint,test]", pkg, pkg+"/version.txt", pkg+"/*")
}

const toolConfigTemplate = `# Packwright tool configuration.
# Values here are overridden by PACKWRIGHT_* environment variables and flags.

# manifest_path: packwright.toml
# state_path: .packwright/state.db
# output: auto
# verbose: false
# concurrency: 4
`
