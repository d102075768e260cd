// Package manifest defines the packaging manifest Packwright validates
// and its TOML parser.
//
// A manifest (packwright.toml by convention) declares the build backend,
// project metadata with required and optional dependency groups, the
// source package inclusion list with an optional dynamic version file,
// lint rule selection with per-path exceptions, and test-runner options
// with warning filters.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the conventional manifest file name.
const DefaultFileName = "packwright.toml"

// Manifest is a parsed packaging manifest.
type Manifest struct {
	Build    BuildSystem `toml:"build"`
	Project  Project     `toml:"project"`
	Packages Packages    `toml:"packages"`
	Lint     *LintTable  `toml:"lint"`
	Test     *TestTable  `toml:"test"`

	// Path is the file the manifest was loaded from, empty for Parse.
	Path string `toml:"-"`
}

// BuildSystem declares how the project is built into a distribution.
type BuildSystem struct {
	// Backend is the build backend entry point.
	Backend string `toml:"backend"`
	// Requires lists build-time requirements, same grammar as runtime
	// dependencies.
	Requires []string `toml:"requires"`
}

// Project holds the core project metadata.
type Project struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Readme      string `toml:"readme"`
	License     string `toml:"license"`

	// Runtime constrains the host runtime version, e.g. ">=3.10,<3.14".
	Runtime string `toml:"runtime"`

	// Version is the static version. Mutually exclusive with listing
	// "version" in Dynamic and configuring packages.version-file.
	Version string `toml:"version"`

	// Dynamic names metadata fields resolved at build time.
	Dynamic []string `toml:"dynamic"`

	// Dependencies are the required runtime requirements.
	Dependencies []string `toml:"dependencies"`

	// Groups are the optional dependency groups (docs, lint, test, ...).
	// A group may include the project's own extras to compose groups.
	Groups map[string][]string `toml:"groups"`
}

// Packages describes the source layout contract.
type Packages struct {
	// Include lists importable package paths, dotted form.
	Include []string `toml:"include"`
	// VersionFile points at the file holding the version string when
	// the version is dynamic.
	VersionFile string `toml:"version-file"`
}

// LintTable selects lint rules and per-path exceptions.
type LintTable struct {
	// Select enables rule codes or code prefixes ("MD", "MM01").
	// Empty means all registered rules.
	Select []string `toml:"select"`
	// Ignore disables rule codes or code prefixes.
	Ignore []string `toml:"ignore"`
	// Severity overrides the default severity per rule code.
	Severity map[string]string `toml:"severity"`
	// PerPathIgnores maps path globs to rule codes ignored beneath them.
	PerPathIgnores map[string][]string `toml:"per-path-ignores"`
}

// TestTable configures the test-runner invocation.
type TestTable struct {
	// Addopts are flags always passed to the runner.
	Addopts []string `toml:"addopts"`
	// Markers registers test markers, "name: description" form.
	Markers []string `toml:"markers"`
	// Filterwarnings are warning filters, "action:message:category:module:line".
	Filterwarnings []string `toml:"filterwarnings"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse parses manifest content. Unknown keys are rejected so typos in
// table or key names surface at load time rather than being silently
// ignored.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&m); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, &ParseError{Message: "unknown manifest keys", Detail: strict.String()}
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, &ParseError{Message: derr.Error(), Line: row, Column: col}
		}
		return nil, &ParseError{Message: err.Error()}
	}

	if m.Project.Name == "" {
		return nil, &ParseError{Message: "project.name is required"}
	}

	return &m, nil
}

// GroupNames returns the optional dependency group names, sorted.
func (m *Manifest) GroupNames() []string {
	names := make([]string, 0, len(m.Project.Groups))
	for name := range m.Project.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDynamic reports whether the named metadata field is declared dynamic.
func (m *Manifest) IsDynamic(field string) bool {
	for _, f := range m.Project.Dynamic {
		if f == field {
			return true
		}
	}
	return false
}
