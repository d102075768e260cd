// Package layout verifies a manifest's source-layout contract against
// the project directory: every listed package must exist at its
// declared path, and the dynamic version file must be present and hold
// a parseable version.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/pep440"
)

// PackageStatus is the verification result for one inclusion-list entry.
type PackageStatus struct {
	// Name is the dotted package path as declared, e.g. "mmkit.mmm".
	Name string
	// Dir is the directory the name maps to, relative to the root.
	Dir string
	// Exists reports whether Dir exists as a directory.
	Exists bool
	// Importable reports whether every dotted segment is a valid
	// importable identifier.
	Importable bool
}

// VersionStatus is the verification result for the dynamic version file.
type VersionStatus struct {
	// Configured reports whether packages.version-file is set.
	Configured bool
	// DeclaredDynamic reports whether "version" appears in project.dynamic.
	DeclaredDynamic bool
	// Static is project.version when set directly.
	Static string

	// Path is the version file relative to the root.
	Path string
	// Exists reports whether the file exists.
	Exists bool
	// Raw is the file content, trimmed.
	Raw string
	// Version is the parsed version when ParseErr is nil.
	Version pep440.Version
	// ParseErr is set when the content is not a valid version.
	ParseErr error
}

// FileStatus records whether a referenced metadata file exists.
type FileStatus struct {
	Path   string
	Exists bool
}

// Report is the full layout verification result.
type Report struct {
	Root     string
	Packages []PackageStatus
	Version  VersionStatus
	Readme   *FileStatus
	License  *FileStatus
	// BackendDeclared reports whether build-system.backend is set.
	BackendDeclared bool
}

// OK reports whether the layout satisfies the manifest contract:
// a declared build backend, every package present with an importable
// name, and a consistent, parseable version source.
func (r *Report) OK() bool {
	if !r.BackendDeclared {
		return false
	}
	for _, p := range r.Packages {
		if !p.Exists || !p.Importable {
			return false
		}
	}
	v := r.Version
	if v.Configured {
		if !v.Exists || v.ParseErr != nil {
			return false
		}
	}
	if v.Configured != v.DeclaredDynamic {
		return false
	}
	if !v.Configured && v.Static == "" {
		return false
	}
	return true
}

// Problems returns human-readable descriptions of every failed check.
func (r *Report) Problems() []string {
	var problems []string
	if !r.BackendDeclared {
		problems = append(problems, "build-system.backend is not set")
	}
	for _, p := range r.Packages {
		if !p.Importable {
			problems = append(problems, fmt.Sprintf("package %q is not an importable name", p.Name))
		}
		if !p.Exists {
			problems = append(problems, fmt.Sprintf("package %q not found at %s", p.Name, p.Dir))
		}
	}

	v := r.Version
	switch {
	case v.Configured && !v.DeclaredDynamic:
		problems = append(problems, "packages.version-file is set but \"version\" is not declared dynamic")
	case v.DeclaredDynamic && !v.Configured:
		problems = append(problems, "\"version\" is declared dynamic but packages.version-file is not set")
	}
	if v.Configured {
		if !v.Exists {
			problems = append(problems, fmt.Sprintf("version file %s not found", v.Path))
		} else if v.ParseErr != nil {
			problems = append(problems, fmt.Sprintf("version file %s: %v", v.Path, v.ParseErr))
		}
	} else if !v.DeclaredDynamic && v.Static == "" {
		problems = append(problems, "no version: set project.version or declare it dynamic with a version file")
	}

	if r.Readme != nil && !r.Readme.Exists {
		problems = append(problems, fmt.Sprintf("readme %s not found", r.Readme.Path))
	}
	if r.License != nil && !r.License.Exists {
		problems = append(problems, fmt.Sprintf("license file %s not found", r.License.Path))
	}
	return problems
}

// Verify checks the manifest's layout contract against root. The only
// error returned is a filesystem failure on the root itself; per-entry
// findings land in the report.
func Verify(m *manifest.Manifest, root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	report := &Report{
		Root:            root,
		BackendDeclared: m.Build.Backend != "",
	}

	for _, name := range m.Packages.Include {
		status := PackageStatus{
			Name:       name,
			Dir:        filepath.FromSlash(strings.ReplaceAll(name, ".", "/")),
			Importable: Importable(name),
		}
		if fi, err := os.Stat(filepath.Join(root, status.Dir)); err == nil && fi.IsDir() {
			status.Exists = true
		}
		report.Packages = append(report.Packages, status)
	}

	report.Version = verifyVersion(m, root)

	if m.Project.Readme != "" {
		report.Readme = statFile(root, m.Project.Readme)
	}
	if m.Project.License != "" {
		report.License = statFile(root, m.Project.License)
	}

	return report, nil
}

func verifyVersion(m *manifest.Manifest, root string) VersionStatus {
	status := VersionStatus{
		Configured:      m.Packages.VersionFile != "",
		DeclaredDynamic: m.IsDynamic("version"),
		Static:          m.Project.Version,
		Path:            m.Packages.VersionFile,
	}
	if !status.Configured {
		return status
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(status.Path)))
	if err != nil {
		return status
	}
	status.Exists = true
	status.Raw = strings.TrimSpace(string(data))

	v, err := pep440.Parse(status.Raw)
	if err != nil {
		status.ParseErr = err
		return status
	}
	status.Version = v
	return status
}

func statFile(root, rel string) *FileStatus {
	status := &FileStatus{Path: rel}
	if fi, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err == nil && fi.Mode().IsRegular() {
		status.Exists = true
	}
	return status
}

// Importable reports whether a dotted package path is made of valid
// importable identifiers: letters, digits and underscores, not
// starting with a digit.
func Importable(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !importableSegment(segment) {
			return false
		}
	}
	return true
}

func importableSegment(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
