// Package config holds shared defaults and path helpers used by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default file names.
const (
	DefaultManifestFile = "packwright.toml"
	DefaultStateFile    = ".packwright/state.db"
	ConfigFileName      = "packwright.yaml"
	ConfigFileNameAlt   = "packwright.yml"
)

// Other shared defaults.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultConcurrency = 4
)

// FindManifest returns the path to the manifest in dir, or "" if none exists.
func FindManifest(dir string) string {
	candidate := filepath.Join(dir, DefaultManifestFile)
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		return candidate
	}
	return ""
}

// FindConfigFile returns the path to the tool config file in dir, or "".
// packwright.yaml takes priority over packwright.yml.
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// ValidateManifestPath checks that path points at a readable manifest file.
func ValidateManifestPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("manifest not found: %s\nHint: run 'packwright init' to create one, or use --manifest to point at it", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access manifest %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("manifest path is a directory: %s", path)
	}
	return nil
}
