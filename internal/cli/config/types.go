// Package config provides configuration management for the Packwright CLI.
//
// Configuration is layered from four sources, lowest to highest
// precedence: built-in defaults, packwright.yaml, PACKWRIGHT_ environment
// variables, and command-line flags.
package config

import intconfig "github.com/packwright-labs/packwright/internal/config"

// Config holds all CLI configuration options.
type Config struct {
	ManifestPath string `koanf:"manifest_path"`
	StatePath    string `koanf:"state_path"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	NoColor      bool   `koanf:"no_color"`
	Concurrency  int    `koanf:"concurrency"`

	// ProjectRoot is the inferred project root directory. Set by LoadConfig,
	// never read from a config source.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config.
const (
	DefaultManifestFile = intconfig.DefaultManifestFile
	DefaultStateFile    = intconfig.DefaultStateFile
	DefaultOutput       = intconfig.DefaultOutput
	DefaultConcurrency  = intconfig.DefaultConcurrency
)
