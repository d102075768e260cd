package config

import (
	"fmt"

	intconfig "github.com/packwright-labs/packwright/internal/config"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ManifestPath == "" {
		return fmt.Errorf("manifest_path is required")
	}

	// Manifest existence is only checked by commands that read it, so that
	// help and init work without one.
	return nil
}

// ValidateManifestExists checks that the configured manifest file exists.
func (c *Config) ValidateManifestExists() error {
	return intconfig.ValidateManifestPath(c.ManifestPath)
}
