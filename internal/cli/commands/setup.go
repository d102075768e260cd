// Package commands implements the packwright subcommands.
package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/packwright-labs/packwright/internal/cli/config"
	"github.com/packwright-labs/packwright/internal/cli/output"
	"github.com/packwright-labs/packwright/internal/state"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLiteStore
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an open state store.
// Returns the context and a cleanup function that must be called (typically
// via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    store,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a state
// store. Useful for commands that don't need run history or the index.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// LoadManifest reads and parses the configured manifest.
func (c *CommandContext) LoadManifest() (*manifest.Manifest, error) {
	if err := c.Cfg.ValidateManifestExists(); err != nil {
		return nil, err
	}
	return manifest.Load(c.Cfg.ManifestPath)
}

// StartRun records the start of a command run in the state store.
// Run history is best-effort: failures are logged, never fatal.
func (c *CommandContext) StartRun(command string) *state.Run {
	if c.Store == nil {
		return nil
	}
	run, err := c.Store.CreateRun(command, c.Cfg.ManifestPath)
	if err != nil {
		c.Logger.Warn("failed to record run", "error", err)
		return nil
	}
	return run
}

// FinishRun completes a run record with its outcome.
func (c *CommandContext) FinishRun(run *state.Run, findings []state.Finding, errCount int, errMsg string) {
	if c.Store == nil || run == nil {
		return
	}
	if len(findings) > 0 {
		if err := c.Store.RecordFindings(run.ID, findings); err != nil {
			c.Logger.Warn("failed to record findings", "error", err)
		}
	}
	status := state.RunStatusCompleted
	if errCount > 0 || errMsg != "" {
		status = state.RunStatusFailed
	}
	if err := c.Store.CompleteRun(run.ID, status, len(findings), errCount, errMsg); err != nil {
		c.Logger.Warn("failed to complete run", "error", err)
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	manifestPath := getEnvOrDefault("PACKWRIGHT_MANIFEST_PATH", config.DefaultManifestFile)
	statePath := getEnvOrDefault("PACKWRIGHT_STATE_PATH", config.DefaultStateFile)
	outputFormat := getEnvOrDefault("PACKWRIGHT_OUTPUT", config.DefaultOutput)
	verbose := os.Getenv("PACKWRIGHT_VERBOSE") == "true"
	concurrency := config.DefaultConcurrency
	if v, err := strconv.Atoi(os.Getenv("PACKWRIGHT_CONCURRENCY")); err == nil && v > 0 {
		concurrency = v
	}

	root, _ := os.Getwd()
	return &config.Config{
		ManifestPath: manifestPath,
		StatePath:    statePath,
		OutputFormat: outputFormat,
		Verbose:      verbose,
		Concurrency:  concurrency,
		ProjectRoot:  root,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	// Ensure state directory exists
	if cfg.StatePath != ":memory:" {
		stateDir := filepath.Dir(cfg.StatePath)
		if stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0750); err != nil {
				return nil, err
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
