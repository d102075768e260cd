// Package state provides local state for Packwright using SQLite.
// It holds the package index cache (known releases per package, used
// for index-backed resolution) and the history of check/lint/doctor
// runs.
package state

import "time"

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded invocation of a checking command.
type Run struct {
	ID           string
	Command      string // check, lint, doctor
	ManifestPath string
	Status       RunStatus
	Findings     int
	Errors       int
	StartedAt    time.Time
	CompletedAt  *time.Time
	Error        string
}

// Finding is one diagnostic recorded for a run.
type Finding struct {
	ID       string
	RunID    string
	RuleID   string
	Severity string
	Message  string
	Path     string
}

// PackageInfo summarizes one indexed package.
type PackageInfo struct {
	Name      string
	Releases  int
	UpdatedAt time.Time
}

// Store is the persistence interface for Packwright state.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	// Package index.
	ImportReleases(name string, versions []string) error
	ReleaseStrings(name string) ([]string, error)
	ListPackages() ([]PackageInfo, error)
	ClearIndex() error

	// Run history.
	CreateRun(command, manifestPath string) (*Run, error)
	CompleteRun(id string, status RunStatus, findings, errCount int, errMsg string) error
	RecordFindings(runID string, findings []Finding) error
	ListRuns(limit int) ([]*Run, error)
	FindingsForRun(runID string) ([]Finding, error)
}

// Ensure SQLiteStore implements the Store interface.
var _ Store = (*SQLiteStore)(nil)
