package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// CreateRun records the start of a checking command.
func (s *SQLiteStore) CreateRun(command, manifestPath string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:           generateID(),
		Command:      command,
		ManifestPath: manifestPath,
		Status:       RunStatusRunning,
		StartedAt:    time.Now().UTC(),
	}

	s.logger.Debug("creating run",
		slog.String("id", run.ID), slog.String("command", command))

	_, err := s.db.Exec(
		`INSERT INTO runs (id, command, manifest_path, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.ManifestPath, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as finished with its finding counts.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, findings, errCount int, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	var errorPtr *string
	if errMsg != "" {
		errorPtr = &errMsg
	}

	result, err := s.db.Exec(
		`UPDATE runs SET status = ?, findings = ?, errors = ?, completed_at = ?, error = ? WHERE id = ?`,
		string(status), findings, errCount, time.Now().UTC(), errorPtr, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// RecordFindings stores the diagnostics of a run.
func (s *SQLiteStore) RecordFindings(runID string, findings []Finding) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range findings {
		if f.ID == "" {
			f.ID = generateID()
		}
		if _, err := tx.Exec(
			`INSERT INTO findings (id, run_id, rule_id, severity, message, path) VALUES (?, ?, ?, ?, ?, ?)`,
			f.ID, runID, f.RuleID, f.Severity, f.Message, f.Path,
		); err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, command, manifest_path, status, findings, errors, started_at, completed_at, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run by ID or by a unique ID prefix, so IDs can be
// copied from the shortened list view.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if id == "" {
		return nil, fmt.Errorf("run id required")
	}

	rows, err := s.db.Query(
		`SELECT id, command, manifest_path, status, findings, errors, started_at, completed_at, error
		 FROM runs WHERE id LIKE ? || '%' LIMIT 2`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("run not found: %s", id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id %s is ambiguous", id)
	}
}

// FindingsForRun returns the stored diagnostics of a run.
func (s *SQLiteStore) FindingsForRun(runID string) ([]Finding, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, rule_id, severity, message, path FROM findings WHERE run_id = ? ORDER BY rule_id, path, message`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.ID, &f.RunID, &f.RuleID, &f.Severity, &f.Message, &f.Path); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

func scanRun(rows *sql.Rows) (*Run, error) {
	run := &Run{}
	var status string
	var completedAt sql.NullTime
	var errMsg sql.NullString

	if err := rows.Scan(&run.ID, &run.Command, &run.ManifestPath, &status, &run.Findings,
		&run.Errors, &run.StartedAt, &completedAt, &errMsg); err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Status = RunStatus(status)
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	return run, nil
}
