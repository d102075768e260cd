package state

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/pep440"
)

// ImportReleases replaces the known release list for a package. The
// name is canonicalized and versions are normalized before storage;
// unparseable versions are rejected.
func (s *SQLiteStore) ImportReleases(name string, versions []string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	canonical := manifest.CanonicalName(name)
	parsed := make([]string, 0, len(versions))
	for _, raw := range versions {
		v, err := pep440.Parse(raw)
		if err != nil {
			return fmt.Errorf("release %q of %s: %w", raw, canonical, err)
		}
		parsed = append(parsed, v.String())
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err := tx.Exec(
		`INSERT INTO packages (name, updated_at) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
		canonical, now,
	); err != nil {
		return fmt.Errorf("failed to upsert package: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM releases WHERE package = ?`, canonical); err != nil {
		return fmt.Errorf("failed to clear releases: %w", err)
	}
	for _, version := range parsed {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO releases (package, version) VALUES (?, ?)`,
			canonical, version,
		); err != nil {
			return fmt.Errorf("failed to insert release: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("imported releases",
		slog.String("package", canonical), slog.Int("count", len(parsed)))
	return nil
}

// ReleaseStrings returns the stored release versions for a package,
// nil when the package is not indexed.
func (s *SQLiteStore) ReleaseStrings(name string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT version FROM releases WHERE package = ? ORDER BY version`,
		manifest.CanonicalName(name),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query releases: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan release: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Releases implements resolver.Index: parsed releases for a package,
// nil when the package is not indexed.
func (s *SQLiteStore) Releases(_ context.Context, name string) ([]pep440.Version, error) {
	raw, err := s.ReleaseStrings(name)
	if err != nil || raw == nil {
		return nil, err
	}

	versions := make([]pep440.Version, 0, len(raw))
	for _, r := range raw {
		v, err := pep440.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("stored release %q of %s: %w", r, name, err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// ListPackages returns all indexed packages with their release counts.
func (s *SQLiteStore) ListPackages() ([]PackageInfo, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT p.name, COUNT(r.version), p.updated_at
		 FROM packages p LEFT JOIN releases r ON r.package = p.name
		 GROUP BY p.name ORDER BY p.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []PackageInfo
	for rows.Next() {
		var info PackageInfo
		if err := rows.Scan(&info.Name, &info.Releases, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, info)
	}
	return packages, rows.Err()
}

// ClearIndex removes every indexed package and release.
func (s *SQLiteStore) ClearIndex() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.Exec(`DELETE FROM packages`); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	return nil
}
