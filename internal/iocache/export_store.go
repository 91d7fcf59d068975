package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
)

// Table names for snapshot export.
const (
	snapshotsTable = "devwrapped_snapshots"
	bucketsTable   = "devwrapped_buckets"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a year.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ExportStoreImpl writes one snapshot per year. Saving a year replaces its rows.
type ExportStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	now     func() time.Time
}

var _ contract.ExportStore = &ExportStoreImpl{} // Compile-time check

// NewExportStore opens the export database and brings its schema up to date.
func NewExportStore(backend schema.DatabaseBackend, connStr string) (contract.ExportStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled export
		return &ExportStoreImpl{backend: backend, now: time.Now}, nil
	}

	db, err := openDatabase(backend, connStr, GetExportDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := migrateToLatest(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ExportStoreImpl{db: db, backend: backend, now: time.Now}, nil
}

// SaveSnapshot implements the ExportStore interface.
func (es *ExportStoreImpl) SaveSnapshot(year int, providers []string, stats *schema.Stats) error {
	if es.db == nil {
		return nil
	}
	if stats == nil {
		return fmt.Errorf("cannot export an empty record for %d", year)
	}

	tx, err := es.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin export transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{bucketsTable, snapshotsTable} {
		query := fmt.Sprintf("DELETE FROM %s WHERE year = %s", quoteTableName(table, es.backend), es.ph(1))
		if _, err := tx.Exec(query, year); err != nil {
			return fmt.Errorf("failed to clear %s for %d: %w", table, year, err)
		}
	}

	snapshotQuery := fmt.Sprintf(`INSERT INTO %s (year, providers, exported_at, total_commits, projects_count, lines_added, lines_deleted, active_days)
		VALUES (%s)`, quoteTableName(snapshotsTable, es.backend), es.placeholders(8))
	if _, err := tx.Exec(snapshotQuery,
		year,
		strings.Join(providers, ","),
		es.now().Unix(),
		stats.TotalCommits,
		stats.ProjectsCount,
		stats.LinesAdded,
		stats.LinesDeleted,
		stats.ActiveDays(),
	); err != nil {
		return fmt.Errorf("failed to insert snapshot for %d: %w", year, err)
	}

	bucketQuery := fmt.Sprintf(`INSERT INTO %s (year, field, bucket_key, value) VALUES (%s)`,
		quoteTableName(bucketsTable, es.backend), es.placeholders(4))
	stmt, err := tx.Prepare(bucketQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare bucket insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range schema.Flatten(stats) {
		if _, err := stmt.Exec(year, row.Field, row.Key, row.Value); err != nil {
			return fmt.Errorf("failed to insert bucket %s/%s: %w", row.Field, row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot for %d: %w", year, err)
	}
	return nil
}

// GetSnapshot implements the ExportStore interface.
func (es *ExportStoreImpl) GetSnapshot(year int) (schema.Snapshot, error) {
	snap := schema.Snapshot{Year: year}
	if es.db == nil {
		return snap, ErrSnapshotNotFound
	}

	query := fmt.Sprintf(`SELECT providers, exported_at, total_commits, projects_count, lines_added, lines_deleted, active_days
		FROM %s WHERE year = %s`, quoteTableName(snapshotsTable, es.backend), es.ph(1))
	var exportedAt int64
	err := es.db.QueryRow(query, year).Scan(
		&snap.Providers,
		&exportedAt,
		&snap.TotalCommits,
		&snap.ProjectsCount,
		&snap.LinesAdded,
		&snap.LinesDeleted,
		&snap.ActiveDays,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("%w for %d", ErrSnapshotNotFound, year)
	}
	if err != nil {
		return snap, fmt.Errorf("failed to read snapshot for %d: %w", year, err)
	}
	snap.ExportedAt = time.Unix(exportedAt, 0)
	return snap, nil
}

// GetStatus implements the ExportStore interface.
func (es *ExportStoreImpl) GetStatus() (schema.ExportStatus, error) {
	status := schema.ExportStatus{
		Backend:    string(es.backend),
		Connected:  es.db != nil,
		TableSizes: make(map[string]int64),
	}
	if es.db == nil {
		return status, nil
	}

	versionQuery := fmt.Sprintf("SELECT version FROM %s LIMIT 1", quoteTableName(migrationsTable, es.backend))
	var version int64
	if err := es.db.QueryRow(versionQuery).Scan(&version); err == nil && version > 0 {
		status.SchemaVersion = uint(version)
	}

	rows, err := es.db.Query(fmt.Sprintf("SELECT year, exported_at FROM %s ORDER BY year", quoteTableName(snapshotsTable, es.backend)))
	if err != nil {
		return status, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var last int64
	for rows.Next() {
		var year int
		var exportedAt int64
		if err := rows.Scan(&year, &exportedAt); err != nil {
			return status, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		status.Years = append(status.Years, year)
		last = max(last, exportedAt)
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	if last > 0 {
		status.LastExport = time.Unix(last, 0)
	}

	for _, table := range []string{snapshotsTable, bucketsTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, es.backend))
		if err := es.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// Close closes the underlying DB connection.
func (es *ExportStoreImpl) Close() error {
	if es.db != nil {
		return es.db.Close()
	}
	return nil
}

func (es *ExportStoreImpl) ph(n int) string {
	return placeholder(es.backend, n)
}

// placeholders returns a comma-separated list of n bind parameters.
func (es *ExportStoreImpl) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = es.ph(i + 1)
	}
	return strings.Join(parts, ", ")
}
