package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/bodacc/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
)

// Store is the SQLite archive. It implements the ledger, the archive and
// the sink ports over one connection.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the interfaces.
var (
	_ driven.EnvelopeLedger = (*Store)(nil)
	_ driven.RecordArchive  = (*Store)(nil)
	_ driven.RecordSink     = (*Store)(nil)
)

// NewStore opens or creates the archive in dataDir.
// If dataDir is empty, defaults to ~/.bodacc/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bodacc", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "archive.db")

	// WAL lets `bodacc records` read while a watch run writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Envelope Ledger ====================

// MarkProcessed records a successfully normalised envelope.
func (s *Store) MarkProcessed(ctx context.Context, env domain.ProcessedEnvelope) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO envelopes (uid, format, issue_identifier, run_id, records)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			format = excluded.format,
			issue_identifier = excluded.issue_identifier,
			run_id = excluded.run_id,
			records = excluded.records,
			processed_at = CURRENT_TIMESTAMP
	`, env.UID, string(env.Format), env.IssueIdentifier, env.RunID, env.Records)
	if err != nil {
		return fmt.Errorf("saving envelope: %w", err)
	}
	return nil
}

// IsProcessed reports whether an envelope uid is in the ledger.
func (s *Store) IsProcessed(ctx context.Context, uid string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM envelopes WHERE uid = ?", uid).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying envelope: %w", err)
	}
	return n > 0, nil
}

// ==================== Record Archive ====================

// Name returns the sink name.
func (s *Store) Name() string {
	return "sqlite"
}

// Write archives an emitted record.
func (s *Store) Write(ctx context.Context, e *domain.Emission) error {
	return s.SaveRecord(ctx, e.Archived())
}

// SaveRecord stores or replaces a record.
func (s *Store) SaveRecord(ctx context.Context, rec domain.ArchivedRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO announcements (uid, issue_identifier, identifier, format, envelope_uid, run_id, line)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			issue_identifier = excluded.issue_identifier,
			identifier = excluded.identifier,
			format = excluded.format,
			envelope_uid = excluded.envelope_uid,
			run_id = excluded.run_id,
			line = excluded.line,
			archived_at = CURRENT_TIMESTAMP
	`, rec.UID, rec.IssueIdentifier, rec.Identifier, string(rec.Format), rec.EnvelopeUID, rec.RunID, rec.Line)
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// ListRecords returns the records of an issue ordered by identifier.
func (s *Store) ListRecords(ctx context.Context, issueIdentifier string) ([]domain.ArchivedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uid, issue_identifier, identifier, format, envelope_uid, run_id, line
		FROM announcements WHERE issue_identifier = ?
		ORDER BY identifier, uid
	`, issueIdentifier)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.ArchivedRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// GetRecord retrieves a record by uid.
func (s *Store) GetRecord(ctx context.Context, uid string) (*domain.ArchivedRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT uid, issue_identifier, identifier, format, envelope_uid, run_id, line
		FROM announcements WHERE uid = ?
	`, uid)
	return scanRecord(row)
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.ArchivedRecord, error) {
	var rec domain.ArchivedRecord
	var format string
	err := row.Scan(&rec.UID, &rec.IssueIdentifier, &rec.Identifier, &format,
		&rec.EnvelopeUID, &rec.RunID, &rec.Line)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	rec.Format = domain.Format(format)
	return &rec, nil
}
