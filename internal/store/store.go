// Package store persists scan history in a local SQLite database. The store
// answers two questions: what did past scans find, and what is the latest
// checkpoint for a mailbox user.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joe123-crypto/recruiter/internal/types"
)

// ScanRecord is one completed scan as stored in history.
type ScanRecord struct {
	ID           string                  `json:"id"`
	CreatedAt    time.Time               `json:"timestamp"`
	MailboxUser  string                  `json:"mailboxUser"`
	Criteria     types.JobCriteria       `json:"jobCriteria"`
	Candidates   []types.CandidateRecord `json:"candidates"`
	ScannedCount int                     `json:"scannedCount"`
	LastUID      uint32                  `json:"lastScannedUid"`
}

// Store wraps the SQLite scan-history database.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at dbPath, enables WAL mode, and runs
// pending schema migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveScan records a completed scan. The record ID is assigned here.
func (s *Store) SaveScan(ctx context.Context, user string, criteria types.JobCriteria, session types.ScanSession) (*ScanRecord, error) {
	record := &ScanRecord{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		MailboxUser:  user,
		Criteria:     criteria,
		Candidates:   session.Candidates,
		ScannedCount: session.ScannedCount,
		LastUID:      session.Checkpoint,
	}

	criteriaJSON, err := json.Marshal(record.Criteria)
	if err != nil {
		return nil, fmt.Errorf("encoding criteria: %w", err)
	}
	candidates := record.Candidates
	if candidates == nil {
		candidates = []types.CandidateRecord{}
	}
	candidatesJSON, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("encoding candidates: %w", err)
	}

	const query = `
		INSERT INTO scans (
			id, created_at, mailbox_user, criteria, candidates, scanned_count, last_uid
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		record.ID,
		record.CreatedAt.Format(time.RFC3339),
		record.MailboxUser,
		string(criteriaJSON),
		string(candidatesJSON),
		record.ScannedCount,
		record.LastUID,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting scan: %w", err)
	}

	return record, nil
}

type scanRow struct {
	ID           string `db:"id"`
	CreatedAt    string `db:"created_at"`
	MailboxUser  string `db:"mailbox_user"`
	Criteria     string `db:"criteria"`
	Candidates   string `db:"candidates"`
	ScannedCount int    `db:"scanned_count"`
	LastUID      uint32 `db:"last_uid"`
}

func (r *scanRow) toRecord() (ScanRecord, error) {
	record := ScanRecord{
		ID:           r.ID,
		MailboxUser:  r.MailboxUser,
		ScannedCount: r.ScannedCount,
		LastUID:      r.LastUID,
	}

	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return record, fmt.Errorf("parsing scan timestamp: %w", err)
	}
	record.CreatedAt = createdAt

	if err := json.Unmarshal([]byte(r.Criteria), &record.Criteria); err != nil {
		return record, fmt.Errorf("decoding criteria: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Candidates), &record.Candidates); err != nil {
		return record, fmt.Errorf("decoding candidates: %w", err)
	}

	return record, nil
}

// ListScans returns scan history, newest first, up to limit records.
// A non-positive limit returns everything.
func (s *Store) ListScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	query := "SELECT * FROM scans ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []scanRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}

	records := make([]ScanRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// LatestCheckpoint returns the highest UID any stored scan for the user has
// reached, or 0 when the user has no history.
func (s *Store) LatestCheckpoint(ctx context.Context, user string) (uint32, error) {
	var lastUID uint32
	err := s.db.GetContext(ctx, &lastUID,
		"SELECT COALESCE(MAX(last_uid), 0) FROM scans WHERE mailbox_user = ?", user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading checkpoint: %w", err)
	}
	return lastUID, nil
}
