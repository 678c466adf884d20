package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sheikhomar/paraglide"
)

// Compile-time interface verification.
var _ paraglide.StatuteService = (*StatuteService)(nil)

// StatuteService implements paraglide.StatuteService using SQLite.
type StatuteService struct {
	db *DB
}

// NewStatuteService creates a new StatuteService.
func NewStatuteService(db *DB) *StatuteService {
	return &StatuteService{db: db}
}

// CreateStatute stores a statute record. A missing ID is assigned and
// the indexing timestamp is set. Any previous record for the same
// statute number is replaced, and its passages go with it via the
// ON DELETE CASCADE on the passages table.
func (s *StatuteService) CreateStatute(ctx context.Context, rec *paraglide.StatuteRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.IndexedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM statutes WHERE number = ?
	`, rec.Number); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO statutes (id, number, date, title, content_hash, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Number, rec.Date.Format(time.RFC3339), rec.Title, rec.ContentHash,
		rec.IndexedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// FindStatuteByID retrieves a statute record by ID.
func (s *StatuteService) FindStatuteByID(ctx context.Context, id string) (*paraglide.StatuteRecord, error) {
	var rec paraglide.StatuteRecord
	var date, indexedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, number, date, title, content_hash, indexed_at
		FROM statutes
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Number, &date, &rec.Title, &rec.ContentHash, &indexedAt)

	if err == sql.ErrNoRows {
		return nil, paraglide.Errorf(paraglide.ENOTFOUND, "statute not found")
	}
	if err != nil {
		return nil, err
	}

	if rec.Date, err = parseRFC3339(date, "date"); err != nil {
		return nil, err
	}
	if rec.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

// FindStatutes retrieves all stored statute records, newest first.
func (s *StatuteService) FindStatutes(ctx context.Context) ([]*paraglide.StatuteRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, date, title, content_hash, indexed_at
		FROM statutes
		ORDER BY indexed_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*paraglide.StatuteRecord
	for rows.Next() {
		var rec paraglide.StatuteRecord
		var date, indexedAt string

		if err := rows.Scan(&rec.ID, &rec.Number, &date, &rec.Title, &rec.ContentHash, &indexedAt); err != nil {
			return nil, err
		}

		if rec.Date, err = parseRFC3339(date, "date"); err != nil {
			return nil, err
		}
		if rec.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at"); err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
