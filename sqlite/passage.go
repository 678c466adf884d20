package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sheikhomar/paraglide"
)

// Compile-time interface verification.
var _ paraglide.PassageService = (*PassageService)(nil)

// PassageService implements paraglide.PassageService using SQLite.
type PassageService struct {
	db *DB
}

// NewPassageService creates a new PassageService.
func NewPassageService(db *DB) *PassageService {
	return &PassageService{db: db}
}

// CreatePassages stores passages in a single transaction. Existing
// passages with the same GUID are replaced, so re-indexing a statute
// overwrites its previous passages.
func (s *PassageService) CreatePassages(ctx context.Context, passages []*paraglide.Passage) error {
	for _, p := range passages {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO passages
			(guid, statute_id, kind, reference, chapter_number, chapter_title, parent_guid, content, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range passages {
		if _, err := stmt.ExecContext(ctx, p.GUID, p.StatuteID, string(p.Kind), p.Reference,
			p.ChapterNumber, p.ChapterTitle, p.ParentGUID, p.Content, p.Position); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindPassageByGUID retrieves a passage by GUID.
func (s *PassageService) FindPassageByGUID(ctx context.Context, guid string) (*paraglide.Passage, error) {
	var p paraglide.Passage
	var kind string

	err := s.db.QueryRowContext(ctx, `
		SELECT guid, statute_id, kind, reference, chapter_number, chapter_title, parent_guid, content, position
		FROM passages
		WHERE guid = ?
	`, guid).Scan(&p.GUID, &p.StatuteID, &kind, &p.Reference, &p.ChapterNumber,
		&p.ChapterTitle, &p.ParentGUID, &p.Content, &p.Position)

	if err == sql.ErrNoRows {
		return nil, paraglide.Errorf(paraglide.ENOTFOUND, "passage not found")
	}
	if err != nil {
		return nil, err
	}

	p.Kind = paraglide.PassageKind(kind)
	return &p, nil
}

// FindPassages retrieves passages matching the filter, ordered by
// document position.
func (s *PassageService) FindPassages(ctx context.Context, filter paraglide.PassageFilter) ([]*paraglide.Passage, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT guid, statute_id, kind, reference, chapter_number, chapter_title, parent_guid, content, position FROM passages WHERE 1=1")

	if filter.GUID != nil {
		query.WriteString(" AND guid = ?")
		args = append(args, *filter.GUID)
	}
	if filter.StatuteID != nil {
		query.WriteString(" AND statute_id = ?")
		args = append(args, *filter.StatuteID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, *filter.Kind)
	}

	query.WriteString(" ORDER BY position ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passages []*paraglide.Passage
	for rows.Next() {
		var p paraglide.Passage
		var kind string

		if err := rows.Scan(&p.GUID, &p.StatuteID, &kind, &p.Reference, &p.ChapterNumber,
			&p.ChapterTitle, &p.ParentGUID, &p.Content, &p.Position); err != nil {
			return nil, err
		}

		p.Kind = paraglide.PassageKind(kind)
		passages = append(passages, &p)
	}

	return passages, rows.Err()
}

// CountPassages returns the number of stored passages.
func (s *PassageService) CountPassages(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages").Scan(&count)
	return count, err
}
