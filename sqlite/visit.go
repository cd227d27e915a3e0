package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/epollo/epollo"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ epollo.VisitService = (*VisitService)(nil)

// VisitService implements epollo.VisitService using SQLite.
type VisitService struct {
	db *DB
}

// NewVisitService creates a new VisitService.
func NewVisitService(db *DB) *VisitService {
	return &VisitService{db: db}
}

// CreateVisit records a visit, assigning its ID and timestamp.
func (s *VisitService) CreateVisit(ctx context.Context, visit *epollo.Visit) error {
	if err := visit.Validate(); err != nil {
		return err
	}

	visit.ID = uuid.New().String()
	visit.VisitedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (id, url, final_url, title, status_code, content_hash, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, visit.ID, visit.URL, visit.FinalURL, visit.Title, visit.StatusCode,
		visit.ContentHash, visit.VisitedAt.Format(time.RFC3339))

	return err
}

// FindVisitByID retrieves a visit by ID.
func (s *VisitService) FindVisitByID(ctx context.Context, id string) (*epollo.Visit, error) {
	var visit epollo.Visit
	var visitedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, final_url, title, status_code, content_hash, visited_at
		FROM visits
		WHERE id = ?
	`, id).Scan(&visit.ID, &visit.URL, &visit.FinalURL, &visit.Title,
		&visit.StatusCode, &visit.ContentHash, &visitedAt)

	if err == sql.ErrNoRows {
		return nil, epollo.Errorf(epollo.ENOTFOUND, "visit not found")
	}
	if err != nil {
		return nil, err
	}

	var parseErr error
	visit.VisitedAt, parseErr = time.Parse(time.RFC3339, visitedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse visited_at: %w", parseErr)
	}

	return &visit, nil
}

// FindVisits retrieves visits matching the filter, newest first.
func (s *VisitService) FindVisits(ctx context.Context, filter epollo.VisitFilter) ([]*epollo.Visit, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, final_url, title, status_code, content_hash, visited_at FROM visits WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY visited_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*epollo.Visit
	for rows.Next() {
		var visit epollo.Visit
		var visitedAt string

		if err := rows.Scan(&visit.ID, &visit.URL, &visit.FinalURL, &visit.Title,
			&visit.StatusCode, &visit.ContentHash, &visitedAt); err != nil {
			return nil, err
		}

		var parseErr error
		visit.VisitedAt, parseErr = time.Parse(time.RFC3339, visitedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse visited_at: %w", parseErr)
		}

		visits = append(visits, &visit)
	}

	return visits, rows.Err()
}

// DeleteVisits removes all recorded visits and reports how many were
// deleted.
func (s *VisitService) DeleteVisits(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM visits")
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}
