package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/boardsite/internal/model"
)

// NoticeStore handles database operations for notices
type NoticeStore struct {
	db *sql.DB
}

// NewNoticeStore creates a new NoticeStore
func NewNoticeStore(db *sql.DB) *NoticeStore {
	return &NoticeStore{db: db}
}

// List retrieves all notices, newest first
func (s *NoticeStore) List(ctx context.Context) ([]model.Notice, error) {
	query := `
		SELECT id, title, date, category, link
		FROM notices
		ORDER BY date DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get notices: %w", err)
	}
	defer rows.Close()

	notices := []model.Notice{}
	for rows.Next() {
		var n model.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Date, &n.Category, &n.Link); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}

	return notices, rows.Err()
}

// Create inserts a notice and returns the stored row
func (s *NoticeStore) Create(ctx context.Context, n model.Notice) (model.Notice, error) {
	query := `
		INSERT INTO notices (title, date, category, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, date, category, link
	`

	var out model.Notice
	err := s.db.QueryRowContext(ctx, query, n.Title, n.Date, n.Category, n.Link).
		Scan(&out.ID, &out.Title, &out.Date, &out.Category, &out.Link)
	if err != nil {
		return model.Notice{}, fmt.Errorf("failed to create notice: %w", classify(err))
	}

	return out, nil
}

// Update overwrites a notice by id
func (s *NoticeStore) Update(ctx context.Context, n model.Notice) (model.Notice, error) {
	query := `
		UPDATE notices
		SET title = $2, date = $3, category = $4, link = $5
		WHERE id = $1
		RETURNING id, title, date, category, link
	`

	var out model.Notice
	err := s.db.QueryRowContext(ctx, query, n.ID, n.Title, n.Date, n.Category, n.Link).
		Scan(&out.ID, &out.Title, &out.Date, &out.Category, &out.Link)
	if err != nil {
		return model.Notice{}, fmt.Errorf("failed to update notice %d: %w", n.ID, classify(err))
	}

	return out, nil
}

// Delete removes a notice by id
func (s *NoticeStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err == nil {
		err = checkAffected(res)
	}
	if err != nil {
		return fmt.Errorf("failed to delete notice %d: %w", id, err)
	}
	return nil
}
