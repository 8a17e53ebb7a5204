package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/boardsite/internal/model"
)

// PageStore handles database operations for informational pages
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

// List retrieves all pages, newest first
func (s *PageStore) List(ctx context.Context) ([]model.Page, error) {
	query := `
		SELECT id, title, slug, date, content
		FROM pages
		ORDER BY date DESC NULLS LAST, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	defer rows.Close()

	pages := []model.Page{}
	for rows.Next() {
		var p model.Page
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Date, &p.Content); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}

	return pages, rows.Err()
}

// Create inserts a page; a duplicate slug yields ErrConflict
func (s *PageStore) Create(ctx context.Context, p model.Page) (model.Page, error) {
	query := `
		INSERT INTO pages (title, slug, date, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, slug, date, content
	`

	var out model.Page
	err := s.db.QueryRowContext(ctx, query, p.Title, p.Slug, p.Date, p.Content).
		Scan(&out.ID, &out.Title, &out.Slug, &out.Date, &out.Content)
	if err != nil {
		return model.Page{}, fmt.Errorf("failed to create page %s: %w", p.Slug, classify(err))
	}

	return out, nil
}

// Update overwrites a page by id
func (s *PageStore) Update(ctx context.Context, p model.Page) (model.Page, error) {
	query := `
		UPDATE pages
		SET title = $2, slug = $3, date = $4, content = $5
		WHERE id = $1
		RETURNING id, title, slug, date, content
	`

	var out model.Page
	err := s.db.QueryRowContext(ctx, query, p.ID, p.Title, p.Slug, p.Date, p.Content).
		Scan(&out.ID, &out.Title, &out.Slug, &out.Date, &out.Content)
	if err != nil {
		return model.Page{}, fmt.Errorf("failed to update page %d: %w", p.ID, classify(err))
	}

	return out, nil
}

// Delete removes a page by id
func (s *PageStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err == nil {
		err = checkAffected(res)
	}
	if err != nil {
		return fmt.Errorf("failed to delete page %d: %w", id, err)
	}
	return nil
}
