package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/boardsite/internal/model"
)

// NewsStore handles database operations for news ticker items
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore creates a new NewsStore
func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

// List retrieves all news items, newest first
func (s *NewsStore) List(ctx context.Context) ([]model.NewsItem, error) {
	query := `
		SELECT id, content, date
		FROM news_items
		ORDER BY date DESC NULLS LAST, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get news items: %w", err)
	}
	defer rows.Close()

	items := []model.NewsItem{}
	for rows.Next() {
		var n model.NewsItem
		if err := rows.Scan(&n.ID, &n.Content, &n.Date); err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, n)
	}

	return items, rows.Err()
}

// Create inserts a news item and returns the stored row
func (s *NewsStore) Create(ctx context.Context, n model.NewsItem) (model.NewsItem, error) {
	query := `
		INSERT INTO news_items (content, date)
		VALUES ($1, $2)
		RETURNING id, content, date
	`

	var out model.NewsItem
	err := s.db.QueryRowContext(ctx, query, n.Content, n.Date).Scan(&out.ID, &out.Content, &out.Date)
	if err != nil {
		return model.NewsItem{}, fmt.Errorf("failed to create news item: %w", classify(err))
	}

	return out, nil
}

// Update overwrites a news item by id
func (s *NewsStore) Update(ctx context.Context, n model.NewsItem) (model.NewsItem, error) {
	query := `
		UPDATE news_items
		SET content = $2, date = $3
		WHERE id = $1
		RETURNING id, content, date
	`

	var out model.NewsItem
	err := s.db.QueryRowContext(ctx, query, n.ID, n.Content, n.Date).Scan(&out.ID, &out.Content, &out.Date)
	if err != nil {
		return model.NewsItem{}, fmt.Errorf("failed to update news item %d: %w", n.ID, classify(err))
	}

	return out, nil
}

// Delete removes a news item by id
func (s *NewsStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM news_items WHERE id = $1`, id)
	if err == nil {
		err = checkAffected(res)
	}
	if err != nil {
		return fmt.Errorf("failed to delete news item %d: %w", id, err)
	}
	return nil
}
