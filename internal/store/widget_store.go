package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/boardsite/internal/model"
)

// WidgetStore handles database operations for home page widgets
type WidgetStore struct {
	db *sql.DB
}

// NewWidgetStore creates a new WidgetStore
func NewWidgetStore(db *sql.DB) *WidgetStore {
	return &WidgetStore{db: db}
}

// List retrieves all widgets in insertion order
func (s *WidgetStore) List(ctx context.Context) ([]model.HomeWidget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, type, url FROM home_widgets ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get home widgets: %w", err)
	}
	defer rows.Close()

	widgets := []model.HomeWidget{}
	for rows.Next() {
		var w model.HomeWidget
		if err := rows.Scan(&w.ID, &w.Title, &w.Kind, &w.URL); err != nil {
			return nil, fmt.Errorf("failed to scan home widget: %w", err)
		}
		widgets = append(widgets, w)
	}

	return widgets, rows.Err()
}

// Replace swaps the whole widget list in one transaction
func (s *WidgetStore) Replace(ctx context.Context, widgets []model.HomeWidget) ([]model.HomeWidget, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM home_widgets`); err != nil {
		return nil, fmt.Errorf("failed to clear home widgets: %w", err)
	}

	insertQuery := `
		INSERT INTO home_widgets (title, type, url)
		VALUES ($1, $2, $3)
		RETURNING id, title, type, url
	`

	saved := make([]model.HomeWidget, 0, len(widgets))
	for _, w := range widgets {
		var out model.HomeWidget
		err := tx.QueryRowContext(ctx, insertQuery, w.Title, w.Kind, w.URL).
			Scan(&out.ID, &out.Title, &out.Kind, &out.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to insert home widget %q: %w", w.Title, classify(err))
		}
		saved = append(saved, out)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit home widgets: %w", err)
	}

	return saved, nil
}
