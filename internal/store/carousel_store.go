package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/boardsite/internal/model"
)

// CarouselStore handles database operations for home page slides
type CarouselStore struct {
	db *sql.DB
}

// NewCarouselStore creates a new CarouselStore
func NewCarouselStore(db *sql.DB) *CarouselStore {
	return &CarouselStore{db: db}
}

// List retrieves all slides in insertion order
func (s *CarouselStore) List(ctx context.Context) ([]model.CarouselItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, image, caption FROM carousel_items ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get carousel items: %w", err)
	}
	defer rows.Close()

	items := []model.CarouselItem{}
	for rows.Next() {
		var c model.CarouselItem
		if err := rows.Scan(&c.ID, &c.Image, &c.Caption); err != nil {
			return nil, fmt.Errorf("failed to scan carousel item: %w", err)
		}
		items = append(items, c)
	}

	return items, rows.Err()
}

func (s *CarouselStore) Create(ctx context.Context, c model.CarouselItem) (model.CarouselItem, error) {
	query := `
		INSERT INTO carousel_items (image, caption)
		VALUES ($1, $2)
		RETURNING id, image, caption
	`

	var out model.CarouselItem
	if err := s.db.QueryRowContext(ctx, query, c.Image, c.Caption).Scan(&out.ID, &out.Image, &out.Caption); err != nil {
		return model.CarouselItem{}, fmt.Errorf("failed to create carousel item: %w", classify(err))
	}
	return out, nil
}

func (s *CarouselStore) Update(ctx context.Context, c model.CarouselItem) (model.CarouselItem, error) {
	query := `
		UPDATE carousel_items
		SET image = $2, caption = $3
		WHERE id = $1
		RETURNING id, image, caption
	`

	var out model.CarouselItem
	if err := s.db.QueryRowContext(ctx, query, c.ID, c.Image, c.Caption).Scan(&out.ID, &out.Image, &out.Caption); err != nil {
		return model.CarouselItem{}, fmt.Errorf("failed to update carousel item %d: %w", c.ID, classify(err))
	}
	return out, nil
}

func (s *CarouselStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM carousel_items WHERE id = $1`, id)
	if err == nil {
		err = checkAffected(res)
	}
	if err != nil {
		return fmt.Errorf("failed to delete carousel item %d: %w", id, err)
	}
	return nil
}
