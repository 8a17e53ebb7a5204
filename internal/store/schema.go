package store

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS notices (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		date DATE NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS news_items (
		id BIGSERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pages (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		date DATE,
		content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS carousel_items (
		id BIGSERIAL PRIMARY KEY,
		image TEXT NOT NULL,
		caption TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS home_widgets (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sidebar_sections (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		payload JSONB NOT NULL DEFAULT '{}',
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS visits (
		visitor_id UUID NOT NULL,
		visited_on DATE NOT NULL,
		PRIMARY KEY (visitor_id, visited_on)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notices_date ON notices (date DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_news_items_date ON news_items (date DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_visited_on ON visits (visited_on)`,
}

// Migrate creates any missing tables and indexes
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
